package store

import (
	"context"
	"io"
	"time"
)

// EntryInfo describes one entry of the underlying store. Ctime falls back
// to Mtime on backends without a change time.
type EntryInfo struct {
	Name  string
	Size  int64
	Mtime time.Time
	Ctime time.Time
	IsDir bool
}

// IStore is the primitive operation set the resource layer is built on.
// Locations are absolute physical locations produced by the resource
// layer's root join; implementations never re-interpret them against
// another root. Failures are classified with the kinds in the errs
// package before they propagate.
type IStore interface {
	Stat(ctx context.Context, location string) (*EntryInfo, error)
	List(ctx context.Context, location string) ([]*EntryInfo, error)
	Mkdir(ctx context.Context, location string) error
	RemoveFile(ctx context.Context, location string) error
	RemoveDir(ctx context.Context, location string) error
	Rename(ctx context.Context, src, dst string) error
	CopyFile(ctx context.Context, src, dst string) error
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	Create(ctx context.Context, location string) (io.WriteCloser, error)
}
