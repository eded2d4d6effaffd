package resource

import (
	"context"
	"time"

	"github.com/xxxsen/davfs/store"
)

func (r *Resource) stat(ctx context.Context) (*store.EntryInfo, error) {
	abs, err := r.AbsPath()
	if err != nil {
		return nil, err
	}
	return r.store.Stat(ctx, abs)
}

// IsCollection reports whether the resource currently exists as a
// collection (a directory in WebDAV parlance).
func (r *Resource) IsCollection(ctx context.Context) bool {
	info, err := r.stat(ctx)
	return err == nil && info.IsDir
}

// IsItem reports whether the resource currently exists as an item (a
// plain file).
func (r *Resource) IsItem(ctx context.Context) bool {
	info, err := r.stat(ctx)
	return err == nil && !info.IsDir
}

// Exists reports whether the resource exists at call time.
func (r *Resource) Exists(ctx context.Context) bool {
	_, err := r.stat(ctx)
	return err == nil
}

// Size returns the byte length; a missing resource fails with
// errs.ErrNotFound.
func (r *Resource) Size(ctx context.Context) (int64, error) {
	info, err := r.stat(ctx)
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

// ModTime returns the modification instant.
func (r *Resource) ModTime(ctx context.Context) (time.Time, error) {
	info, err := r.stat(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return info.Mtime, nil
}

// ModTimeStamp returns the modification time as a unix timestamp.
func (r *Resource) ModTimeStamp(ctx context.Context) (int64, error) {
	mtime, err := r.ModTime(ctx)
	if err != nil {
		return 0, err
	}
	return mtime.Unix(), nil
}

// CreateTime returns the change/creation instant the store reports. The
// filesystem store uses the inode change time where the platform exposes
// one and falls back to the modification time elsewhere.
func (r *Resource) CreateTime(ctx context.Context) (time.Time, error) {
	info, err := r.stat(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return info.Ctime, nil
}

// CreateTimeStamp returns the change/creation time as a unix timestamp.
func (r *Resource) CreateTimeStamp(ctx context.Context) (int64, error) {
	ctime, err := r.CreateTime(ctx)
	if err != nil {
		return 0, err
	}
	return ctime.Unix(), nil
}
