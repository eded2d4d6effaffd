package local

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/xxxsen/davfs/store"
	"github.com/xxxsen/davfs/utils"
)

type config struct {
	atomicWrite bool
}

type Option func(c *config)

// WithAtomicWrite makes Create stage content into a temp file and rename
// it over the target on close, instead of truncating the target in place.
func WithAtomicWrite() Option {
	return func(c *config) {
		c.atomicWrite = true
	}
}

type localStore struct {
	c *config
}

// New builds the filesystem-backed store.
func New(opts ...Option) store.IStore {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return &localStore{c: c}
}

func (s *localStore) Stat(ctx context.Context, location string) (*store.EntryInfo, error) {
	fi, err := os.Stat(location)
	if err != nil {
		return nil, classify("stat", err)
	}
	return toEntryInfo(fi), nil
}

func (s *localStore) List(ctx context.Context, location string) ([]*store.EntryInfo, error) {
	ents, err := os.ReadDir(location)
	if err != nil {
		return nil, classify("list dir", err)
	}
	rs := make([]*store.EntryInfo, 0, len(ents))
	for _, ent := range ents {
		fi, err := ent.Info()
		if err != nil {
			return nil, classify("read dir entry", err)
		}
		rs = append(rs, toEntryInfo(fi))
	}
	return rs, nil
}

func (s *localStore) Mkdir(ctx context.Context, location string) error {
	if err := os.Mkdir(location, 0755); err != nil {
		return classify("mkdir", err)
	}
	return nil
}

func (s *localStore) RemoveFile(ctx context.Context, location string) error {
	if err := os.Remove(location); err != nil {
		return classify("remove file", err)
	}
	return nil
}

func (s *localStore) RemoveDir(ctx context.Context, location string) error {
	if err := os.Remove(location); err != nil {
		return classify("remove dir", err)
	}
	return nil
}

func (s *localStore) Rename(ctx context.Context, src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return classify("rename", err)
	}
	return nil
}

func (s *localStore) CopyFile(ctx context.Context, src, dst string) error {
	rc, err := s.Open(ctx, src)
	if err != nil {
		return err
	}
	defer rc.Close()
	wc, err := s.Create(ctx, dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(wc, rc); err != nil {
		_ = wc.Close()
		return classify("copy bytes", err)
	}
	if err := wc.Close(); err != nil {
		return classify("close copy target", err)
	}
	return nil
}

func (s *localStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, classify("open", err)
	}
	return f, nil
}

func (s *localStore) Create(ctx context.Context, location string) (io.WriteCloser, error) {
	if s.c.atomicWrite {
		w, err := utils.NewStageWriter(location)
		if err != nil {
			return nil, classify("create stage file", err)
		}
		return w, nil
	}
	f, err := os.OpenFile(location, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, classify("create", err)
	}
	return f, nil
}

func toEntryInfo(fi fs.FileInfo) *store.EntryInfo {
	return &store.EntryInfo{
		Name:  fi.Name(),
		Size:  fi.Size(),
		Mtime: fi.ModTime(),
		Ctime: changeTime(fi),
		IsDir: fi.IsDir(),
	}
}
