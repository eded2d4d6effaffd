package mem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/xxxsen/davfs/errs"
	"github.com/xxxsen/davfs/store"
)

type memNode struct {
	isDir bool
	data  []byte
	mtime time.Time
	ctime time.Time
}

// memStore keeps the whole tree in memory, keyed by cleaned slash paths.
// It exists so the resource layer can be exercised without touching disk
// and as the proof that nothing above IStore depends on the filesystem.
// Single-key operations are safe for concurrent use; tree-wide operations
// (rename of a directory) are not atomic across keys.
type memStore struct {
	nodes *xsync.Map[string, *memNode]
}

// New builds an empty in-memory store with "/" pre-created.
func New() store.IStore {
	s := &memStore{nodes: xsync.NewMap[string, *memNode]()}
	now := time.Now()
	s.nodes.Store("/", &memNode{isDir: true, mtime: now, ctime: now})
	return s
}

func normalize(location string) string {
	return path.Clean("/" + strings.TrimPrefix(location, "/"))
}

func (s *memStore) load(location string) (*memNode, bool) {
	return s.nodes.Load(normalize(location))
}

func (s *memStore) Stat(ctx context.Context, location string) (*store.EntryInfo, error) {
	node, ok := s.load(location)
	if !ok {
		return nil, errs.New(errs.ErrNotFound, fmt.Sprintf("stat failed, location:%s", location))
	}
	return s.toEntryInfo(normalize(location), node), nil
}

func (s *memStore) List(ctx context.Context, location string) ([]*store.EntryInfo, error) {
	location = normalize(location)
	node, ok := s.nodes.Load(location)
	if !ok {
		return nil, errs.New(errs.ErrNotFound, fmt.Sprintf("list failed, location:%s", location))
	}
	if !node.isDir {
		return nil, errs.New(errs.ErrNotCollection, fmt.Sprintf("list failed, location:%s", location))
	}
	var rs []*store.EntryInfo
	s.nodes.Range(func(key string, child *memNode) bool {
		if key != location && path.Dir(key) == location {
			rs = append(rs, s.toEntryInfo(key, child))
		}
		return true
	})
	return rs, nil
}

func (s *memStore) Mkdir(ctx context.Context, location string) error {
	location = normalize(location)
	if _, ok := s.nodes.Load(location); ok {
		return errs.New(errs.ErrIO, fmt.Sprintf("mkdir failed, location exists:%s", location))
	}
	if err := s.checkParentDir(location); err != nil {
		return err
	}
	now := time.Now()
	s.nodes.Store(location, &memNode{isDir: true, mtime: now, ctime: now})
	return nil
}

func (s *memStore) RemoveFile(ctx context.Context, location string) error {
	location = normalize(location)
	node, ok := s.nodes.Load(location)
	if !ok {
		return errs.New(errs.ErrNotFound, fmt.Sprintf("remove file failed, location:%s", location))
	}
	if node.isDir {
		return errs.New(errs.ErrNotItem, fmt.Sprintf("remove file failed, location:%s", location))
	}
	s.nodes.Delete(location)
	return nil
}

func (s *memStore) RemoveDir(ctx context.Context, location string) error {
	location = normalize(location)
	node, ok := s.nodes.Load(location)
	if !ok {
		return errs.New(errs.ErrNotFound, fmt.Sprintf("remove dir failed, location:%s", location))
	}
	if !node.isDir {
		return errs.New(errs.ErrNotCollection, fmt.Sprintf("remove dir failed, location:%s", location))
	}
	if !s.isEmptyDir(location) {
		return errs.New(errs.ErrIO, fmt.Sprintf("remove dir failed, not empty:%s", location))
	}
	s.nodes.Delete(location)
	return nil
}

func (s *memStore) isEmptyDir(location string) bool {
	empty := true
	s.nodes.Range(func(key string, _ *memNode) bool {
		if key != location && path.Dir(key) == location {
			empty = false
			return false
		}
		return true
	})
	return empty
}

func (s *memStore) Rename(ctx context.Context, src, dst string) error {
	src, dst = normalize(src), normalize(dst)
	node, ok := s.nodes.Load(src)
	if !ok {
		return errs.New(errs.ErrNotFound, fmt.Sprintf("rename failed, src:%s", src))
	}
	if err := s.checkParentDir(dst); err != nil {
		return err
	}
	if old, ok := s.nodes.Load(dst); ok {
		if err := s.checkReplace(node, old, dst); err != nil {
			return err
		}
	}
	s.nodes.Store(dst, node)
	s.nodes.Delete(src)
	if !node.isDir {
		return nil
	}
	// relocate the whole subtree
	prefix := src + "/"
	moved := make(map[string]*memNode)
	s.nodes.Range(func(key string, child *memNode) bool {
		if strings.HasPrefix(key, prefix) {
			moved[dst+"/"+strings.TrimPrefix(key, prefix)] = child
		}
		return true
	})
	for key, child := range moved {
		s.nodes.Store(key, child)
	}
	s.nodes.Range(func(key string, _ *memNode) bool {
		if strings.HasPrefix(key, prefix) {
			s.nodes.Delete(key)
		}
		return true
	})
	return nil
}

func (s *memStore) CopyFile(ctx context.Context, src, dst string) error {
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
		return errs.Wrap(errs.ErrIO, "copy bytes failed", err)
	}
	return wc.Close()
}

func (s *memStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	node, ok := s.load(location)
	if !ok {
		return nil, errs.New(errs.ErrNotFound, fmt.Sprintf("open failed, location:%s", location))
	}
	if node.isDir {
		return nil, errs.New(errs.ErrNotItem, fmt.Sprintf("open failed, location is dir:%s", location))
	}
	return io.NopCloser(bytes.NewReader(node.data)), nil
}

func (s *memStore) Create(ctx context.Context, location string) (io.WriteCloser, error) {
	location = normalize(location)
	if node, ok := s.nodes.Load(location); ok && node.isDir {
		return nil, errs.New(errs.ErrNotItem, fmt.Sprintf("create failed, location is dir:%s", location))
	}
	if err := s.checkParentDir(location); err != nil {
		return nil, err
	}
	return &memWriter{s: s, location: location}, nil
}

// checkReplace mirrors the rename(2) rules for an existing destination,
// matching what the os-backed store inherits from the kernel: a file
// cannot replace a directory, a directory cannot replace a file, and a
// directory may only replace an empty directory.
func (s *memStore) checkReplace(src, dst *memNode, location string) error {
	if dst.isDir {
		if !src.isDir {
			return errs.New(errs.ErrNotItem, fmt.Sprintf("rename failed, dst is dir:%s", location))
		}
		if !s.isEmptyDir(location) {
			return errs.New(errs.ErrIO, fmt.Sprintf("rename failed, dst not empty:%s", location))
		}
		return nil
	}
	if src.isDir {
		return errs.New(errs.ErrNotCollection, fmt.Sprintf("rename failed, dst is not dir:%s", location))
	}
	return nil
}

func (s *memStore) checkParentDir(location string) error {
	parent, ok := s.nodes.Load(path.Dir(location))
	if !ok {
		return errs.New(errs.ErrNotFound, fmt.Sprintf("parent dir not found, location:%s", location))
	}
	if !parent.isDir {
		return errs.New(errs.ErrNotCollection, fmt.Sprintf("parent is not a dir, location:%s", location))
	}
	return nil
}

func (s *memStore) toEntryInfo(location string, node *memNode) *store.EntryInfo {
	name := path.Base(location)
	if location == "/" {
		name = "/"
	}
	return &store.EntryInfo{
		Name:  name,
		Size:  int64(len(node.data)),
		Mtime: node.mtime,
		Ctime: node.ctime,
		IsDir: node.isDir,
	}
}

type memWriter struct {
	s        *memStore
	location string
	buf      bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	now := time.Now()
	ctime := now
	if old, ok := w.s.nodes.Load(w.location); ok {
		ctime = old.ctime
	}
	w.s.nodes.Store(w.location, &memNode{
		data:  bytes.Clone(w.buf.Bytes()),
		mtime: now,
		ctime: ctime,
	})
	return nil
}
