package adaptor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/xxxsen/davfs/errs"
	"github.com/xxxsen/davfs/resource"
	"github.com/xxxsen/davfs/store"
	"golang.org/x/net/webdav"
)

type resourceFS struct {
	srv IServer
	st  store.IStore
}

// IServer aliases the resource collaborator so callers only import this
// package when mounting.
type IServer = resource.IServer

// ToWebdavFS exposes a resource namespace as a webdav.FileSystem so the
// tree can sit behind the stock x/net/webdav handler. Reads buffer the
// whole item to satisfy the handler's seek requirement; writes buffer and
// flush through Resource.Write on close.
func ToWebdavFS(srv IServer, st store.IStore) webdav.FileSystem {
	return &resourceFS{srv: srv, st: st}
}

func (f *resourceFS) resolve(name string) *resource.Resource {
	return resource.New(f.srv, f.st, name)
}

// mapError rewraps missing-resource lookups as *fs.PathError so that
// os.IsNotExist sees them; the x/net/webdav handler gates its 404
// responses on that check and it does not follow wrapped error chains.
func mapError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrNotFound) {
		return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return err
}

func (f *resourceFS) Mkdir(ctx context.Context, name string, perm os.FileMode) error {
	return f.resolve(name).Mkdir(ctx)
}

func (f *resourceFS) RemoveAll(ctx context.Context, name string) error {
	return f.resolve(name).Delete(ctx)
}

func (f *resourceFS) Rename(ctx context.Context, oldName, newName string) error {
	return f.resolve(oldName).Move(ctx, f.resolve(newName))
}

func (f *resourceFS) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	res := f.resolve(name)
	abs, err := res.AbsPath()
	if err != nil {
		return nil, err
	}
	ent, err := f.st.Stat(ctx, abs)
	if err != nil {
		return nil, mapError("stat", name, err)
	}
	return toFileInfo(ent), nil
}

func (f *resourceFS) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (webdav.File, error) {
	res := f.resolve(name)
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		if err := f.checkWrite(ctx, res); err != nil {
			return nil, mapError("open", name, err)
		}
		return &writeFile{ctx: ctx, fs: f, res: res}, nil
	}
	if res.IsCollection(ctx) {
		return &dirFile{ctx: ctx, fs: f, res: res}, nil
	}
	data, err := res.Read(ctx)
	if err != nil {
		return nil, mapError("open", name, err)
	}
	info, err := f.Stat(ctx, name)
	if err != nil {
		return nil, err
	}
	return &readFile{Reader: bytes.NewReader(data), info: info}, nil
}

// checkWrite surfaces write conflicts at open time instead of deferring
// them to the flush: the target must not be an existing collection and
// its parent must already exist as one.
func (f *resourceFS) checkWrite(ctx context.Context, res *resource.Resource) error {
	if res.IsCollection(ctx) {
		return errs.New(errs.ErrNotItem, fmt.Sprintf("open for write failed, location is collection:%s", res.Path()))
	}
	parent := res.Parent()
	if parent.Path() != res.Path() && !parent.IsCollection(ctx) {
		return errs.New(errs.ErrNotFound, fmt.Sprintf("open for write failed, parent missing:%s", res.Path()))
	}
	return nil
}

type readFile struct {
	*bytes.Reader
	info os.FileInfo
}

func (f *readFile) Close() error {
	return nil
}

func (f *readFile) Write(p []byte) (int, error) {
	return 0, os.ErrInvalid
}

func (f *readFile) Readdir(count int) ([]fs.FileInfo, error) {
	return nil, os.ErrInvalid
}

func (f *readFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

type writeFile struct {
	ctx     context.Context
	fs      *resourceFS
	res     *resource.Resource
	buf     bytes.Buffer
	flushed bool
	err     error
}

func (f *writeFile) Write(p []byte) (int, error) {
	if f.flushed {
		return 0, os.ErrInvalid
	}
	return f.buf.Write(p)
}

// flush commits the buffered payload exactly once. Both Stat and Close
// route through it because the handler stats the file before closing it
// and derives the PUT response ETag from that FileInfo.
func (f *writeFile) flush() error {
	if f.flushed {
		return f.err
	}
	f.flushed = true
	f.err = f.res.Write(f.ctx, &f.buf)
	return f.err
}

func (f *writeFile) Close() error {
	return f.flush()
}

func (f *writeFile) Read(p []byte) (int, error) {
	return 0, os.ErrInvalid
}

func (f *writeFile) Seek(offset int64, whence int) (int64, error) {
	return 0, os.ErrInvalid
}

func (f *writeFile) Readdir(count int) ([]fs.FileInfo, error) {
	return nil, os.ErrInvalid
}

func (f *writeFile) Stat() (fs.FileInfo, error) {
	if err := f.flush(); err != nil {
		return nil, err
	}
	return f.fs.Stat(f.ctx, f.res.Path())
}

type dirFile struct {
	ctx    context.Context
	fs     *resourceFS
	res    *resource.Resource
	ents   []fs.FileInfo
	loaded bool
	offset int
}

func (f *dirFile) load() error {
	if f.loaded {
		return nil
	}
	abs, err := f.res.AbsPath()
	if err != nil {
		return err
	}
	ents, err := f.fs.st.List(f.ctx, abs)
	if err != nil {
		return mapError("readdir", f.res.Path(), err)
	}
	for _, ent := range ents {
		f.ents = append(f.ents, toFileInfo(ent))
	}
	f.loaded = true
	return nil
}

func (f *dirFile) Readdir(count int) ([]fs.FileInfo, error) {
	if err := f.load(); err != nil {
		return nil, err
	}
	if count <= 0 {
		rs := f.ents[f.offset:]
		f.offset = len(f.ents)
		return rs, nil
	}
	if f.offset >= len(f.ents) {
		return nil, io.EOF
	}
	end := f.offset + count
	if end > len(f.ents) {
		end = len(f.ents)
	}
	rs := f.ents[f.offset:end]
	f.offset = end
	return rs, nil
}

func (f *dirFile) Stat() (fs.FileInfo, error) {
	abs, err := f.res.AbsPath()
	if err != nil {
		return nil, err
	}
	ent, err := f.fs.st.Stat(f.ctx, abs)
	if err != nil {
		return nil, mapError("stat", f.res.Path(), err)
	}
	return toFileInfo(ent), nil
}

func (f *dirFile) Close() error {
	return nil
}

func (f *dirFile) Read(p []byte) (int, error) {
	return 0, os.ErrInvalid
}

func (f *dirFile) Write(p []byte) (int, error) {
	return 0, os.ErrInvalid
}

func (f *dirFile) Seek(offset int64, whence int) (int64, error) {
	return 0, os.ErrInvalid
}
