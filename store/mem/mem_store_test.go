package mem

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/davfs/errs"
	"github.com/xxxsen/davfs/resource"
	"github.com/xxxsen/davfs/store"
)

func write(t *testing.T, st store.IStore, loc string, content string) {
	wc, err := st.Create(context.Background(), loc)
	require.NoError(t, err)
	_, err = io.Copy(wc, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, wc.Close())
}

func TestRootPreCreated(t *testing.T) {
	ctx := context.Background()
	st := New()
	info, err := st.Stat(ctx, "/")
	require.NoError(t, err)
	assert.True(t, info.IsDir)
}

func TestCreateStatOpen(t *testing.T) {
	ctx := context.Background()
	st := New()
	write(t, st, "/f.txt", "abc")

	info, err := st.Stat(ctx, "/f.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)
	assert.False(t, info.IsDir)

	rc, err := st.Open(ctx, "/f.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
}

func TestCreateNeedsParentDir(t *testing.T) {
	ctx := context.Background()
	st := New()
	_, err := st.Create(ctx, "/no/dir/f.txt")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestMkdirAndList(t *testing.T) {
	ctx := context.Background()
	st := New()
	require.NoError(t, st.Mkdir(ctx, "/d"))
	write(t, st, "/d/f.txt", "x")

	ents, err := st.List(ctx, "/d")
	require.NoError(t, err)
	require.Len(t, ents, 1)
	assert.Equal(t, "f.txt", ents[0].Name)

	_, err = st.List(ctx, "/d/f.txt")
	assert.True(t, errors.Is(err, errs.ErrNotCollection))
}

func TestRemoveDirMustBeEmpty(t *testing.T) {
	ctx := context.Background()
	st := New()
	require.NoError(t, st.Mkdir(ctx, "/d"))
	write(t, st, "/d/f.txt", "x")

	assert.Error(t, st.RemoveDir(ctx, "/d"))
	require.NoError(t, st.RemoveFile(ctx, "/d/f.txt"))
	require.NoError(t, st.RemoveDir(ctx, "/d"))
}

func TestRenameMovesSubtree(t *testing.T) {
	ctx := context.Background()
	st := New()
	require.NoError(t, st.Mkdir(ctx, "/d"))
	require.NoError(t, st.Mkdir(ctx, "/d/sub"))
	write(t, st, "/d/sub/f.txt", "x")

	require.NoError(t, st.Rename(ctx, "/d", "/e"))
	_, err := st.Stat(ctx, "/d")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	info, err := st.Stat(ctx, "/e/sub/f.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Size)
}

func TestRenameOverExisting(t *testing.T) {
	ctx := context.Background()
	st := New()
	require.NoError(t, st.Mkdir(ctx, "/d"))
	require.NoError(t, st.Mkdir(ctx, "/empty"))
	require.NoError(t, st.Mkdir(ctx, "/full"))
	write(t, st, "/full/f.txt", "x")
	write(t, st, "/a.txt", "a")
	write(t, st, "/b.txt", "b")

	// a file replaces a file
	require.NoError(t, st.Rename(ctx, "/a.txt", "/b.txt"))
	rc, err := st.Open(ctx, "/b.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	// a file cannot replace a directory
	assert.True(t, errors.Is(st.Rename(ctx, "/b.txt", "/empty"), errs.ErrNotItem))

	// a directory cannot replace a file
	assert.True(t, errors.Is(st.Rename(ctx, "/d", "/b.txt"), errs.ErrNotCollection))

	// a directory only replaces an empty directory
	assert.Error(t, st.Rename(ctx, "/d", "/full"))
	require.NoError(t, st.Rename(ctx, "/d", "/empty"))
	info, err := st.Stat(ctx, "/empty")
	require.NoError(t, err)
	assert.True(t, info.IsDir)
	_, err = st.Stat(ctx, "/d")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestCopyFile(t *testing.T) {
	ctx := context.Background()
	st := New()
	write(t, st, "/src.txt", "abc")

	require.NoError(t, st.CopyFile(ctx, "/src.txt", "/dst.txt"))
	rc, err := st.Open(ctx, "/dst.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
}

// The resource layer must behave identically over the in-memory backend.
func TestResourceOverMemStore(t *testing.T) {
	ctx := context.Background()
	st := New()
	srv := resource.NewStaticServer("/", "http://example.com/dav")

	a := resource.New(srv, st, "a")
	require.NoError(t, a.Mkdir(ctx))
	require.NoError(t, a.Child("b.txt").Write(ctx, strings.NewReader("hi")))

	c := resource.New(srv, st, "c")
	require.NoError(t, a.Copy(ctx, c, resource.DepthInfinity))
	data, err := resource.New(srv, st, "c/b.txt").Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)

	d := resource.New(srv, st, "d")
	require.NoError(t, c.Move(ctx, d))
	assert.False(t, c.Exists(ctx))
	data, err = resource.New(srv, st, "d/b.txt").Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)

	tag, err := d.Child("b.txt").Etag(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, tag)
}
