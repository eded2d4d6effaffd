package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/davfs/errs"
)

// tree layout used by the traversal tests:
//
//	a/b.txt
//	a/c/d.txt
//	e.txt
func buildTree(t *testing.T, root string) {
	mustWriteFile(t, root, "a/b.txt", "b")
	mustWriteFile(t, root, "a/c/d.txt", "d")
	mustWriteFile(t, root, "e.txt", "e")
}

func collect(t *testing.T, seq func(yield func(*Resource, error) bool)) []string {
	var rs []string
	for res, err := range seq {
		require.NoError(t, err)
		rs = append(rs, res.Path())
	}
	return rs
}

func TestChildren(t *testing.T) {
	ctx := context.Background()
	root, srv, st := newTestNS(t)
	buildTree(t, root)

	got := collect(t, New(srv, st, "").Children(ctx))
	assert.Equal(t, []string{"a", "e.txt"}, got)
	got = collect(t, New(srv, st, "a").Children(ctx))
	assert.Equal(t, []string{"a/b.txt", "a/c"}, got)
}

func TestChildrenOfNonCollection(t *testing.T) {
	ctx := context.Background()
	root, srv, st := newTestNS(t)
	buildTree(t, root)

	var got error
	for _, err := range New(srv, st, "e.txt").Children(ctx) {
		got = err
	}
	assert.True(t, errors.Is(got, errs.ErrNotCollection))

	for _, err := range New(srv, st, "missing").Children(ctx) {
		got = err
	}
	assert.True(t, errors.Is(got, errs.ErrNotFound))
}

func TestDescendantsDepthZero(t *testing.T) {
	ctx := context.Background()
	root, srv, st := newTestNS(t)
	buildTree(t, root)
	res := New(srv, st, "")

	assert.Equal(t, []string{""}, collect(t, res.Descendants(ctx, 0, true)))
	assert.Empty(t, collect(t, res.Descendants(ctx, 0, false)))
}

func TestDescendantsBoundedDepth(t *testing.T) {
	ctx := context.Background()
	root, srv, st := newTestNS(t)
	buildTree(t, root)
	res := New(srv, st, "")

	assert.Equal(t, []string{"a", "e.txt"}, collect(t, res.Descendants(ctx, 1, false)))
	assert.Equal(t, []string{"", "a", "a/b.txt", "a/c", "e.txt"}, collect(t, res.Descendants(ctx, 2, true)))
}

func TestDescendantsUnbounded(t *testing.T) {
	ctx := context.Background()
	root, srv, st := newTestNS(t)
	buildTree(t, root)
	res := New(srv, st, "")

	// pre-order, every node of the subtree exactly once
	want := []string{"", "a", "a/b.txt", "a/c", "a/c/d.txt", "e.txt"}
	assert.Equal(t, want, collect(t, res.Descendants(ctx, DepthInfinity, true)))
	assert.Equal(t, want[1:], collect(t, res.Descendants(ctx, DepthInfinity, false)))
}

func TestDescendantsRestartable(t *testing.T) {
	ctx := context.Background()
	root, srv, st := newTestNS(t)
	buildTree(t, root)
	seq := New(srv, st, "").Descendants(ctx, DepthInfinity, true)

	first := collect(t, seq)
	second := collect(t, seq)
	assert.Equal(t, first, second)
}

func TestDescendantsLazyStop(t *testing.T) {
	ctx := context.Background()
	root, srv, st := newTestNS(t)
	buildTree(t, root)

	var got []string
	for res, err := range New(srv, st, "").Descendants(ctx, DepthInfinity, true) {
		require.NoError(t, err)
		got = append(got, res.Path())
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"", "a"}, got)
}

func TestDescendantsCancellation(t *testing.T) {
	root, srv, st := newTestNS(t)
	buildTree(t, root)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var got error
	for _, err := range New(srv, st, "").Descendants(ctx, DepthInfinity, true) {
		got = err
	}
	assert.True(t, errors.Is(got, context.Canceled))
}
