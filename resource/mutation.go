package resource

import (
	"context"
	"fmt"
	"io"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/errs"
	"go.uber.org/zap"
)

// The mutation algorithms assume overwrite: the protocol layer rejects a
// pre-existing destination before calling them when the client forbids
// it, so a destination of either type is handled here, never refused.
// None of them roll back on failure; a copy or move that dies partway
// leaves the trees partially modified.

// Mkdir creates the resource as a collection.
func (r *Resource) Mkdir(ctx context.Context) error {
	abs, err := r.AbsPath()
	if err != nil {
		return err
	}
	return r.store.Mkdir(ctx, abs)
}

// Delete removes the resource; collections are emptied first (post-order,
// children before the collection's own entry). Deleting a resource that
// no longer exists is a silent no-op.
func (r *Resource) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := r.AbsPath()
	if err != nil {
		return err
	}
	switch {
	case r.IsCollection(ctx):
		for child, err := range r.Children(ctx) {
			if err != nil {
				return err
			}
			if err := child.Delete(ctx); err != nil {
				return err
			}
		}
		return r.store.RemoveDir(ctx, abs)
	case r.IsItem(ctx):
		return r.store.RemoveFile(ctx, abs)
	}
	return nil
}

// Copy clones the resource to dst. A collection source clears an item
// occupying dst, ensures dst exists as a collection, then recurses into
// children while depth != 0 (0 yields an empty destination collection,
// negative never stops). An item source clears a collection occupying
// dst and byte-copies over whatever remains.
func (r *Resource) Copy(ctx context.Context, dst *Resource, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !r.IsCollection(ctx) {
		if dst.IsCollection(ctx) {
			if err := dst.Delete(ctx); err != nil {
				return fmt.Errorf("clear dst collection failed, err:%w", err)
			}
		}
		return r.copyItem(ctx, dst)
	}
	if dst.IsItem(ctx) {
		if err := dst.Delete(ctx); err != nil {
			return fmt.Errorf("clear dst item failed, err:%w", err)
		}
	}
	if !dst.IsCollection(ctx) {
		if err := dst.Mkdir(ctx); err != nil {
			return err
		}
	}
	if depth == 0 {
		return nil
	}
	for child, err := range r.Children(ctx) {
		if err != nil {
			return err
		}
		if err := child.Copy(ctx, dst.Child(child.Name()), depth-1); err != nil {
			return err
		}
	}
	return nil
}

// Move relocates the resource to dst, deleting any pre-existing dst
// first. Items move by store-level rename (atomic where the backend
// allows); collections move by mkdir + per-child move + source delete
// and always recurse fully.
func (r *Resource) Move(ctx context.Context, dst *Resource) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dst.Exists(ctx) {
		if err := dst.Delete(ctx); err != nil {
			return fmt.Errorf("clear dst failed, err:%w", err)
		}
	}
	if !r.IsCollection(ctx) {
		return r.moveItem(ctx, dst)
	}
	if err := dst.Mkdir(ctx); err != nil {
		return err
	}
	for child, err := range r.Children(ctx) {
		if err != nil {
			return err
		}
		if err := child.Move(ctx, dst.Child(child.Name())); err != nil {
			return err
		}
	}
	if err := r.Delete(ctx); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Debug("move collection finish", zap.String("src", r.path), zap.String("dst", dst.path))
	return nil
}

func (r *Resource) copyItem(ctx context.Context, dst *Resource) error {
	sabs, err := r.AbsPath()
	if err != nil {
		return err
	}
	dabs, err := dst.AbsPath()
	if err != nil {
		return err
	}
	if r.store == dst.store {
		return r.store.CopyFile(ctx, sabs, dabs)
	}
	// dst lives on another store, fall back to a streamed copy
	rc, err := r.store.Open(ctx, sabs)
	if err != nil {
		return err
	}
	defer rc.Close()
	wc, err := dst.store.Create(ctx, dabs)
	if err != nil {
		return err
	}
	if _, err := io.Copy(wc, rc); err != nil {
		_ = wc.Close()
		return errs.Wrap(errs.ErrIO, fmt.Sprintf("copy stream failed, src:%s, dst:%s", r.path, dst.path), err)
	}
	return wc.Close()
}

func (r *Resource) moveItem(ctx context.Context, dst *Resource) error {
	sabs, err := r.AbsPath()
	if err != nil {
		return err
	}
	dabs, err := dst.AbsPath()
	if err != nil {
		return err
	}
	if r.store == dst.store {
		return r.store.Rename(ctx, sabs, dabs)
	}
	if err := r.copyItem(ctx, dst); err != nil {
		return err
	}
	return r.Delete(ctx)
}
