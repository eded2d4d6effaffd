package resource

import (
	"context"
	"iter"
)

// Children yields one handle per direct entry of the collection. The
// sequence is lazy and restartable: each call produces an independent
// listing. Calling it on a non-collection yields the store's
// errs.ErrNotCollection (or errs.ErrNotFound) as the single element.
func (r *Resource) Children(ctx context.Context) iter.Seq2[*Resource, error] {
	return func(yield func(*Resource, error) bool) {
		abs, err := r.AbsPath()
		if err != nil {
			yield(nil, err)
			return
		}
		ents, err := r.store.List(ctx, abs)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, ent := range ents {
			if !yield(r.Child(ent.Name), nil) {
				return
			}
		}
	}
}

// Descendants yields the subtree in depth-first pre-order, one handle at
// a time, without materializing the tree. depth bounds the recursion:
// 0 stops at the resource itself, a positive value is decremented per
// level, and a negative value (DepthInfinity) never stops expanding.
// includeSelf controls only the top-level resource; recursion always
// yields the children themselves.
func (r *Resource) Descendants(ctx context.Context, depth int, includeSelf bool) iter.Seq2[*Resource, error] {
	return func(yield func(*Resource, error) bool) {
		r.walk(ctx, depth, includeSelf, yield)
	}
}

func (r *Resource) walk(ctx context.Context, depth int, includeSelf bool, yield func(*Resource, error) bool) bool {
	if err := ctx.Err(); err != nil {
		yield(nil, err)
		return false
	}
	if includeSelf && !yield(r, nil) {
		return false
	}
	if depth == 0 || !r.IsCollection(ctx) {
		return true
	}
	for child, err := range r.Children(ctx) {
		if err != nil {
			yield(nil, err)
			return false
		}
		if !child.walk(ctx, depth-1, true, yield) {
			return false
		}
	}
	return true
}
