package resource

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/errs"
	"go.uber.org/zap"
)

// Open returns a streaming reader over the item's bytes. Fails on
// collections and missing resources.
func (r *Resource) Open(ctx context.Context) (io.ReadCloser, error) {
	abs, err := r.AbsPath()
	if err != nil {
		return nil, err
	}
	return r.store.Open(ctx, abs)
}

// Read returns the full byte content. The whole item is held in memory;
// large-file callers should prefer Open.
func (r *Resource) Read(ctx context.Context) ([]byte, error) {
	rc, err := r.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, fmt.Sprintf("read stream failed, path:%s", r.path), err)
	}
	return data, nil
}

// Write replaces the item's bytes by streaming from src, creating the
// item if absent. The default store truncates in place, so a mid-stream
// failure leaves a partial item behind; build the store with atomic
// writes enabled when that matters.
func (r *Resource) Write(ctx context.Context, src io.Reader) error {
	abs, err := r.AbsPath()
	if err != nil {
		return err
	}
	wc, err := r.store.Create(ctx, abs)
	if err != nil {
		return err
	}
	n, err := io.Copy(wc, src)
	if err != nil {
		_ = wc.Close()
		return errs.Wrap(errs.ErrIO, fmt.Sprintf("write stream failed, path:%s", r.path), err)
	}
	if err := wc.Close(); err != nil {
		return errs.Wrap(errs.ErrIO, fmt.Sprintf("close write target failed, path:%s", r.path), err)
	}
	logutil.GetLogger(ctx).Debug("stream write finish", zap.String("path", r.path),
		zap.String("size", humanize.IBytes(uint64(n))))
	return nil
}
