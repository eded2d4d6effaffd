package local

import (
	"errors"
	"io/fs"
	"syscall"

	"github.com/xxxsen/davfs/errs"
)

func classify(op string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errs.Wrap(errs.ErrNotFound, op+" failed", err)
	case errors.Is(err, syscall.ENOTDIR):
		return errs.Wrap(errs.ErrNotCollection, op+" failed", err)
	case errors.Is(err, syscall.EISDIR):
		return errs.Wrap(errs.ErrNotItem, op+" failed", err)
	default:
		return errs.Wrap(errs.ErrIO, op+" failed", err)
	}
}
