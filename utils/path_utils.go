package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xxxsen/davfs/errs"
)

// SafeJoin joins a namespace root with a caller-supplied relative path and
// guarantees the result stays inside root. Escaping the root (e.g. via
// "../../etc/passwd") fails with errs.ErrPathEscape instead of resolving.
func SafeJoin(root string, rel string) (string, error) {
	cleanRoot := filepath.Clean(root)
	joined := filepath.Join(cleanRoot, filepath.FromSlash(rel))
	sub, err := filepath.Rel(cleanRoot, joined)
	if err != nil {
		return "", errs.Wrap(errs.ErrPathEscape, fmt.Sprintf("resolve %q against root failed", rel), err)
	}
	if sub == ".." || strings.HasPrefix(sub, ".."+string(filepath.Separator)) {
		return "", errs.New(errs.ErrPathEscape, fmt.Sprintf("path %q resolves outside root", rel))
	}
	return joined, nil
}

// URLJoin glues the externally visible base url and a logical path with
// exactly one separator between them.
func URLJoin(base string, p string) string {
	base = strings.TrimSuffix(base, "/")
	p = strings.TrimPrefix(p, "/")
	if len(p) == 0 {
		return base
	}
	return base + "/" + p
}
