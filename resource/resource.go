package resource

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/xxxsen/davfs/store"
	"github.com/xxxsen/davfs/utils"
)

// Depth semantics shared by Descendants and Copy: 0 touches only the
// target itself, a positive value is decremented once per level, and any
// negative value means unbounded recursion.
const DepthInfinity = -1

// IServer supplies the namespace root and the externally visible base url
// used to build canonical resource urls. It is the session-side
// collaborator of a Resource; the protocol layer owns its lifetime.
type IServer interface {
	Root() string
	BaseURL() string
}

type staticServer struct {
	root    string
	baseURL string
}

// NewStaticServer builds the trivial IServer over a fixed root directory
// and base url.
func NewStaticServer(root string, baseURL string) IServer {
	return &staticServer{root: root, baseURL: baseURL}
}

func (s *staticServer) Root() string {
	return s.root
}

func (s *staticServer) BaseURL() string {
	return s.baseURL
}

// Resource is a handle over one node (item or collection) of a
// path-addressable namespace. It never caches store state: every metadata
// query re-reads the store at call time. A Resource is not safe for
// unsynchronized concurrent mutation of the same physical path; the
// protocol layer is expected to serialize overlapping requests (WebDAV
// LOCK or otherwise).
type Resource struct {
	srv   IServer
	store store.IStore
	path  string
}

// New builds a handle for a namespace-relative logical path. A trailing
// separator is stripped so dirname/basename behave; everything else is
// kept verbatim and only validated when the physical location is
// resolved.
func New(srv IServer, st store.IStore, p string) *Resource {
	for strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return &Resource{srv: srv, store: st, path: p}
}

// Path returns the logical path relative to the namespace root. The root
// resource has the empty path.
func (r *Resource) Path() string {
	return r.path
}

// AbsPath resolves the physical location by joining the namespace root
// with the logical path. The join is a security boundary: a path that
// would escape the root fails with errs.ErrPathEscape.
func (r *Resource) AbsPath() (string, error) {
	return utils.SafeJoin(r.srv.Root(), r.path)
}

// Name returns the last segment of the logical path, or "" for the root.
func (r *Resource) Name() string {
	if len(r.path) == 0 {
		return ""
	}
	return path.Base(r.path)
}

// DirName returns the physical directory containing this resource. Only
// used for low-level pre-checks; regular callers should go through
// Parent.
func (r *Resource) DirName() (string, error) {
	abs, err := r.AbsPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}

// URL joins the server's base url with the logical path.
func (r *Resource) URL() string {
	return utils.URLJoin(r.srv.BaseURL(), r.path)
}

// Parent returns a handle for the logical parent. The root resource is
// its own parent; callers that need a "no parent" signal should compare
// paths.
func (r *Resource) Parent() *Resource {
	if len(r.path) == 0 {
		return r
	}
	dir := path.Dir(r.path)
	if dir == "." || dir == "/" {
		dir = ""
	}
	return New(r.srv, r.store, dir)
}

// Child derives a handle for a direct child. Derived handles share the
// server and store references, so any store-specific behavior carries
// over to children, parents and copy targets.
func (r *Resource) Child(name string) *Resource {
	return New(r.srv, r.store, path.Join(r.path, name))
}
