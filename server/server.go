package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/adaptor"
	"github.com/xxxsen/davfs/resource"
	"github.com/xxxsen/davfs/store/local"
	"go.uber.org/zap"
	"golang.org/x/net/webdav"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// AllowMethods is the method set routed to the webdav handler.
var AllowMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
	"PROPFIND",
	"PROPPATCH",
	"MKCOL",
	"COPY",
	"MOVE",
	"LOCK",
	"UNLOCK",
}

// Server serves one filesystem-backed resource namespace over WebDAV. The
// protocol framing, xml bodies and lock bookkeeping stay inside
// x/net/webdav; this package only wires the resource layer under it.
type Server struct {
	c      *config
	bind   string
	engine *gin.Engine
}

func New(bind string, opts ...Option) (*Server, error) {
	c := applyOpts(opts...)
	if len(c.root) == 0 {
		return nil, fmt.Errorf("namespace root is required")
	}
	svr := &Server{c: c, bind: bind}
	svr.engine = gin.New()
	svr.engine.Use(gin.Recovery())
	svr.initAPI(svr.engine)
	return svr, nil
}

func (s *Server) initAPI(router *gin.Engine) {
	var sopts []local.Option
	if s.c.atomicWrite {
		sopts = append(sopts, local.WithAtomicWrite())
	}
	st := local.New(sopts...)
	srv := resource.NewStaticServer(s.c.root, s.c.baseURL)
	h := &webdav.Handler{
		Prefix:     s.c.prefix,
		FileSystem: adaptor.ToWebdavFS(srv, st),
		LockSystem: webdav.NewMemLS(),
		Logger: func(req *http.Request, err error) {
			if err == nil {
				return
			}
			logutil.GetLogger(req.Context()).Error("webdav op failed",
				zap.String("method", req.Method), zap.String("path", req.URL.Path), zap.Error(err))
		},
	}
	wrap := gin.WrapH(h)
	pattern := "/*all"
	if len(s.c.prefix) != 0 {
		pattern = s.c.prefix + "/*all"
	}
	for _, method := range AllowMethods {
		router.Handle(method, pattern, wrap)
	}
}

func (s *Server) Run() error {
	return s.engine.Run(s.bind)
}
