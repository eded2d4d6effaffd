package server

type config struct {
	root        string
	baseURL     string
	prefix      string
	atomicWrite bool
}

type Option func(c *config)

func WithRoot(root string) Option {
	return func(c *config) {
		c.root = root
	}
}

func WithBaseURL(u string) Option {
	return func(c *config) {
		c.baseURL = u
	}
}

func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

func WithAtomicWrite(v bool) Option {
	return func(c *config) {
		c.atomicWrite = v
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
