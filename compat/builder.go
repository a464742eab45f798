// FILE: lixenwraith/lazylog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/lazylog"
)

// Logger names used by adapters built from a registry
const (
	GnetLoggerName     = "gnet"
	FastHTTPLoggerName = "fasthttp"
	FiberLoggerName    = "fiber"
)

// Builder creates adapters for gnet, fasthttp and Fiber backed by named loggers of one registry.
// It can use an existing *lazylog.Registry or create a new one from a *lazylog.Config.
type Builder struct {
	registry *lazylog.Registry
	cfg      *lazylog.Config
	err      error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithRegistry specifies an existing registry; WithConfig is then ignored
func (b *Builder) WithRegistry(r *lazylog.Registry) *Builder {
	if r == nil {
		b.err = fmt.Errorf("lazylog/compat: provided registry cannot be nil")
		return b
	}
	b.registry = r
	return b
}

// WithConfig provides a configuration for a new registry.
// If neither WithRegistry nor WithConfig is used, the default configuration applies.
func (b *Builder) WithConfig(cfg *lazylog.Config) *Builder {
	b.cfg = cfg
	return b
}

// getRegistry resolves the registry to be used, creating one if necessary
func (b *Builder) getRegistry() (*lazylog.Registry, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.registry != nil {
		return b.registry, nil
	}

	cfg := b.cfg
	if cfg == nil {
		cfg = lazylog.DefaultConfig()
	}
	r, err := lazylog.NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Cache the newly created registry for subsequent builds with this builder
	b.registry = r
	return r, nil
}

// BuildGnet creates a gnet adapter logging under the "gnet" logger
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	r, err := b.getRegistry()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(r.Get(GnetLoggerName), opts...), nil
}

// BuildStructuredGnet creates a gnet adapter that renders key/value directives as JSON
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	r, err := b.getRegistry()
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(r.Get(GnetLoggerName), opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter logging under the "fasthttp" logger
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	r, err := b.getRegistry()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(r.Get(FastHTTPLoggerName), opts...), nil
}

// BuildFiber creates a Fiber adapter logging under the "fiber" logger
func (b *Builder) BuildFiber(opts ...FiberOption) (*FiberAdapter, error) {
	r, err := b.getRegistry()
	if err != nil {
		return nil, err
	}
	return NewFiberAdapter(r.Get(FiberLoggerName), opts...), nil
}

// Registry returns the underlying registry, creating it if needed
func (b *Builder) Registry() (*lazylog.Registry, error) {
	return b.getRegistry()
}

// --- Example Usage ---
//
//	registry, err := lazylog.NewBuilder().
//		EnableConsole(true, lazylog.LevelInfo).
//		Build()
//	if err != nil { /* handle error */ }
//
//	builder := compat.NewBuilder().WithRegistry(registry)
//
//	gnetLogger, _ := builder.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
//
//	fiberLogger, _ := builder.BuildFiber()
//	log.SetLogger(fiberLogger) // github.com/gofiber/fiber/v2/log
