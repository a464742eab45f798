// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/lazylog"
	"github.com/lixenwraith/lazylog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	cfg, err := lazylog.NewConfigFromDefaults(map[string]any{
		"directory":   "/var/log/fasthttp",
		"enable_file": true,
		"level":       "info",
		"format":      "txt",
	})
	if err != nil {
		panic(err)
	}

	builder := compat.NewBuilder().WithConfig(cfg)
	fasthttpAdapter, err := builder.BuildFastHTTP(
		compat.WithDefaultLevel(lazylog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)
	if err != nil {
		panic(err)
	}

	registry, err := builder.Registry()
	if err != nil {
		panic(err)
	}
	defer registry.Close()
	access := registry.Get("access")

	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			ctx.SetContentType("text/plain")
			fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
			access.Info("%s %s -> %d in %v", string(ctx.Method()), string(ctx.Path()), ctx.Response.StatusCode(), lazylog.Lazy(func() any {
				return time.Since(start)
			}))
		},
		Logger: fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func customLevelDetector(msg string) lazylog.Level {
	if strings.Contains(msg, "connection cannot be served") {
		return lazylog.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return lazylog.LevelError
	}
	return compat.DetectLogLevel(msg)
}
