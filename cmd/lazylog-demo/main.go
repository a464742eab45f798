package main

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/lazylog"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	var (
		configFile = pflag.StringP("config", "c", "", "TOML config file with a [lazylog] table")
		overrides  = pflag.StringArrayP("set", "s", nil, "config override as key=value, repeatable")
		level      = pflag.StringP("level", "l", "", "console level (debug, info, warn, error, critical)")
		withJSON   = pflag.Bool("zerolog", false, "also mirror records to a zerolog JSON sink on stdout")
	)
	pflag.Parse()

	cfg, err := lazylog.NewConfigFromFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *level != "" {
		*overrides = append(*overrides, "console_level="+*level)
	}
	if err := cfg.ApplyOverride(*overrides...); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid override: %v\n", err)
		os.Exit(1)
	}

	if err := lazylog.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer lazylog.DefaultRegistry().Close()

	if *withJSON {
		zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
		lazylog.AttachSink("", lazylog.NewZerologSink(zl, lazylog.LevelDebug))
	}

	db := lazylog.GetLogger("db")
	net := lazylog.GetLogger("net")

	lazylog.Info("demo started at %s with %d loggers", time.Now().Format(time.Kitchen), len(lazylog.DefaultRegistry().Names())+1)

	// Skipped entirely unless some sink accepts DEBUG
	db.Debug("query plan: %j", lazylog.Lazy(func() any {
		return map[string]any{"table": "users", "rows": 1 << 60, "index": []string{"id", "email"}}
	}))

	payload := []byte("GET /index.html HTTP/1.1")
	sum := sha256.Sum256(payload)
	net.Info("request digest %.8h (%d bytes)", sum, len(payload))
	net.Info("payload: %v", lazylog.LazyHex(payload, " ", 8))

	cycle := map[string]any{"name": "loop"}
	cycle["self"] = cycle
	net.Warn("cyclic value rendered safely: %j", cycle)

	net.Error("count=%s", 42)
	db.Error("failed lookup: %s", lazylog.LazyErr(func() (any, error) {
		return nil, errors.New("connection reset")
	}))

	lazylog.Exception(lazylog.WithStack(errors.New("demo finished with a simulated failure")))
}
