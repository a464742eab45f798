// FILE: example/gnet/main.go
package main

import (
	"github.com/lixenwraith/lazylog"
	"github.com/lixenwraith/lazylog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
	logger *lazylog.Logger
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	es.logger.Debug("echo %d bytes from %v: %.32h", len(buf), c.RemoteAddr(), buf)
	c.Write(buf)
	return gnet.None
}

func main() {
	registry, err := lazylog.NewBuilder().
		Level(lazylog.LevelDebug).
		Format("json").
		EnableFile(true, lazylog.LevelDebug).
		Directory("/var/log/gnet").
		Build()
	if err != nil {
		panic(err)
	}
	defer registry.Close()

	gnetAdapter, err := compat.NewBuilder().WithRegistry(registry).BuildStructuredGnet()
	if err != nil {
		panic(err)
	}

	err = gnet.Run(
		&echoServer{logger: registry.Get("echo")},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
