package main

import (
	"log/slog"
	"net"
	"net/http"
	"path"
	"strings"

	"github.com/LubyRuffy/deltabridge/auth"
	"github.com/LubyRuffy/deltabridge/bridge"
	"github.com/LubyRuffy/deltabridge/config"
	"github.com/LubyRuffy/deltabridge/observability"
	"github.com/gin-gonic/gin"
)

func newRouter(cfg *config.Config, provider auth.Provider, logger *slog.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	err := bridge.RegisterGinRoutes(r, bridge.Config{
		BasePath:     cfg.BasePath,
		UpstreamURL:  cfg.Upstream.URL,
		Model:        cfg.Upstream.Model,
		HTTPClient:   &http.Client{Timeout: cfg.Upstream.Timeout},
		Credentials:  provider,
		InterceptURL: cfg.Intercept.URL,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(observability.Handler()))
	return r, nil
}

// addrForLocalClient 把通配监听地址换成本机可访问的地址，用于打印示例命令。
func addrForLocalClient(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}

func joinBase(basePath, suffix string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		basePath = "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return path.Join(basePath, suffix)
}
