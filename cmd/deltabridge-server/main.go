package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LubyRuffy/deltabridge/auth"
	"github.com/LubyRuffy/deltabridge/config"
	"github.com/LubyRuffy/deltabridge/logging"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML config file (default: $DELTABRIDGE_CONFIG)")
		listen      = flag.String("listen", "", "listen address (overrides config)")
		basePath    = flag.String("base-path", "", "base path prefix (overrides config)")
		upstreamURL = flag.String("upstream-url", "", "chat.completions url (overrides config)")
		model       = flag.String("model", "", "upstream model id, openai/ prefix allowed (overrides config)")
		authSource  = flag.String("auth-source", "", "credential source: static|env|file|auto (overrides config)")
		logLevel    = flag.String("log-level", "", "debug|info|warn|error (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg, *listen, *basePath, *upstreamURL, *model, *authSource, *logLevel)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(logging.WithLevel(level), logging.WithJSON(cfg.LogJSON), logging.WithPrefix("deltabridge"))
	slog.SetDefault(logger)

	provider, err := cfg.CredentialProvider()
	if err != nil {
		logger.Error("invalid credential config", "error", err)
		os.Exit(1)
	}
	warnExposure(logger, provider, cfg.Credential.AllowUntrusted)

	router, err := newRouter(cfg, provider, logger)
	if err != nil {
		logger.Error("register routes failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	local := addrForLocalClient(cfg.Listen)
	logger.Info("deltabridge server listening", "url", fmt.Sprintf("http://%s%s", cfg.Listen, cfg.BasePath))
	logger.Info("try: curl http://" + local + joinBase(cfg.BasePath, "/models"))
	logger.Info("try: curl -N http://" + local + joinBase(cfg.BasePath, "/chat") + ` -H 'Content-Type: application/json' -d '{"text":"hi"}'`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown failed", "error", err)
		}
	}
}

func applyFlags(cfg *config.Config, listen, basePath, upstreamURL, model, authSource, logLevel string) {
	if listen != "" {
		cfg.Listen = listen
	}
	if basePath != "" {
		cfg.BasePath = basePath
	}
	if upstreamURL != "" {
		cfg.Upstream.URL = upstreamURL
	}
	if model != "" {
		cfg.Upstream.Model = model
	}
	if authSource != "" {
		cfg.Credential.Source = authSource
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

// warnExposure 在凭据是明文 key 且未声明允许时提示运维。
func warnExposure(logger *slog.Logger, provider auth.Provider, allowUntrusted bool) {
	key, err := provider.Credential(context.Background())
	if err != nil {
		logger.Warn("credential not available yet; calls will fail until it is", "error", err)
		return
	}
	if msg := auth.CheckExposure(key, allowUntrusted); msg != "" {
		logger.Warn(msg)
	}
}
