package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/vaibhavsidana/vaibhav-dev/internal/config"
	"github.com/vaibhavsidana/vaibhav-dev/internal/contact"
	"github.com/vaibhavsidana/vaibhav-dev/internal/delivery"
	"github.com/vaibhavsidana/vaibhav-dev/internal/observability"
	"github.com/vaibhavsidana/vaibhav-dev/internal/schedule"
	"github.com/vaibhavsidana/vaibhav-dev/internal/visitor"
)

func main() {
	logger := observability.Logger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	sender, err := newSender(cfg, logger)
	if err != nil {
		return err
	}
	hasher, err := newIPHasher()
	if err != nil {
		return fmt.Errorf("generate ip salt: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var scheduler schedule.Clock
	visitors := visitor.NewRegistry(cfg.SessionTTL, func() *contact.Controller {
		return contact.NewController(sender, scheduler, logger)
	})
	go visitors.Run(ctx, time.Minute, func(removed int) {
		logger.Info("evicted idle visitors", "count", removed, "remaining", visitors.Len())
	})

	r, err := newRouter(&server{
		content:       Content,
		visitors:      visitors,
		scheduler:     scheduler,
		logger:        logger,
		hasher:        hasher,
		now:           time.Now,
		secureCookies: cfg.GinMode == gin.ReleaseMode,
		sessionTTL:    cfg.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
		// request contexts end on shutdown so typewriter streams close
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("portfolio listening", "port", cfg.Port, "delivery", string(cfg.DeliveryBackend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func newSender(cfg *config.Config, logger *slog.Logger) (delivery.Sender, error) {
	switch cfg.DeliveryBackend {
	case config.BackendEmailJS:
		return delivery.NewEmailJS(delivery.EmailJSConfig{
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
			Endpoint:   cfg.EmailJSEndpoint,
			Timeout:    cfg.DeliveryTimeout,
		}, nil)
	case config.BackendSMTP:
		return delivery.NewSMTP(delivery.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			To:   cfg.ToEmail,
		})
	default:
		if cfg.GinMode == gin.ReleaseMode {
			logger.Warn("contact messages are only logged; set DELIVERY_BACKEND to emailjs or smtp")
		}
		return delivery.NewLog(logger, cfg.LogFailDelivery), nil
	}
}
