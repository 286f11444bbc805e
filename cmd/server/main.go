package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"aegis/internal/alert"
	"aegis/internal/alert/faq"
	alerthandler "aegis/internal/alert/handler"
	alertmetrics "aegis/internal/alert/metrics"
	"aegis/internal/alert/sms"
	"aegis/internal/alert/voice"
	"aegis/internal/health"
	"aegis/internal/platform/config"
	"aegis/internal/platform/httpserver"
	"aegis/internal/platform/logger"
	"aegis/internal/registry"
	registryhandler "aegis/internal/registry/handler"
	registrymetrics "aegis/internal/registry/metrics"
	"aegis/pkg/platform/middleware/requestid"
	"aegis/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	recipients := registry.NewInMemoryRecipientStore()
	locations := registry.NewInMemoryLocationStore()
	registrySvc := registry.New(recipients, locations, cfg.FallbackNumbers, log, registrymetrics.New())

	faqLoader := faq.New(cfg.EventsDir, log)

	// A channel with incomplete credentials stays nil: the gateway keeps
	// serving and reports the channel unavailable on use.
	var textNotifier, callNotifier alert.Notifier
	if cfg.Twilio.Complete() {
		textNotifier = sms.New(cfg.Twilio)
	} else {
		log.Warn("text channel disabled: Twilio credentials not configured")
	}
	if cfg.VAPI.Complete() {
		callNotifier = voice.New(cfg.VAPI, faqLoader)
	} else {
		log.Warn("call channel disabled: VAPI credentials not configured")
	}
	dispatcher := alert.NewDispatcher(textNotifier, callNotifier, log, alertmetrics.New())

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	health.New(registrySvc, dispatcher).Register(r)
	registryhandler.New(registrySvc, log).Register(r)
	alerthandler.New(dispatcher, registrySvc, faqLoader, log).Register(r)
	r.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting aegis gateway", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
