package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/waha-dashboard/config"
	"github.com/marcelsud/waha-dashboard/internal/http/chi"
	"github.com/marcelsud/waha-dashboard/metrics"
	"github.com/marcelsud/waha-dashboard/registry"
	"github.com/marcelsud/waha-dashboard/stream"
	streamredis "github.com/marcelsud/waha-dashboard/stream/redis"
	"github.com/marcelsud/waha-dashboard/upstreams"
	"github.com/marcelsud/waha-dashboard/waha"
	"github.com/marcelsud/waha-dashboard/webhook"
	"github.com/marcelsud/waha-dashboard/webhook/signature"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const TIMEOUT = 30 * time.Second

/*
 * As importações devem ser feitas apenas em uma direção: para baixo. O aplicativo (api, cli) importa camadas de negócios,
 * que importam a camada de armazenamento
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	logger := httplog.NewLogger("waha-dashboard", httplog.Options{
		JSON: true,
	})

	newClient := clientFactory(cfg)
	clients := registry.New(newClient(cfg.WahaAPIURL, cfg.WahaAPIKey), newClient)
	if cfg.UpstreamsFile != "" {
		if err := seedUpstreams(ctx, cfg.UpstreamsFile, clients, logger); err != nil {
			fmt.Println(err)
			return
		}
	}

	hub := stream.NewHub(cfg.StreamClientBuffer, logger)
	var publisher webhook.Publisher = hub
	if cfg.RedisEnabled() {
		relay, err := streamredis.NewRelay(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel, hub, logger)
		if err != nil {
			fmt.Println(err)
			return
		}
		defer relay.Close()
		go func() {
			if err := relay.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("stream relay stopped")
			}
		}()
		publisher = relay
	}

	opts := []webhook.Option{
		webhook.WithPublisher(publisher),
		webhook.WithLogger(logger),
	}
	if cfg.WebhookHMACKey != "" {
		verifier, err := signature.NewVerifier(cfg.WebhookHMACKey)
		if err != nil {
			fmt.Println(err)
			return
		}
		opts = append(opts, webhook.WithVerifier(verifier))
	}
	webhookService := webhook.NewService(webhook.NewBuffer(webhook.Capacity), opts...)

	exporter, err := metrics.NewOTelExporter(metrics.NewStateCollector(webhookService, hub, clients))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(context.Background())

	r := chi.Handlers(chi.Deps{
		Clients:  clients,
		Webhooks: webhookService,
		Hub:      hub,
		Metrics:  exporter.Handler(),
		Logger:   logger,
	})
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}
	// Open streams end when the hub closes, otherwise Shutdown waits for them
	srv.RegisterOnShutdown(hub.Close)

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

// clientFactory builds upstream clients that share the process settings.
// Every client gets its own send limiter.
func clientFactory(cfg *config.Config) registry.Factory {
	return func(baseURL, apiKey string) waha.API {
		var opts []waha.Option
		if cfg.SendThrottled() {
			opts = append(opts, waha.WithSendLimiter(rate.NewLimiter(rate.Limit(cfg.SendRatePerSecond), cfg.SendBurst)))
		}
		if cfg.WebhookHMACKey != "" {
			opts = append(opts, waha.WithWebhookHMACKey(cfg.WebhookHMACKey))
		}
		return waha.New(baseURL, apiKey, opts...)
	}
}

func seedUpstreams(ctx context.Context, file string, clients *registry.Registry, logger zerolog.Logger) error {
	loader := upstreams.NewLoader()
	if err := loader.Load(file); err != nil {
		return err
	}
	if err := loader.Apply(clients); err != nil {
		return err
	}
	logger.Info().Str("file", file).Int("upstreams", len(loader.List())).Msg("upstreams loaded")

	go func() {
		err := upstreams.Watch(ctx, file, logger, func(l *upstreams.Loader) {
			if err := l.Apply(clients); err != nil {
				logger.Error().Err(err).Msg("applying reloaded upstreams")
			}
		})
		if err != nil {
			logger.Error().Err(err).Str("file", file).Msg("upstreams watch stopped")
		}
	}()
	return nil
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
