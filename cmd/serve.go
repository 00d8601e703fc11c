package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"navhub/internal/analyzer"
	"navhub/internal/api"
	"navhub/internal/assistant"
	"navhub/internal/catalog"
	"navhub/internal/config"
	"navhub/pkg/aiclient/zhipu"
	"navhub/pkg/logger"
	"navhub/pkg/webmeta"
)

func setupServer(ctx context.Context, deps api.Deps, cfg *config.Config) func(ctx context.Context) {
	server := api.NewServer(deps, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			var cache redis.UniversalClient
			if cfg.Redis.Addr != "" {
				client := redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				defer func() {
					if err := client.Close(); err != nil {
						logger.Warn(ctx, "could not close redis client", zap.Error(err))
					}
				}()
				cache = client
			}

			var aiOpts []zhipu.Option
			if cfg.AI.BaseURL != "" {
				aiOpts = append(aiOpts, zhipu.WithBaseURL(cfg.AI.BaseURL))
			}
			if cfg.AI.Model != "" {
				aiOpts = append(aiOpts, zhipu.WithModel(cfg.AI.Model))
			}
			ai := zhipu.New(&http.Client{Timeout: cfg.AI.Timeout}, cfg.AI.APIKey, aiOpts...)

			extractor := webmeta.New(webmeta.Options{
				FetchTimeout: cfg.Extractor.FetchTimeout,
				ProbeTimeout: cfg.Extractor.FaviconProbeTimeout,
			})

			cat := catalog.New(strg, catalog.NewOptions(cfg))

			stopWebserver := setupServer(ctx, api.Deps{
				Catalog:   cat,
				Analyzer:  analyzer.New(ai, cat, extractor, cache, analyzer.NewOptions(cfg)),
				Assistant: assistant.New(ai, cat),
			}, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
