package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	"github.com/apilab/rest-vs-graphql/internal/adapter/handler"
	"github.com/apilab/rest-vs-graphql/internal/adapter/storage"
	"github.com/apilab/rest-vs-graphql/internal/config"
	"github.com/apilab/rest-vs-graphql/internal/core/service"
	"github.com/apilab/rest-vs-graphql/pkg/logx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load config")
	}
	logx.Init(cfg.Environment.IsProduction())

	// One store instance shared by both API styles; that shared state is the
	// whole point of the comparison.
	store := storage.NewMemoryStore()
	catalog := service.NewCatalogService(store)

	restHandler := handler.NewRESTHandler(catalog)
	graphqlHandler, err := handler.NewGraphQLHandler(catalog)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build graphql schema")
	}

	corsMiddleware := cors.AllowAll()

	restServer := &http.Server{
		Addr:    cfg.RESTAddr,
		Handler: corsMiddleware.Handler(handler.WithMiddleware("rest", restHandler.Routes())),
	}
	graphqlServer := &http.Server{
		Addr:    cfg.GraphQLAddr,
		Handler: corsMiddleware.Handler(handler.WithMiddleware("graphql", graphqlHandler)),
	}

	go func() {
		logx.Info().Str("addr", cfg.RESTAddr).Msg("REST server listening")
		if err := restServer.ListenAndServe(); err != http.ErrServerClosed {
			logx.Error().Err(err).Msg("REST server error")
		}
	}()

	go func() {
		logx.Info().Str("addr", cfg.GraphQLAddr).Msg("GraphQL server listening (GraphiQL at /)")
		if err := graphqlServer.ListenAndServe(); err != http.ErrServerClosed {
			logx.Error().Err(err).Msg("GraphQL server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logx.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("REST server shutdown error")
	}
	if err := graphqlServer.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("GraphQL server shutdown error")
	}

	logx.Info().Msg("servers stopped")
}
