package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

func main() {
	cfg := LoadConfig()
	setupLogging(cfg.ServiceEnv, cfg.LogLevel)
	if cfg.ServiceEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogCC, err := grpc.NewClient(cfg.CatalogTarget, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal().Err(err).Str("target", cfg.CatalogTarget).Msg("dial catalog")
	}
	defer catalogCC.Close()

	cartCC, err := grpc.NewClient(cfg.CartTarget, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal().Err(err).Str("target", cfg.CartTarget).Msg("dial cart")
	}
	defer cartCC.Close()

	orderCC, err := grpc.NewClient(cfg.OrderTarget, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal().Err(err).Str("target", cfg.OrderTarget).Msg("dial order")
	}
	defer orderCC.Close()

	s := NewServer(rpc.NewCatalogClient(catalogCC), rpc.NewCartClient(cartCC), rpc.NewOrderClient(orderCC), cfg.RequestTimeout)
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Handler(cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("http", cfg.HTTPAddr).Str("cart", cfg.CartTarget).Str("order", cfg.OrderTarget).Msg("[gateway] listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("gateway")
	}
}
