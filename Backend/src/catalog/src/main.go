package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

func main() {
	cfg := LoadConfig()
	setupLogging(cfg.ServiceEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB + migración + seed opcional
	db, err := openSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()

	mctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = migrate(mctx, db, cfg.Seed)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
	s, hs := newGRPCServer(NewCatalogServer(NewSQLiteRepo(db)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.GRPCAddr).Str("db", cfg.DBPath).Msg("Catalog service listening")
		return s.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		hs.Shutdown()
		s.GracefulStop()
		return nil
	})
	if err := g.Wait(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		log.Fatal().Err(err).Msg("serve")
	}
}

func newGRPCServer(srv rpc.CatalogServer) (*grpc.Server, *health.Server) {
	s := grpc.NewServer()
	rpc.RegisterCatalogServer(s, srv)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return s, hs
}
