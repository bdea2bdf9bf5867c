package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

func main() {
	cfg := LoadConfig()
	setupLogging(cfg.ServiceEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer repo.Close()

	var events Publisher = noopPublisher{}
	if rb, err := NewRabbit(cfg.RabbitURL, cfg.RabbitExchange); err != nil {
		log.Warn().Err(err).Msg("RabbitMQ not available, continuing without events")
	} else {
		defer rb.Close()
		events = rb
	}

	cartCC, err := grpc.NewClient(cfg.CartGRPCAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal().Err(err).Msg("dial cart")
	}
	defer cartCC.Close()

	srv := NewOrderServer(repo, events, NewCartClient(rpc.NewCartClient(cartCC)))

	grpcServer, hs := newGRPCServer(srv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.GRPCAddr).Msg("[order] gRPC listening")
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		hs.Shutdown()
		grpcServer.GracefulStop()
		return nil
	})
	if err := g.Wait(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		log.Fatal().Err(err).Msg("serve")
	}
}

func newGRPCServer(srv rpc.OrderServer) (*grpc.Server, *health.Server) {
	s := grpc.NewServer()
	rpc.RegisterOrderServer(s, srv)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return s, hs
}
