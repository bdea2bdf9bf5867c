package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
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

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("open store")
	}
	defer closeStore()

	catalogCC, err := grpc.NewClient(cfg.CatalogGRPCAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.CatalogGRPCAddr).Msg("dial catalog")
	}
	defer catalogCC.Close()
	books := NewCatalogClient(rpc.NewCatalogClient(catalogCC), cfg.CatalogCache, cfg.CatalogCacheTTL)

	var events Events = noopEvents{}
	if rb, err := NewRabbit(cfg.RabbitURL, cfg.RabbitExchange); err != nil {
		log.Warn().Err(err).Msg("RabbitMQ not available, continuing without events")
	} else {
		events = rb
	}
	defer events.Close()

	svc := NewCartService(store, books, events, cfg.RefreshOnRead)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
	grpcServer, hs := newGRPCServer(NewCartServer(svc))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.GRPCAddr).Msg("CartService listening")
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

// newGRPCServer registra Cart y health. Sin reflection: los descriptores no son proto.
func newGRPCServer(srv rpc.CartServer) (*grpc.Server, *health.Server) {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary))
	rpc.RegisterCartServer(s, srv)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return s, hs
}

func openStore(ctx context.Context, cfg Config) (CartStore, func(), error) {
	switch cfg.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		return NewRedisStore(rdb, cfg.RedisKeyPrefix, cfg.RedisTTL), func() { _ = rdb.Close() }, nil
	default:
		db, err := openSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return NewSQLiteStore(db), func() { _ = db.Close() }, nil
	}
}
