package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/bookhub/library/config"
	"github.com/Astemirdum/bookhub/library/internal/handler"
	"github.com/Astemirdum/bookhub/library/internal/publisher"
	"github.com/Astemirdum/bookhub/library/internal/repository"
	"github.com/Astemirdum/bookhub/library/internal/server"
	"github.com/Astemirdum/bookhub/library/internal/service"
	"github.com/Astemirdum/bookhub/library/migrations"
	"github.com/Astemirdum/bookhub/pkg/kafka"
	"github.com/Astemirdum/bookhub/pkg/logger"
	"github.com/Astemirdum/bookhub/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	defer log.Sync() //nolint:errcheck

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %w", err)
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %w", err)
	}

	pub := publisher.Nop()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewSyncProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka.NewSyncProducer %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warn("producer.Close", zap.Error(err))
			}
		}()
		pub = publisher.New(producer, kafka.CatalogTopic, log)
	} else {
		log.Info("kafka is not configured, catalog events are dropped")
	}

	svc := service.NewService(repo, pub, log)

	h := handler.New(svc, svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}
