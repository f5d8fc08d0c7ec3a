package svc

import (
	"context"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/config"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/db"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/mq"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/storage"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/middleware"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/notify"

	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const ServiceName = "linkedin-clone-api"

// ServiceContext holds every dependency the handlers share. Cache, Rabbit
// and Storage may be nil when the backing service is unavailable.
type ServiceContext struct {
	Config   *config.Config
	DB       *gorm.DB
	Cache    *cache.RedisCache
	Rabbit   *mq.RabbitMQ
	Storage  *storage.FileStorage
	Notifier *notify.Notifier
	Consumer *mq.Consumer

	tracerProvider *trace.TracerProvider
}

// NewServiceContext connects every backing service. Only the database is mandatory.
func NewServiceContext(cfg *config.Config) (*ServiceContext, error) {
	dbConn, err := db.Init(cfg)
	if err != nil {
		return nil, err
	}

	rdb, err := cache.New(cfg)
	if err != nil {
		zap.L().Warn("Redis connection failed, continuing without Redis", zap.Error(err))
		rdb = nil
	} else {
		zap.L().Info("Redis connected successfully")
	}

	rabbit, err := mq.New(cfg)
	if err != nil {
		zap.L().Warn("RabbitMQ connection failed, notifications will be stored inline", zap.Error(err))
		rabbit = nil
	} else {
		zap.L().Info("RabbitMQ connected successfully")
	}

	s := New(cfg, dbConn, rdb)
	s.Rabbit = rabbit
	s.Notifier = notify.NewNotifier(dbConn, rdb, rabbit)

	if cfg.MinioEndpoint != "" {
		fs, err := storage.NewFileStorage(
			cfg.MinioEndpoint,  // "minio:9000" inside the compose network
			cfg.MinioPublicURL, // what browsers use, e.g. "http://localhost:9000"
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
		)
		if err != nil {
			zap.L().Warn("MinIO unavailable, avatar upload disabled", zap.Error(err))
		} else {
			s.Storage = fs
		}
	}

	if cfg.JaegerEndpoint != "" {
		tp, err := middleware.InitTracer(ServiceName, cfg.JaegerEndpoint, cfg.AppEnv)
		if err != nil {
			zap.L().Warn("tracer init failed, tracing disabled", zap.Error(err))
		} else {
			s.tracerProvider = tp
		}
	}

	if rabbit != nil {
		s.Consumer = mq.NewConsumer(rabbit)
		s.Consumer.Handle(notify.Queue, s.Notifier.HandleMessage)
		s.Consumer.Start()
	}

	return s, nil
}

// New builds a context around an already opened database and optional cache,
// with notifications stored inline.
func New(cfg *config.Config, dbConn *gorm.DB, rdb *cache.RedisCache) *ServiceContext {
	return &ServiceContext{
		Config:   cfg,
		DB:       dbConn,
		Cache:    rdb,
		Notifier: notify.NewNotifier(dbConn, rdb, nil),
	}
}

func (s *ServiceContext) TracingEnabled() bool {
	return s.tracerProvider != nil
}

func (s *ServiceContext) Close() {
	if s.Consumer != nil {
		s.Consumer.Stop()
	}

	if s.tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.tracerProvider.Shutdown(ctx); err != nil {
			zap.L().Error("Tracer shutdown error", zap.Error(err))
		}
	}

	if s.Rabbit != nil {
		s.Rabbit.Close()
		zap.L().Info("RabbitMQ closed")
	}

	if err := s.Cache.Close(); err != nil {
		zap.L().Warn("Redis close error", zap.Error(err))
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
