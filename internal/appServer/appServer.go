package appServer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/campusbuzz/campusbuzz-api/config"
	"github.com/campusbuzz/campusbuzz-api/internal/database"
	"github.com/campusbuzz/campusbuzz-api/internal/entity"
	"github.com/campusbuzz/campusbuzz-api/internal/service"
	"github.com/campusbuzz/campusbuzz-api/internal/transport"
	"github.com/campusbuzz/campusbuzz-api/pkg/postgres"
	"github.com/campusbuzz/campusbuzz-api/pkg/rabbitMQ"
	"github.com/campusbuzz/campusbuzz-api/pkg/redis"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// newStore builds the persistence slot selected by configuration.
func newStore(cfg *config.Config) (database.Store, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case "memory":
		return database.NewMemoryStore(), noop, nil

	case "file", "":
		store, err := database.NewFileStore(cfg.Storage.Path)
		return store, noop, err

	case "redis":
		client := redis.NewRedisClient(&cfg.Redis)
		store, err := database.NewRedisStore(client)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return store, func() { client.Close() }, nil

	case "postgres":
		db, err := postgres.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return database.NewPostgresStore(db), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	ctx := context.Background()

	store, closeStore, err := newStore(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStore()
	logrus.Infof("Storage backend initialized: %s", cfg.Storage.Backend)

	// Observer bus: every mutation notification fans out synchronously.
	notifier := service.NewNotifier()
	notifier.Subscribe(func(n entity.Notification) {
		entry := logrus.WithFields(logrus.Fields{
			"title": n.Title,
			"level": n.Level,
		})
		if n.Level == entity.NotificationError {
			entry.Warn(n.Message)
		} else {
			entry.Info(n.Message)
		}
	})

	if cfg.RabbitMQ.Enabled {
		queue, err := rabbitMQ.NewRabbitMQ(rabbitMQ.RabbitMQConfig{
			URL:       cfg.RabbitMQ.URL,
			QueueName: cfg.RabbitMQ.QueueName,
		})
		if err != nil {
			logrus.Errorf("Failed to initialize RabbitMQ: %v. Continuing without queue...", err)
		} else {
			defer queue.Close()
			notifier.Subscribe(func(n entity.Notification) {
				if err := queue.Publish(ctx, n); err != nil {
					logrus.Errorf("Failed to publish notification: %v", err)
				}
			})
			logrus.Info("RabbitMQ notification publisher initialized")
		}
	}

	// Initialize services
	eventService, err := service.NewEventService(ctx, store, notifier)
	if err != nil {
		logrus.Fatalf("Failed to initialize event registry: %v", err)
	}
	userService, err := service.NewUserService(ctx, store, notifier)
	if err != nil {
		logrus.Fatalf("Failed to initialize identity store: %v", err)
	}

	// Initialize handlers
	eventHandler := transport.NewEventHandler(eventService, userService)
	userHandler := transport.NewUserHandler(userService)
	adminHandler := transport.NewAdminHandler(eventService)

	if cfg.Server.Mode == "release" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(eventHandler, userHandler, adminHandler, userService)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
