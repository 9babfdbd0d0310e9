package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pet-care-tracker/internal/adapters/auth/jwt"
	"pet-care-tracker/internal/adapters/media/disk"
	"pet-care-tracker/internal/adapters/media/miniostore"
	"pet-care-tracker/internal/adapters/pubsub/redisrelay"
	pg "pet-care-tracker/internal/adapters/storage/postgres"
	"pet-care-tracker/internal/domain/media"
	"pet-care-tracker/internal/domain/notify"
	"pet-care-tracker/internal/platform/config"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// @title Pet Care Tracker API
// @version 1.0
// @description API de mascotas: usuarios, perfiles, horarios de comida y diario con fotos/videos.
// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <token>

var configPath string

var rootCmd = &cobra.Command{
	Use:   "petcare",
	Short: "Pet care tracker API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, reminder scheduler and notification relay",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, log)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if strings.TrimSpace(cfg.DatabaseDSN) == "" {
			return errors.New("DB_DSN is required to migrate")
		}
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		return pg.Migrate(cmd.Context(), db, log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default: $CONFIG_PATH)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (config.Config, logger.Logger, error) {
	config.LoadDotenv()
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}

func serve(ctx context.Context, cfg config.Config, log logger.Logger) error {
	var db *sql.DB
	if strings.TrimSpace(cfg.DatabaseDSN) != "" {
		opened, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer opened.Close()
		if err := pg.Migrate(ctx, opened, log); err != nil {
			return err
		}
		db = opened
	}

	var (
		objects media.ObjectStore
		uploads http.Handler
	)
	if strings.TrimSpace(cfg.MinioEndpoint) != "" {
		store, err := miniostore.New(ctx, miniostore.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return fmt.Errorf("minio: %w", err)
		}
		objects = store
	} else {
		store, err := disk.NewStore(cfg.UploadDir)
		if err != nil {
			return fmt.Errorf("upload dir: %w", err)
		}
		objects = store
		uploads = store.Handler()
	}

	hub := notify.NewHub(cfg.CORSOrigins, log)

	var (
		pub   notify.Publisher = notify.NewLocalPublisher(hub)
		relay *redisrelay.Relay
	)
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		r, err := redisrelay.New(redisrelay.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Channel:  cfg.RedisChannel,
		}, hub, log)
		if err != nil {
			return err
		}
		defer r.Close()
		if err := r.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		relay, pub = r, r
	}

	scheduler, err := notify.NewScheduler(cfg.ReminderCron, cfg.ReminderMessage, pub, log)
	if err != nil {
		return err
	}

	tokens := jwt.NewManager(jwt.Config{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL, Issuer: cfg.AppName})

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Config:        cfg,
			Logger:        log,
			AuthVerifier:  tokens,
			TokenIssuer:   tokens,
			DB:            db,
			ObjectStore:   objects,
			Uploads:       uploads,
			Notifications: hub,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		hub.Close()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error { return scheduler.Run(gctx) })
	if relay != nil {
		g.Go(func() error { return relay.Run(gctx) })
	}

	err = g.Wait()
	log.Info("server stopped", nil)
	return err
}
