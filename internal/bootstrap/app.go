package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"listdist/internal/lists"
	"listdist/internal/shared/config"
	"listdist/internal/shared/server"
	"listdist/internal/shared/server/middleware"
	"listdist/internal/shared/storage/db"
	"listdist/internal/shared/storage/object"
	localstore "listdist/internal/shared/storage/object/local"
	s3store "listdist/internal/shared/storage/object/s3"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	ListsRepo    lists.Repo
	ListsService *lists.Service
	ListsHandler *lists.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      app.Config,
		ListHandler: app.ListsHandler,
		RateLimiter: middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool if one was opened.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory history")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory history: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory history: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "none":
		return nil, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var repo lists.Repo
	if app.DB != nil {
		repo = &lists.PGRepo{DB: app.DB}
	} else {
		repo = lists.NewMemoryRepo()
	}

	svc := &lists.Service{
		Repo:           repo,
		Store:          app.Store,
		Roster:         app.Config.AgentRoster,
		MimeTypes:      app.Config.AllowedMimeTypes,
		ParserMode:     app.Config.ParserMode,
		MaxUploadBytes: app.Config.MaxUploadBytes,
	}
	app.ListsRepo = repo
	app.ListsService = svc
	app.ListsHandler = lists.NewHandler(svc)
}
