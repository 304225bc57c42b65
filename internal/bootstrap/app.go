package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"lawdocs-backend/internal/chat"
	"lawdocs-backend/internal/compare"
	"lawdocs-backend/internal/convert"
	"lawdocs-backend/internal/documents"
	"lawdocs-backend/internal/shared/config"
	"lawdocs-backend/internal/shared/server"
	"lawdocs-backend/internal/shared/storage/db"
	"lawdocs-backend/internal/shared/storage/object"
	localstore "lawdocs-backend/internal/shared/storage/object/local"
	s3store "lawdocs-backend/internal/shared/storage/object/s3"
	"lawdocs-backend/internal/workflow/n8n"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	DocumentsRepo    documents.DocumentsRepo
	DocumentsService *documents.Service
	CompareService   *compare.Service
	ChatService      *chat.Service
	Workflows        *n8n.Client
	Gate             *compare.Gate
}

// Build prepares shared dependencies and wires the router.
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

	var docRepo documents.DocumentsRepo
	if sqlDB != nil {
		docRepo = &documents.PGRepo{DB: sqlDB}
	} else {
		docRepo = documents.NewMemoryRepo()
	}

	converter, convertSvc, err := buildConverter(cfg)
	if err != nil {
		return nil, err
	}

	workflows := n8n.NewClient(
		cfg.VectorWorkflowURL,
		cfg.ChatWorkflowURL,
		cfg.CivicWorkflowURL,
		cfg.WorkflowAuthToken,
		cfg.WorkflowTimeout,
	)

	gate := compare.NewGate()
	docSvc := documents.NewService(store, docRepo, converter)
	compareSvc := compare.NewService(docSvc, workflows, gate)
	chatSvc := chat.NewService(workflows, compareSvc)

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Store:            store,
		DocumentsRepo:    docRepo,
		DocumentsService: docSvc,
		CompareService:   compareSvc,
		ChatService:      chatSvc,
		Workflows:        workflows,
		Gate:             gate,
	}

	app.Router = server.NewRouter(server.Deps{
		Config:           cfg,
		Store:            store,
		DocumentsHandler: documents.NewHandler(docSvc),
		ConvertHandler:   convert.NewHandler(convertSvc),
		CompareHandler:   compare.NewHandler(compareSvc),
		ChatHandler:      chat.NewHandler(chatSvc, workflows),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

// buildConverter picks the document converter. With CONVERT_SERVICE_URL set,
// uploads call the remote conversion endpoint; otherwise conversion runs
// in-process. The in-process service is always built because the
// /convert-document endpoint serves it either way.
func buildConverter(cfg config.Config) (documents.Converter, *convert.Service, error) {
	svc := convert.NewService()
	if strings.TrimSpace(cfg.ConvertServiceURL) == "" {
		return svc, svc, nil
	}
	client, err := convert.NewClient(cfg.ConvertServiceURL, cfg.WorkflowAuthToken)
	if err != nil {
		return nil, nil, fmt.Errorf("convert service client: %w", err)
	}
	return client, svc, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
