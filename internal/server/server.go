package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Feaman/interview-server/config"
	"github.com/Feaman/interview-server/internal/db"
	"github.com/Feaman/interview-server/internal/events"
	"github.com/Feaman/interview-server/internal/handlers"
	"github.com/Feaman/interview-server/internal/identity"
	"github.com/Feaman/interview-server/internal/services"
	"github.com/Feaman/interview-server/internal/storage"
	"github.com/Feaman/interview-server/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	bus        *events.Bus
}

// New constructs a Server: opens the storage pool, wires repositories,
// services, the identity resolver, and the HTTP routes.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	objects, diskRoot, err := buildStorage(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	bus, err := buildEvents(ctx, cfg.Events)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	var publisher services.EventPublisher
	if bus != nil {
		publisher = bus
	}

	userRepo := store.NewUserRepository(dbConn)
	candidateRepo := store.NewCandidateRepository(dbConn)
	templateRepo := store.NewTemplateRepository(dbConn)
	fileRepo := store.NewFileRepository(dbConn)

	userService := services.NewUserService(userRepo, objects, logger)
	candidateService := services.NewCandidateService(candidateRepo, objects, logger)
	templateService := services.NewTemplateService(templateRepo)
	fileService := services.NewFileService(fileRepo, objects, publisher, logger)

	resolver := identity.NewResolver(userService, cfg.JWTSecret, logger)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		corsMiddleware,
		identity.Middleware(resolver),
	)

	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, handlers.NewAuthHandler(userService, candidateService, objects, cfg.JWTSecret))
	router.Route("/candidates", func(r chi.Router) {
		handlers.CandidateRouter(r, handlers.NewCandidateHandler(candidateService, objects))
	})
	router.Route("/templates", func(r chi.Router) {
		handlers.TemplateRouter(r, handlers.NewTemplateHandler(templateService))
	})
	router.Route("/files", func(r chi.Router) {
		handlers.FileRouter(r, handlers.NewFileHandler(fileService, objects))
	})
	if diskRoot != "" {
		fileServer := http.StripPrefix("/storage/", http.FileServer(http.Dir(diskRoot)))
		router.Get("/storage/*", fileServer.ServeHTTP)
	}

	port := cfg.ServerPort
	if port == 0 {
		port = 3016
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		bus:        bus,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.bus != nil {
		_ = s.bus.Close()
	}
	return s.httpServer.Close()
}

// buildStorage selects the object-storage backend. The disk backend
// additionally reports its root so the router can serve it statically.
func buildStorage(ctx context.Context, cfg config.StorageConfig) (*storage.Storage, string, error) {
	switch cfg.Backend {
	case config.StorageBackendMinio:
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, "", err
		}
		wrapped := storage.NewStorage(client)
		if err := wrapped.EnsureBucket(ctx); err != nil {
			return nil, "", err
		}
		return wrapped, "", nil
	case config.StorageBackendGCS:
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, "", err
		}
		wrapped := storage.NewStorage(client)
		if err := wrapped.EnsureBucket(ctx); err != nil {
			return nil, "", err
		}
		return wrapped, "", nil
	case config.StorageBackendDisk, "":
		client, err := storage.NewDiskClient(cfg.Disk.Root)
		if err != nil {
			return nil, "", err
		}
		wrapped := storage.NewStorage(client)
		if err := wrapped.EnsureBucket(ctx); err != nil {
			return nil, "", err
		}
		return wrapped, client.Root(), nil
	default:
		return nil, "", fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// buildEvents selects the broker backend; an empty backend disables
// event publishing.
func buildEvents(ctx context.Context, cfg config.EventsConfig) (*events.Bus, error) {
	switch cfg.Backend {
	case config.EventsBackendRabbitMQ:
		client, err := events.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return events.New(client), nil
	case config.EventsBackendPubSub:
		client, err := events.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return events.New(client), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
