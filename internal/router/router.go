package router

import (
	"database/sql"
	"net/http"

	_ "pet-care-tracker/docs"
	mem "pet-care-tracker/internal/adapters/storage/memory"
	pg "pet-care-tracker/internal/adapters/storage/postgres"
	"pet-care-tracker/internal/domain/diary"
	"pet-care-tracker/internal/domain/feeding"
	"pet-care-tracker/internal/domain/media"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/users"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/config"
	"pet-care-tracker/internal/platform/httpjson"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	AuthVerifier auth.AuthVerifier
	TokenIssuer  auth.TokenIssuer

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Donde se guardan los medios. Requerido.
	ObjectStore media.ObjectStore
	// Uploads sirve los archivos del store en disco bajo /uploads/ (nil con MinIO).
	Uploads http.Handler

	// WebSocket de recordatorios en /ws (opcional).
	Notifications http.Handler
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	cfg := opts.Config

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httpjson.ExposeDetails(!cfg.IsProduction()))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		userRepo    users.Repository
		petRepo     pets.Repository
		diaryRepo   diary.Repository
		feedingRepo feeding.Repository
	)

	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		diaryRepo = pg.NewDiaryRepo(opts.DB)
		feedingRepo = pg.NewFeedingRepo(opts.DB)
	} else {
		store := mem.NewStore()
		userRepo = store.Users()
		petRepo = store.Pets()
		diaryRepo = store.Diary()
		feedingRepo = store.Feeding()
		log.Warn("no database configured, using in-memory store", nil)
	}

	ingestor := media.NewIngestor(opts.ObjectStore, cfg.MediaPublicURL)

	// Services por módulo
	usersSvc := users.NewService(userRepo, opts.TokenIssuer)
	petsSvc := pets.NewService(petRepo, ingestor, media.ImagePolicy(cfg.PetImageMaxBytes), log.With(map[string]any{"module": "pets"}))
	feedingSvc := feeding.NewService(feedingRepo)
	diarySvc := diary.NewService(diaryRepo, ingestor, media.DiaryPolicy(cfg.DiaryMaxFiles, cfg.DiaryMaxFileBytes), log.With(map[string]any{"module": "diary"}))

	r.Route("/api", func(api chi.Router) {
		users.RegisterPublicRoutes(api, usersSvc, log)

		api.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireAuth)

			users.RegisterRoutes(pr, usersSvc, log)
			pets.RegisterRoutes(pr, petsSvc, log)
			feeding.RegisterRoutes(pr, feedingSvc, petsSvc, log)
			diary.RegisterRoutes(pr, diarySvc, petsSvc, log)
		})
	})

	if opts.Uploads != nil {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", opts.Uploads))
	}
	if opts.Notifications != nil {
		r.Handle("/ws", opts.Notifications)
	}

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
