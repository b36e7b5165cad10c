package router

import (
	"log"
	"net/http"
	"strings"

	"github.com/funfair-pos/api/internal/config"
	"github.com/funfair-pos/api/internal/database"
	"github.com/funfair-pos/api/internal/handler"
	mw "github.com/funfair-pos/api/internal/middleware"
	"github.com/funfair-pos/api/internal/service"
	"github.com/funfair-pos/api/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
)

// New creates a Chi router with all application routes wired up.
// pool is any pgx pool or connection that can begin transactions.
func New(cfg *config.Config, queries *database.Queries, pool service.TxBeginner, reg *prometheus.Registry) chi.Router {
	r := chi.NewRouter()

	metrics := mw.NewMetrics(reg)

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Instrument)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	// Menu photos
	mediaPrefix := "/" + strings.Trim(cfg.Media.URLPrefix, "/")
	r.Handle(mediaPrefix+"/*", http.StripPrefix(mediaPrefix+"/", http.FileServer(http.Dir(cfg.Media.Root))))

	// Menu
	photos := storage.NewDiskPhotoStore(cfg.Media.Root, cfg.Media.Subdir)
	menuService := service.NewMenuService(pool, queries, func(db database.DBTX) service.MenuStore {
		return database.New(db)
	}, photos)
	menuHandler := handler.NewMenuHandler(menuService, cfg.Media.URLPrefix, cfg.Media.MaxUploadBytes)
	r.Route("/menu", menuHandler.RegisterRoutes)

	// Orders
	orderService := service.NewOrderService(pool, queries, func(db database.DBTX) service.OrderStore {
		return database.New(db)
	})
	orderHandler := handler.NewOrderHandler(orderService)
	r.Route("/orders", orderHandler.RegisterRoutes)

	// Reports
	reportsHandler := handler.NewReportsHandler(orderService)
	r.Route("/reports", reportsHandler.RegisterRoutes)

	log.Println("Router initialized with all handlers")
	return r
}
