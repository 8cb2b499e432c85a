package router

import (
	"net/http"
	"strings"

	"stockroom/internal/handler"
	"stockroom/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Products   *handler.ProductHandler
	Categories *handler.CatalogHandler
	Vendors    *handler.CatalogHandler
	Customers  *handler.CustomerHandler
	Settings   *handler.SettingsHandler
}

// Options controls the cross-cutting behaviour of the router.
type Options struct {
	// CORSOrigin is the allowed browser origin.
	CORSOrigin string
	// ProtectAll extends the session requirement from products and the
	// dashboard to categories, vendors, customers and settings.
	ProtectAll bool
	// UploadDir, when set, is served under URLPrefix.
	UploadDir string
	URLPrefix string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, sessions middleware.SessionReader, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(opts.CORSOrigin))

	requireSession := middleware.RequireSession(sessions, logger)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if opts.UploadDir != "" {
		prefix := "/" + strings.Trim(opts.URLPrefix, "/") + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(opts.UploadDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)
		r.Get("/auth/status", h.Auth.Status)

		// Products and the dashboard always need a session.
		r.Group(func(r chi.Router) {
			r.Use(requireSession)

			r.Get("/dashboard/stats", h.Products.DashboardStats)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Products.List)
				r.Post("/", h.Products.Create)
				r.Get("/search", h.Products.List)
				r.Post("/bulk", h.Products.BulkCreate)
				r.Post("/bulk-upload", h.Products.Import)
				r.Get("/export", h.Products.ExportCSV)
				r.Get("/export/summary", h.Products.ExportSummary)
				r.Get("/export.xlsx", h.Products.ExportXLSX)
				r.Get("/{id}", h.Products.GetByID)
				r.Put("/{id}", h.Products.Update)
				r.Delete("/{id}", h.Products.Delete)
			})
		})

		r.Group(func(r chi.Router) {
			if opts.ProtectAll {
				r.Use(requireSession)
			}

			mountCatalog(r, "/categories", h.Categories)
			mountCatalog(r, "/vendors", h.Vendors)

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", h.Customers.List)
				r.Post("/", h.Customers.Create)
				r.Put("/{id}", h.Customers.Update)
				r.Delete("/{id}", h.Customers.Delete)
			})

			r.Get("/settings", h.Settings.Get)
			r.Put("/settings", h.Settings.Update)
			r.Post("/settings/logo", h.Settings.UploadLogo)
		})
	})

	return r
}

func mountCatalog(r chi.Router, path string, h *handler.CatalogHandler) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Delete("/{name}", h.Remove)
	})
}
