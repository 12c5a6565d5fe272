package main

import (
	"net/http"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alumnet/portal/authenticator"
	"github.com/alumnet/portal/config"
	"github.com/alumnet/portal/controllers"
	"github.com/alumnet/portal/database"
	"github.com/alumnet/portal/metrics"
	portalmiddleware "github.com/alumnet/portal/middleware"
	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/repositories"
	"github.com/alumnet/portal/services"
)

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	cfg := config.Load()

	log := newLogger(cfg.Env)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	metrics.Init()

	// The connection handle is owned here and passed down; nothing else
	// holds global database state.
	db, err := database.Initialize("mysql", cfg.DatabaseDSN, database.DefaultMigrationsDir)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, log)
	ctrl := controllers.NewControllers(srvs)

	auth, err := authenticator.NewEntraProvider(authenticator.EntraConfig{
		TenantID:     cfg.EntraTenant,
		ClientID:     cfg.EntraClientID,
		ClientSecret: cfg.EntraSecret,
		CallbackURL:  cfg.EntraCallback,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize Entra provider")
	}

	r, err := setupRouter(cfg, log, ctrl, srvs, auth)
	if err != nil {
		log.WithError(err).Fatal("failed to setup router")
	}

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("portal starting")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// newLogger builds the process logger: JSON in production, text otherwise.
func newLogger(env string) *logrus.Logger {
	log := logrus.New()
	if env == "prod" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// setupRouter configures all routes
func setupRouter(cfg config.Config, log *logrus.Logger, ctrl *controllers.Controllers, srvs *services.Services, auth authenticator.Provider) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(portalmiddleware.RequestID)
	r.Use(portalmiddleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second)) // OAuth callbacks can be slow
	r.Use(chimiddleware.Compress(5))
	r.Use(portalmiddleware.HTTPMetrics)

	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "portal_session",
		Secure:         cfg.UseHTTPS,
		Gclifetime:     cfg.SessionLifetime,
		Maxlifetime:    cfg.SessionLifetime,
	})
	if err != nil {
		return nil, err
	}
	r.Use(sessionHandler)

	// CSRF verification needs the session, so it runs after it
	r.Use(portalmiddleware.VerifyCSRF)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/", ctrl.Dashboard.Index)
	r.Get("/login", ctrl.Auth.Login(auth))
	r.Get("/callback", ctrl.Auth.Callback(auth))
	r.Get("/logout", ctrl.Auth.Logout)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "portal"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	// MEMBER ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(portalmiddleware.RequireAuth(srvs.Users))

		r.Post("/validation/request", ctrl.Validation.Request)
	})

	// ADMIN ROUTES (full access role required)
	r.Group(func(r chi.Router) {
		r.Use(portalmiddleware.RequireAuth(srvs.Users))
		r.Use(portalmiddleware.RequireRole(models.RoleAdmin))

		r.Route("/admin", func(r chi.Router) {
			// Audit trail of inventory changes
			r.Get("/audit", ctrl.Audit.Index)

			// Inventory items
			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", ctrl.Inventory.Items)
				r.Post("/", ctrl.Inventory.CreateItem)
				r.Post("/{id}", ctrl.Inventory.UpdateItem)
				r.Post("/{id}/delete", ctrl.Inventory.DeleteItem)
				r.Post("/{id}/adjust", ctrl.Inventory.AdjustQuantity)
			})

			// Reference data with AJAX add/delete
			r.Route("/locations", func(r chi.Router) {
				r.Get("/", ctrl.Inventory.Locations)
				r.Post("/add", ctrl.Inventory.AddLocation)
				r.Post("/{id}/delete", ctrl.Inventory.DeleteLocation)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", ctrl.Inventory.Categories)
				r.Post("/add", ctrl.Inventory.AddCategory)
				r.Post("/{id}/delete", ctrl.Inventory.DeleteCategory)
			})

			// Alumni status validation
			r.Route("/validation", func(r chi.Router) {
				r.Get("/", ctrl.Validation.Index)
				r.Post("/{id}/approve", ctrl.Validation.Approve)
				r.Post("/{id}/reject", ctrl.Validation.Reject)
			})
		})
	})

	return r, nil
}
