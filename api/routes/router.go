package routes

import (
	"context"
	"net/http"

	"github.com/gamestore/admin-backend/api/controllers"
	"github.com/gamestore/admin-backend/api/middleware"
	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/internal/accounts"
	"github.com/gamestore/admin-backend/internal/auth"
	"github.com/gamestore/admin-backend/internal/coupons"
	"github.com/gamestore/admin-backend/internal/products"
	"github.com/gamestore/admin-backend/internal/servers"
	"github.com/gamestore/admin-backend/pkg/auth/session"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// Pinger is a datasource health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	Sessions session.Checker
	Metrics  *middleware.HTTPMetrics

	DB    Pinger
	Redis Pinger

	MetricsHandler http.Handler

	Accounts *accounts.Service
	Servers  *servers.Service
	Products *products.Service
	Coupons  *coupons.Service
	Auth     *auth.Service
}

// New assembles the full HTTP surface.
func New(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(middleware.SessionGate(cfg.JWT, deps.Sessions, logg))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, errors.New(errors.CodeNotFound, "no such route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, errors.New(errors.CodeNotFound, "method not handled"))
	})

	authed := middleware.RequireAuth(logg)
	anonymous := middleware.RequireAnonymous(logg)
	manager := middleware.RequireRole(logg, enums.RoleManager)
	privileged := middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleManager)

	r.Get("/", controllers.Root(cfg.App.Env))
	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(deps.DB, deps.Redis))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/admin", func(r chi.Router) {
		r.With(authed).Get("/auth", controllers.Session(logg))
		r.With(anonymous).Post("/auth", controllers.Login(deps.Auth, cfg.JWT, cfg.App.IsProd(), logg))
		r.With(authed).Delete("/auth", controllers.Logout(deps.Auth, logg))

		r.With(manager).Get("/users", controllers.ListUsers(deps.Accounts, logg))

		r.Route("/user", func(r chi.Router) {
			r.With(authed).Get("/", controllers.GetSelfUser(deps.Accounts, logg))
			r.With(manager).Post("/", controllers.CreateUser(deps.Accounts, logg))
			r.With(manager).Get("/{identifier}", controllers.GetUser(deps.Accounts, logg))
			r.With(manager).Patch("/{identifier}", controllers.UpdateUser(deps.Accounts, logg))
			r.With(manager).Delete("/{identifier}", controllers.DeleteUser(deps.Accounts, deps.Auth, logg))
		})
	})

	// The public store authenticates elsewhere; its auth routes answer
	// unavailable here, as do the purchase routes.
	unavailable := controllers.Unavailable(logg)
	r.HandleFunc("/auth", unavailable)
	r.HandleFunc("/purchases", unavailable)
	r.HandleFunc("/purchase", unavailable)
	r.HandleFunc("/purchase/*", unavailable)

	r.Get("/servers", controllers.ListServers(deps.Servers, logg))
	r.With(manager).Post("/server", controllers.CreateServer(deps.Servers, logg))
	r.Route("/server/{id}", func(r chi.Router) {
		r.Get("/", controllers.GetServer(deps.Servers, logg))
		r.With(manager).Patch("/", controllers.UpdateServer(deps.Servers, logg))
		r.With(manager).Delete("/", controllers.DeleteServer(deps.Servers, logg))
	})

	r.Get("/products", controllers.ListProducts(deps.Products, logg))
	r.Route("/product", func(r chi.Router) {
		r.With(manager).Post("/", controllers.CreateProduct(deps.Products, logg))
		r.Route("/{product_id}", func(r chi.Router) {
			r.Get("/", controllers.GetProduct(deps.Products, logg))
			r.With(manager).Patch("/", controllers.UpdateProduct(deps.Products, logg))
			r.With(manager).Delete("/", controllers.DeleteProduct(deps.Products, logg))

			r.Route("/benefit", func(r chi.Router) {
				r.With(manager).Post("/", controllers.CreateBenefit(deps.Products, logg))
				r.With(manager).Patch("/{benefit_id}", controllers.UpdateBenefit(deps.Products, logg))
				r.With(manager).Delete("/{benefit_id}", controllers.DeleteBenefit(deps.Products, logg))
			})
			r.Route("/command", func(r chi.Router) {
				r.With(manager).Post("/", controllers.CreateCommand(deps.Products, logg))
				r.With(manager).Patch("/{command_id}", controllers.UpdateCommand(deps.Products, logg))
				r.With(manager).Delete("/{command_id}", controllers.DeleteCommand(deps.Products, logg))
			})
		})
	})

	r.With(privileged).Get("/coupons", controllers.ListCoupons(deps.Coupons, logg))
	r.With(manager).Post("/coupon", controllers.CreateCoupon(deps.Coupons, logg))
	r.Route("/coupon/{id}", func(r chi.Router) {
		r.With(privileged).Get("/", controllers.GetCoupon(deps.Coupons, logg))
		r.With(manager).Patch("/", controllers.UpdateCoupon(deps.Coupons, logg))
		r.With(manager).Delete("/", controllers.DeleteCoupon(deps.Coupons, logg))
	})

	r.Get("/test/token/{level}", controllers.TestToken(deps.Auth, cfg.JWT, cfg.App.IsProd(), logg))

	return r
}
