package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/southsteak/ordering-backend/api/controllers"
	"github.com/southsteak/ordering-backend/api/middleware"
	authsvc "github.com/southsteak/ordering-backend/internal/auth"
	cartsvc "github.com/southsteak/ordering-backend/internal/cart"
	categoriessvc "github.com/southsteak/ordering-backend/internal/categories"
	checkoutsvc "github.com/southsteak/ordering-backend/internal/checkout"
	menusvc "github.com/southsteak/ordering-backend/internal/menu"
	pmsvc "github.com/southsteak/ordering-backend/internal/paymentmethods"
	settingssvc "github.com/southsteak/ordering-backend/internal/settings"
	"github.com/southsteak/ordering-backend/pkg/config"
	"github.com/southsteak/ordering-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type cronRunner interface {
	RunOnce(ctx context.Context) error
}

// RouterParams bundle the wired services for the HTTP surface.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             pinger
	Redis          pinger
	Auth           authsvc.Service
	Menu           menusvc.Service
	Categories     categoriessvc.Service
	PaymentMethods pmsvc.Service
	Settings       settingssvc.Service
	Cart           cartsvc.Service
	Checkout       checkoutsvc.Service
	Cron           cronRunner
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DB, params.Redis))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.MenuList(params.Menu, logg))
		r.Get("/menu/{itemId}", controllers.MenuGet(params.Menu, logg))
		r.Get("/categories", controllers.CategoryList(params.Categories, logg))
		r.Get("/payment-methods", controllers.PaymentMethodList(params.PaymentMethods, logg))
		r.Get("/settings", controllers.SettingsGet(params.Settings, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(params.Cart, logg))
				r.Post("/items", controllers.CartAddItem(params.Cart, logg))
				r.Put("/items", controllers.CartUpdateLine(params.Cart, logg))
				r.Delete("/items", controllers.CartRemoveLine(params.Cart, logg))
				r.Delete("/", controllers.CartClear(params.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(params.Checkout, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(params.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(params.Auth, logg))

			r.Get("/menu", controllers.MenuList(params.Menu, logg))
			r.Get("/menu/{itemId}", controllers.MenuGet(params.Menu, logg))
			r.Post("/menu", controllers.AdminMenuCreate(params.Menu, logg))
			r.Patch("/menu/{itemId}", controllers.AdminMenuUpdate(params.Menu, logg))
			r.Delete("/menu/{itemId}", controllers.AdminMenuDelete(params.Menu, logg))

			r.Post("/categories", controllers.AdminCategoryCreate(params.Categories, logg))
			r.Put("/categories/{categoryId}", controllers.AdminCategoryUpdate(params.Categories, logg))
			r.Delete("/categories/{categoryId}", controllers.AdminCategoryDelete(params.Categories, logg))

			r.Get("/payment-methods", controllers.AdminPaymentMethodList(params.PaymentMethods, logg))
			r.Post("/payment-methods", controllers.AdminPaymentMethodCreate(params.PaymentMethods, logg))
			r.Patch("/payment-methods/{methodId}", controllers.AdminPaymentMethodUpdate(params.PaymentMethods, logg))
			r.Delete("/payment-methods/{methodId}", controllers.AdminPaymentMethodDelete(params.PaymentMethods, logg))

			r.Patch("/settings", controllers.AdminSettingsUpdate(params.Settings, logg))
		})
	})

	r.Route("/api/cron/v1", func(r chi.Router) {
		r.Use(middleware.CronAuth(cfg.Cron.Secret, logg))
		r.Post("/run", controllers.CronTrigger(params.Cron, logg))
	})

	return r
}
