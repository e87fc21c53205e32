package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hkfashion/storefront-backend/api/controllers"
	"github.com/hkfashion/storefront-backend/api/middleware"
	authsvc "github.com/hkfashion/storefront-backend/internal/auth"
	cartsvc "github.com/hkfashion/storefront-backend/internal/cart"
	catalogsvc "github.com/hkfashion/storefront-backend/internal/catalog"
	checkoutsvc "github.com/hkfashion/storefront-backend/internal/checkout"
	orderssvc "github.com/hkfashion/storefront-backend/internal/orders"
	pagessvc "github.com/hkfashion/storefront-backend/internal/pages"
	userssvc "github.com/hkfashion/storefront-backend/internal/users"
	"github.com/hkfashion/storefront-backend/pkg/config"
	"github.com/hkfashion/storefront-backend/pkg/logger"
	"github.com/hkfashion/storefront-backend/pkg/metrics"
	"github.com/hkfashion/storefront-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Catalog  catalogsvc.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   orderssvc.Service
	Users    userssvc.Service
	Auth     authsvc.Service
	Pages    pagessvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.HTTPMetrics != nil {
		r.Handle("/metrics", deps.HTTPMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.Login(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.Register(deps.Users, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.VisitorSession(cfg.Session))

		r.Get("/home", controllers.Home(deps.Catalog, logg))
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{id}/{slug}", controllers.ProductDetail(deps.Catalog, logg))
		r.Get("/categories", controllers.Categories(deps.Catalog, logg))

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", controllers.PagesList(deps.Pages, logg))
			r.Get("/{slug}", controllers.PageGet(deps.Pages, logg))
		})
		r.Post("/contact", controllers.ContactSubmit(deps.Pages, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartDetail(deps.Cart, logg))
			r.Get("/badge", controllers.CartBadge(deps.Cart, logg))
			r.Post("/items", controllers.CartAdd(deps.Cart, logg))
			r.Post("/items/{productID}/remove", controllers.CartRemove(deps.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, logg))
			r.Get("/", controllers.CheckoutPrepare(deps.Checkout, logg))
			r.Post("/", controllers.CheckoutSubmit(deps.Checkout, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.ProfileGet(deps.Users, logg))
				r.Patch("/", controllers.ProfileUpdate(deps.Users, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderHistory(deps.Orders, logg))
				r.Get("/{id}", controllers.OrderDetail(deps.Orders, logg))
			})
		})
	})

	return r
}
