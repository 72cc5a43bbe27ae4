package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scentvault/storefront-backend/api/controllers"
	"github.com/scentvault/storefront-backend/api/middleware"
	"github.com/scentvault/storefront-backend/internal/orders"
	"github.com/scentvault/storefront-backend/internal/pricing"
	"github.com/scentvault/storefront-backend/internal/shipping"
	"github.com/scentvault/storefront-backend/pkg/config"
	"github.com/scentvault/storefront-backend/pkg/db"
	"github.com/scentvault/storefront-backend/pkg/enums"
	"github.com/scentvault/storefront-backend/pkg/logger"
	"github.com/scentvault/storefront-backend/pkg/metrics"
	"github.com/scentvault/storefront-backend/pkg/redis"
)

// NewRouter wires every HTTP surface. redisClient may be nil, in which case
// quote rate limiting is off and readiness reports redis as disabled.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	dbP db.Pinger,
	redisClient *redis.Client,
	shippingService shipping.Service,
	pricingService pricing.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	readiness := map[string]controllers.Pinger{"database": nil, "redis": nil}
	if dbP != nil {
		readiness["database"] = dbP
	}
	quoteLimit := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		readiness["redis"] = redisClient
		quotePolicy := middleware.NewRateLimitPolicy("quote", cfg.RateLimit.QuoteWindow, cfg.RateLimit.QuoteLimit)
		quoteLimit = middleware.RateLimit(quotePolicy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.EnrichedProducts(pricingService, cfg.Pricing, logg))
			r.Get("/{productId}/sizes", controllers.ProductSizes(pricingService, logg))
		})

		r.Route("/deals", func(r chi.Router) {
			r.Get("/combos", controllers.DealCombos(pricingService, cfg.Pricing, logg))
			r.Get("/top", controllers.TopDeals(pricingService, cfg.Pricing, logg))
		})

		r.With(quoteLimit).Post("/shipping/quote", controllers.ShippingQuote(shippingService, cfg.Shipping.DefaultMultiAddress, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/normalize", controllers.NormalizeOrderItems(ordersService, logg))
			r.With(quoteLimit).Post("/", controllers.CreateOrder(ordersService, cfg.Shipping.DefaultMultiAddress, logg))
			r.Get("/{orderId}", controllers.GetOrder(ordersService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Get("/ping", controllers.AdminPing())

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.StaffRoleAdmin))
			r.Get("/shipping/weight-rates", controllers.AdminListWeightRates(shippingService, logg))
			r.Put("/shipping/weight-rates", controllers.AdminReplaceWeightRates(shippingService, logg))
			r.Get("/shipping/vendor-rules", controllers.AdminListVendorRules(shippingService, logg))
			r.Put("/shipping/vendor-rules", controllers.AdminReplaceVendorRules(shippingService, logg))
		})

		r.With(middleware.RequireRole(logg, enums.StaffRoleAdmin, enums.StaffRoleCatalogManager)).
			Get("/deals/top", controllers.TopDeals(pricingService, cfg.Pricing, logg))
	})

	return r
}
