package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/logitrack-app/backend/api/controllers"
	"github.com/logitrack-app/backend/api/middleware"
	"github.com/logitrack-app/backend/internal/auth"
	"github.com/logitrack-app/backend/internal/inventory"
	"github.com/logitrack-app/backend/internal/orders"
	"github.com/logitrack-app/backend/pkg/config"
	"github.com/logitrack-app/backend/pkg/enums"
	"github.com/logitrack-app/backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database controllers.Pinger,
	cache controllers.Pinger,
	gatherer prometheus.Gatherer,
	authService auth.Service,
	registerService auth.RegisterService,
	inventoryService inventory.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, cache, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(registerService, logg))
		r.Post("/login", controllers.AuthLogin(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(inventoryService, logg))
			r.Get("/{itemId}", controllers.InventoryGet(inventoryService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, string(enums.RoleAdmin), string(enums.RoleManager)))
				r.Post("/", controllers.InventoryCreate(inventoryService, logg))
				r.Post("/batch", controllers.InventoryCreateBatch(inventoryService, logg))
				r.Put("/{itemId}", controllers.InventoryUpdate(inventoryService, logg))
				r.Delete("/{itemId}", controllers.InventoryDelete(inventoryService, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(orderService, logg))
			r.Get("/{orderId}", controllers.OrdersGet(orderService, logg))
			r.Post("/", controllers.OrdersInsert(orderService, logg))
			r.Post("/batch", controllers.OrdersInsertBatch(orderService, logg))
			r.Put("/{orderId}", controllers.OrdersUpdate(orderService, logg))
			r.Delete("/{orderId}", controllers.OrdersRemove(orderService, logg))
		})
	})

	return r
}
