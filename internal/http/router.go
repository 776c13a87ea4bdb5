package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rotaforte/frota/internal/config"
	"github.com/rotaforte/frota/internal/driver"
	httpmiddleware "github.com/rotaforte/frota/internal/http/middleware"
	"github.com/rotaforte/frota/internal/product"
	"github.com/rotaforte/frota/internal/rbac"
	"github.com/rotaforte/frota/internal/repo"
	"github.com/rotaforte/frota/internal/service"
	"github.com/rotaforte/frota/internal/supplier"
	"github.com/rotaforte/frota/internal/trip"
	"github.com/rotaforte/frota/internal/vehicle"
)

type Handler struct {
	cfg           *config.Config
	pool          *pgxpool.Pool
	redis         *redis.Client
	authService   *service.AuthService
	users         *service.UserService
	drivers       *driver.Service
	vehicles      *vehicle.Service
	trips         *trip.Service
	products      *product.Service
	suppliers     *supplier.Service
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
}

// NewRouter devolve roteador configurado com todos os recursos da frota.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client, authService *service.AuthService) http.Handler {
	driverRepo := driver.NewRepository(pool)
	vehicleRepo := vehicle.NewRepository(pool)
	supplierRepo := supplier.NewRepository(pool)

	h := &Handler{
		cfg:           cfg,
		pool:          pool,
		redis:         redisClient,
		authService:   authService,
		users:         service.NewUserService(repo.New(pool)),
		drivers:       driver.NewService(driverRepo),
		vehicles:      vehicle.NewService(vehicleRepo),
		trips:         trip.NewService(trip.NewRepository(pool), driverRepo, vehicleRepo),
		products:      product.NewService(product.NewRepository(pool), supplierRepo),
		suppliers:     supplier.NewService(supplierRepo),
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Metrics)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)
		public.Handle("/metrics", httpmiddleware.MetricsHandler())

		public.Route("/api/auth", func(auth chi.Router) {
			auth.Post("/login", h.Login)
			auth.Post("/register", h.Register)
			auth.Post("/refresh", h.Refresh)
			auth.Post("/logout", h.Logout)
			auth.Post("/confirm-email", h.ConfirmEmail)
			auth.Post("/resend-confirmation", h.ResendConfirmation)
			auth.Post("/reset-password", h.ResetPassword)
			auth.Post("/reset-password/confirm", h.ConfirmPasswordReset)
		})
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(authService.JWT()))
		private.Use(httpmiddleware.UserRateLimit(h.authLimiter))

		private.Get("/api/auth/me", h.Me)
		private.Get("/api/navigation", h.Navigation)

		private.Group(func(dash chi.Router) {
			dash.Use(httpmiddleware.Require(func(c rbac.Capabilities) bool { return c.DashboardView }))
			dash.Get("/api/dashboard/stats", h.DashboardStats)
		})
		private.Group(func(export chi.Router) {
			export.Use(httpmiddleware.Require(func(c rbac.Capabilities) bool { return c.DashboardExport }))
			export.Get("/api/dashboard/export", h.DashboardExport)
		})

		// Frota (motoristas, veículos e fornecedores)
		private.Group(func(fleet chi.Router) {
			fleet.Use(httpmiddleware.Require(func(c rbac.Capabilities) bool { return c.FleetView }))
			fleet.Get("/api/drivers", h.ListDrivers)
			fleet.Get("/api/drivers/{id}", h.GetDriver)
			fleet.Get("/api/vehicles", h.ListVehicles)
			fleet.Get("/api/vehicles/{id}", h.GetVehicle)
			fleet.Get("/api/suppliers", h.ListSuppliers)
			fleet.Get("/api/suppliers/{id}", h.GetSupplier)
		})
		private.Group(func(fleet chi.Router) {
			fleet.Use(httpmiddleware.Require(func(c rbac.Capabilities) bool { return c.FleetEdit }))
			fleet.Post("/api/drivers", h.CreateDriver)
			fleet.Patch("/api/drivers/{id}", h.UpdateDriver)
			fleet.Delete("/api/drivers/{id}", h.DeleteDriver)
			fleet.Patch("/api/drivers/{id}/toggle-status", h.ToggleDriverStatus)
			fleet.Post("/api/vehicles", h.CreateVehicle)
			fleet.Patch("/api/vehicles/{id}", h.UpdateVehicle)
			fleet.Delete("/api/vehicles/{id}", h.DeleteVehicle)
			fleet.Patch("/api/vehicles/{id}/toggle-status", h.ToggleVehicleStatus)
			fleet.Post("/api/suppliers", h.CreateSupplier)
			fleet.Patch("/api/suppliers/{id}", h.UpdateSupplier)
			fleet.Delete("/api/suppliers/{id}", h.DeleteSupplier)
			fleet.Patch("/api/suppliers/{id}/toggle-status", h.ToggleSupplierStatus)
		})

		// Combustível e produtos
		private.Group(func(ops chi.Router) {
			ops.Use(httpmiddleware.Require(func(c rbac.Capabilities) bool { return c.FuelProductView }))
			ops.Get("/api/trips", h.ListTrips)
			ops.Get("/api/trips/{id}", h.GetTrip)
			ops.Get("/api/product-entries", h.ListProducts)
			ops.Get("/api/product-entries/{id}", h.GetProduct)
		})
		private.Group(func(ops chi.Router) {
			ops.Use(httpmiddleware.Require(func(c rbac.Capabilities) bool { return c.FuelProductEdit }))
			ops.Post("/api/trips", h.CreateTrip)
			ops.Patch("/api/trips/{id}", h.UpdateTrip)
			ops.Delete("/api/trips/{id}", h.DeleteTrip)
			ops.Post("/api/product-entries", h.CreateProduct)
			ops.Patch("/api/product-entries/{id}", h.UpdateProduct)
			ops.Delete("/api/product-entries/{id}", h.DeleteProduct)
		})

		// Gestão de usuários (somente admin)
		private.Group(func(admin chi.Router) {
			admin.Use(httpmiddleware.Require(func(c rbac.Capabilities) bool { return c.UserManage }))
			admin.Get("/api/users", h.ListUsers)
			admin.Get("/api/users/{id}", h.GetUser)
			admin.Post("/api/users", h.CreateUser)
			admin.Patch("/api/users/{id}", h.UpdateUser)
			admin.Delete("/api/users/{id}", h.DeleteUser)
			admin.Patch("/api/users/{id}/toggle-status", h.ToggleUserStatus)
		})
	})

	return r
}
