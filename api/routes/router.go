package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sagar-developer08/admin-ecom-sub002/api/controllers"
	"github.com/sagar-developer08/admin-ecom-sub002/api/middleware"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/commission"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/payouts"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/reports"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/config"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         controllers.Pinger
	Redis      controllers.Pinger
	Reports    reports.Service
	Commission commission.Service
	Payouts    payouts.Service
	Registry   *prometheus.Registry
}

// NewRouter assembles the console's HTTP surface.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Get("/vendor-stores", controllers.VendorStoreStats(deps.Reports, deps.Logger))
			r.Get("/vendor-stores/{vendorID}/{storeID}/orders", controllers.ReportDrillDown(deps.Reports, deps.Logger))
			r.Get("/returns", controllers.ReturnsReport(deps.Reports, deps.Logger))
		})

		r.Route("/commission", func(r chi.Router) {
			r.Get("/policy", controllers.CommissionPolicyGet(deps.Commission, deps.Logger))
			r.Put("/policy", controllers.CommissionPolicyUpdate(deps.Commission, deps.Logger))
			r.Get("/overrides", controllers.CommissionOverridesList(deps.Commission, deps.Logger))
			r.Post("/overrides", controllers.CommissionOverrideSet(deps.Commission, deps.Logger))
			r.Delete("/overrides/{vendorID}", controllers.CommissionOverrideDelete(deps.Commission, deps.Logger))
			r.Get("/records", controllers.CommissionRecordsList(deps.Commission, deps.Logger))
			r.Post("/preview", controllers.CommissionPreview(deps.Commission, deps.Logger))
			r.Post("/sync", controllers.CommissionSync(deps.Commission, deps.Logger))
		})

		r.Route("/payouts", func(r chi.Router) {
			r.Get("/", controllers.PayoutsList(deps.Payouts, deps.Logger))
			r.Post("/", controllers.PayoutCreate(deps.Payouts, deps.Logger))
			r.Get("/{payoutID}", controllers.PayoutGet(deps.Payouts, deps.Logger))
			r.Post("/{payoutID}/approve", controllers.PayoutApprove(deps.Payouts, deps.Logger))
			r.Post("/{payoutID}/reject", controllers.PayoutReject(deps.Payouts, deps.Logger))
			r.Post("/{payoutID}/process", controllers.PayoutProcess(deps.Payouts, deps.Logger))
			r.Post("/{payoutID}/complete", controllers.PayoutComplete(deps.Payouts, deps.Logger))
		})
	})

	return r
}
