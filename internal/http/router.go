package api

import (
	stdhttp "net/http"

	intconfig "busdekho/internal/config"
	h "busdekho/internal/http/handlers"
	"busdekho/internal/http/middleware"
	"busdekho/internal/logging"
	"busdekho/internal/metrics"
	"busdekho/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the shared pieces the router wires into handlers.
type Deps struct {
	Metrics  *metrics.Registry
	Gatherer prometheus.Gatherer
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Metrics(deps.Metrics),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logging.Warn("failed to set trusted proxies", "error", err)
	}
	r.SetHTMLTemplate(h.Templates())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	repo := repositories.BusRouteRepository{Metrics: deps.Metrics}
	routes := &h.RouteHandler{
		Store:               repo,
		Schema:              repo,
		Metrics:             deps.Metrics,
		BackgroundImagePath: env.BackgroundImagePath,
	}

	r.GET("/", routes.Dashboard)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(env.RateLimitRPS, env.RateLimitBurst))
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", routes.DBCheck)

		rt := api.Group("/routes")
		rt.GET("/names", routes.RouteNames)
		rt.GET("/buses", routes.RouteData)
		rt.POST("/filter", routes.FilterRoute)
		rt.GET("/export.pdf", routes.ExportPDF)
		rt.GET("/export.csv", routes.ExportCSV)
	}

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	return r
}
