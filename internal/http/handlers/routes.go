package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	intconfig "busdekho/internal/config"
	"busdekho/internal/domain"
	"busdekho/internal/domain/models"
	"busdekho/internal/http/middleware"
	"busdekho/internal/metrics"
	"busdekho/internal/services"
	"busdekho/internal/utils"

	"github.com/gin-gonic/gin"
)

// RouteHandler serves the route pipeline over JSON, HTML and exports.
type RouteHandler struct {
	Store   services.RouteStore
	Schema  SchemaChecker
	Metrics *metrics.Registry

	// Ping checks the connection before a dashboard run; defaults to
	// config.EnsureDB.
	Ping func(ctx context.Context) error

	BackgroundImagePath string
}

func (h *RouteHandler) service(c *gin.Context) services.RouteService {
	return services.RouteService{
		Store:     h.Store,
		Metrics:   h.Metrics,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *RouteHandler) ping(ctx context.Context) error {
	if h.Ping != nil {
		return h.Ping(ctx)
	}
	return intconfig.EnsureDB(ctx)
}

// FilterRequest is the body of POST /api/routes/filter.
type FilterRequest struct {
	RouteName   string    `json:"route_name" binding:"required"`
	Sort        string    `json:"sort"`
	StarRatings []float64 `json:"star_ratings"`
	BusTypes    []string  `json:"bus_types"`
}

// RouteNames handles GET /api/routes/names?prefix=.
func (h *RouteHandler) RouteNames(c *gin.Context) {
	prefix := utils.NormalizePrefix(c.Query("prefix"))
	if prefix == "" {
		RespondDomainError(c, domain.ValidationError{Field: "prefix", Msg: "is required"}, nil)
		return
	}

	names, err := h.service(c).RouteNames(c.Request.Context(), prefix)
	if err != nil {
		RespondDomainError(c, err, names)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prefix": prefix, "data": names})
}

// RouteData handles GET /api/routes/buses?route_name=&sort=.
func (h *RouteHandler) RouteData(c *gin.Context) {
	order, err := parseSort(c.Query("sort"))
	if err != nil {
		RespondDomainError(c, err, nil)
		return
	}
	routeName := strings.TrimSpace(c.Query("route_name"))

	table, err := h.service(c).RouteData(c.Request.Context(), routeName, order)
	if err == nil && table.Empty() {
		err = domain.NotFoundError{Resource: "route " + strconv.Quote(routeName)}
	}
	if err != nil {
		RespondDomainError(c, err, table)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"route_name":   routeName,
		"sort":         order,
		"data":         table,
		"star_ratings": services.UniqueStarRatings(table),
		"bus_types":    services.UniqueBusTypes(table),
	})
}

// FilterRoute handles POST /api/routes/filter: fetch then filter in memory.
func (h *RouteHandler) FilterRoute(c *gin.Context) {
	var req FilterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	order, err := parseSort(req.Sort)
	if err != nil {
		RespondDomainError(c, err, nil)
		return
	}

	svc := h.service(c)
	routeName := strings.TrimSpace(req.RouteName)
	table, err := svc.RouteData(c.Request.Context(), routeName, order)
	if err == nil && table.Empty() {
		err = domain.NotFoundError{Resource: "route " + strconv.Quote(routeName)}
	}
	if err != nil {
		RespondDomainError(c, err, gin.H{"data": table, "filtered": models.EmptyTable()})
		return
	}
	filtered, err := svc.Filter(table, req.StarRatings, req.BusTypes)
	if err != nil {
		RespondDomainError(c, err, gin.H{"data": table, "filtered": filtered})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"route_name": req.RouteName,
		"sort":       order,
		"data":       table,
		"filtered":   filtered,
	})
}

// parseSort maps the sort flag; empty means Low to High.
func parseSort(raw string) (models.PriceOrder, error) {
	if strings.TrimSpace(raw) == "" {
		return models.PriceLowToHigh, nil
	}
	order, ok := models.ParsePriceOrder(raw)
	if !ok {
		return "", domain.ValidationError{Field: "sort", Msg: "must be Low to High or High to Low"}
	}
	return order, nil
}

// parseRatings keeps the values that parse as numbers.
func parseRatings(raw []string) []float64 {
	out := []float64{}
	for _, r := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err == nil {
			out = append(out, f)
		}
	}
	return out
}

func nonEmpty(raw []string) []string {
	out := []string{}
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
