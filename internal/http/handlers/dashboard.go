package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"busdekho/internal/domain/models"
	"busdekho/internal/http/middleware"
	"busdekho/internal/logging"
	"busdekho/internal/services"
	"busdekho/internal/utils"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const defaultLetter = "A"

// Templates parses the embedded HTML templates.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"inr":    utils.FormatINR,
		"rating": utils.FormatRating,
		"hasRating": func(list []float64, v float64) bool {
			return slices.Contains(list, v)
		},
		"hasString": func(list []string, v string) bool {
			return slices.Contains(list, v)
		},
		"background": func(b64 string) template.CSS {
			return template.CSS("background-image: url(data:image/png;base64," + b64 + "); background-size: cover;")
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// DashboardView is everything dashboard.html renders.
type DashboardView struct {
	Title           string
	BackgroundImage string

	Letter        string
	RouteNames    []string
	SelectedRoute string
	Sort          models.PriceOrder
	SortOptions   []models.PriceOrder

	Data    models.RouteTable
	HasData bool

	RatingOptions    []float64
	BusTypeOptions   []string
	SelectedRatings  []float64
	SelectedBusTypes []string
	Filtered         *models.RouteTable

	Errors      []string
	Warnings    []string
	ExportQuery template.URL
}

func (v *DashboardView) addError(msg string) {
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	v.Errors = append(v.Errors, msg)
}

// Dashboard handles GET /. Each request is one run of the pipeline: prefix,
// route names, route data, then the optional rating/type filter. A failed
// step shows its message and the page renders with what it has.
func (h *RouteHandler) Dashboard(c *gin.Context) {
	view := DashboardView{
		Title:       "Bus Dekho",
		Letter:      c.DefaultQuery("letter", defaultLetter),
		Sort:        models.PriceLowToHigh,
		SortOptions: models.PriceOrders,
		Data:        models.EmptyTable(),
	}
	reqID := middleware.GetRequestID(c)
	ctx := c.Request.Context()

	if h.BackgroundImagePath != "" {
		img, err := services.LoadImageAsBase64(h.BackgroundImagePath)
		if err != nil {
			logging.EventError(reqID, "dashboard", "load_background", err)
			view.addError(err.Error())
		}
		view.BackgroundImage = img
	}

	defer func() { c.HTML(http.StatusOK, "dashboard.html", view) }()

	if err := h.ping(ctx); err != nil {
		logging.EventError(reqID, "dashboard", "connect", err)
		view.addError(fmt.Sprintf("Error connecting to the database: %v", err))
		return
	}

	prefix := utils.NormalizePrefix(view.Letter)
	if prefix == "" {
		return
	}

	svc := h.service(c)
	names, err := svc.RouteNames(ctx, prefix)
	if err != nil {
		view.addError(err.Error())
	}
	view.RouteNames = names
	if len(names) == 0 {
		view.Warnings = append(view.Warnings, "No routes found starting with the specified letter.")
		return
	}

	view.SelectedRoute = names[0]
	if want := c.Query("route"); slices.Contains(names, want) {
		view.SelectedRoute = want
	}
	if order, ok := models.ParsePriceOrder(c.Query("sort")); ok {
		view.Sort = order
	}

	data, err := svc.RouteData(ctx, view.SelectedRoute, view.Sort)
	if err != nil {
		view.addError(err.Error())
	}
	view.Data = data
	if data.Empty() {
		view.Warnings = append(view.Warnings, fmt.Sprintf("No data found for Route: %s with the specified price sort order.", view.SelectedRoute))
		return
	}
	view.HasData = true
	view.RatingOptions = services.UniqueStarRatings(data)
	view.BusTypeOptions = services.UniqueBusTypes(data)

	view.SelectedRatings = keepRatings(parseRatings(c.QueryArray("rating")), view.RatingOptions)
	view.SelectedBusTypes = keepStrings(nonEmpty(c.QueryArray("bus_type")), view.BusTypeOptions)
	view.ExportQuery = exportQuery(view)

	if len(view.SelectedRatings) == 0 || len(view.SelectedBusTypes) == 0 {
		return
	}
	filtered, err := svc.Filter(data, view.SelectedRatings, view.SelectedBusTypes)
	if err != nil {
		view.addError(err.Error())
	}
	view.Filtered = &filtered
}

// keepRatings drops selections that are not offered for the current route.
func keepRatings(selected, options []float64) []float64 {
	out := []float64{}
	for _, s := range selected {
		if slices.Contains(options, s) && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func keepStrings(selected, options []string) []string {
	out := []string{}
	for _, s := range selected {
		if slices.Contains(options, s) && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func exportQuery(v DashboardView) template.URL {
	q := url.Values{}
	q.Set("route_name", v.SelectedRoute)
	q.Set("sort", string(v.Sort))
	for _, r := range v.SelectedRatings {
		q.Add("rating", utils.FormatRating(r))
	}
	for _, bt := range v.SelectedBusTypes {
		q.Add("bus_type", bt)
	}
	return template.URL(strings.ReplaceAll(q.Encode(), "+", "%20"))
}
