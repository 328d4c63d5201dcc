package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"busdekho/internal/domain"
	"busdekho/internal/domain/models"
	"busdekho/internal/http/middleware"
	"busdekho/internal/services"

	"github.com/gin-gonic/gin"
)

// ExportPDF handles GET /api/routes/export.pdf.
func (h *RouteHandler) ExportPDF(c *gin.Context) {
	h.export(c, "application/pdf", services.ExportService.PDF)
}

// ExportCSV handles GET /api/routes/export.csv.
func (h *RouteHandler) ExportCSV(c *gin.Context) {
	h.export(c, "text/csv; charset=utf-8", services.ExportService.CSV)
}

type renderFunc func(s services.ExportService, title string, table models.RouteTable) ([]byte, string, error)

// export runs the same fetch and optional filter as the dashboard, then
// renders the result as an attachment.
func (h *RouteHandler) export(c *gin.Context, contentType string, render renderFunc) {
	order, err := parseSort(c.Query("sort"))
	if err != nil {
		RespondDomainError(c, err, nil)
		return
	}
	routeName := strings.TrimSpace(c.Query("route_name"))

	svc := h.service(c)
	ctx := c.Request.Context()
	table, err := svc.RouteData(ctx, routeName, order)
	if err != nil {
		RespondDomainError(c, err, nil)
		return
	}

	ratings := parseRatings(c.QueryArray("rating"))
	busTypes := nonEmpty(c.QueryArray("bus_type"))
	if len(ratings) > 0 && len(busTypes) > 0 {
		table, err = svc.Filter(table, ratings, busTypes)
		if err != nil {
			RespondDomainError(c, err, nil)
			return
		}
	}

	exporter := services.ExportService{RequestID: middleware.GetRequestID(c)}
	body, filename, err := render(exporter, routeName, table)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to render export", Err: err}, nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}
