package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SchemaChecker is the part of the repository the db-check endpoint needs.
type SchemaChecker interface {
	TableExists(ctx context.Context) (bool, error)
	CountRows(ctx context.Context) (int64, error)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Bus Dekho is running"})
}

// DBCheck pings the database and reports whether bus_routes is usable.
func (h *RouteHandler) DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.ping(ctx); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "Error connecting to the database", err)
		return
	}

	if h.Schema == nil {
		c.JSON(http.StatusOK, gin.H{"message": "database connection OK"})
		return
	}
	exists, err := h.Schema.TableExists(ctx)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "schema check failed", err)
		return
	}
	if !exists {
		c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "bus_routes": false})
		return
	}
	n, err := h.Schema.CountRows(ctx)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to count bus_routes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "bus_routes": true, "rows": n})
}
