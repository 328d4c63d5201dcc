package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "busdekho/internal/config"
	intdb "busdekho/internal/db"
	"busdekho/internal/domain/models"
	"busdekho/internal/metrics"

	"github.com/jmoiron/sqlx"
)

const busRoutesTable = "bus_routes"

const routeNamesQuery = `
	SELECT DISTINCT Route_Name
	FROM bus_routes
	WHERE Route_Name LIKE ?
	ORDER BY Route_Name`

// routeDataQuery takes the price direction through %s; only PriceOrder.SQL
// output is ever substituted.
const routeDataQuery = `
	SELECT *
	FROM bus_routes
	WHERE Route_Name = ?
	ORDER BY Star_Rating DESC, Price %s`

// BusRouteRepository reads the external bus_routes table. It never writes.
type BusRouteRepository struct {
	DB      *sql.DB
	Metrics *metrics.Registry
}

func (r BusRouteRepository) db() (*sqlx.DB, error) {
	db := r.DB
	if db == nil {
		db = intconfig.DB
	}
	if db == nil {
		return nil, intconfig.ErrDBNotConnected
	}
	return sqlx.NewDb(db, "mysql"), nil
}

// RouteNames returns the distinct route names starting with prefix, ascending.
// Matching is against prefix exactly as given.
func (r BusRouteRepository) RouteNames(ctx context.Context, prefix string) ([]string, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	names := []string{}
	err = db.SelectContext(ctx, &names, routeNamesQuery, intdb.LikePrefix(prefix))
	r.Metrics.ObserveQuery("route_names", start, err)
	if err != nil {
		return nil, fmt.Errorf("select route names prefix=%q: %w", prefix, err)
	}
	return names, nil
}

// RouteData returns every bus_routes row for routeName ordered by star rating
// descending, then price in the given direction.
func (r BusRouteRepository) RouteData(ctx context.Context, routeName string, order models.PriceOrder) (models.RouteTable, error) {
	db, err := r.db()
	if err != nil {
		return models.RouteTable{}, err
	}

	start := time.Now()
	table, err := r.queryRouteData(ctx, db, routeName, order)
	r.Metrics.ObserveQuery("route_data", start, err)
	if err != nil {
		return models.RouteTable{}, fmt.Errorf("select route data route=%q: %w", routeName, err)
	}
	return table, nil
}

func (r BusRouteRepository) queryRouteData(ctx context.Context, db *sqlx.DB, routeName string, order models.PriceOrder) (models.RouteTable, error) {
	rows, err := db.QueryxContext(ctx, fmt.Sprintf(routeDataQuery, order.SQL()), routeName)
	if err != nil {
		return models.RouteTable{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return models.RouteTable{}, err
	}

	table := models.RouteTable{Columns: cols, Records: []models.RouteRecord{}}
	for rows.Next() {
		raw := map[string]any{}
		if err := rows.MapScan(raw); err != nil {
			return models.RouteTable{}, err
		}
		rec, err := recordFromRow(cols, raw)
		if err != nil {
			return models.RouteTable{}, err
		}
		table.Records = append(table.Records, rec)
	}
	return table, rows.Err()
}

// recordFromRow copies every column as text and fills the typed fields from
// the known columns, matched case-insensitively.
func recordFromRow(cols []string, raw map[string]any) (models.RouteRecord, error) {
	rec := models.RouteRecord{Fields: make(map[string]string, len(cols))}
	for _, col := range cols {
		v := raw[col]
		rec.Fields[col] = intdb.AsString(v)

		var err error
		switch {
		case strings.EqualFold(col, models.ColRouteName):
			rec.RouteName = intdb.AsString(v)
		case strings.EqualFold(col, models.ColBusType):
			rec.BusType = intdb.AsString(v)
		case strings.EqualFold(col, models.ColPrice):
			rec.Price, err = intdb.AsFloat(v)
		case strings.EqualFold(col, models.ColStarRating):
			rec.StarRating, err = intdb.AsFloat(v)
		}
		if err != nil {
			return models.RouteRecord{}, fmt.Errorf("column %s: %w", col, err)
		}
	}
	return rec, nil
}

// TableExists reports whether bus_routes is present in the connected schema.
func (r BusRouteRepository) TableExists(ctx context.Context) (bool, error) {
	db, err := r.db()
	if err != nil {
		return false, err
	}
	return intdb.HasTable(ctx, db, busRoutesTable), nil
}

// CountRows is used by the db-check endpoint.
func (r BusRouteRepository) CountRows(ctx context.Context) (int64, error) {
	db, err := r.db()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM bus_routes"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("count bus_routes: %w", err)
	}
	return n, nil
}
