package services

import (
	"context"
	"strings"

	"busdekho/internal/domain"
	"busdekho/internal/domain/models"
	"busdekho/internal/logging"
	"busdekho/internal/metrics"
)

// RouteStore is the read side of bus_routes used by the pipeline.
type RouteStore interface {
	RouteNames(ctx context.Context, prefix string) ([]string, error)
	RouteData(ctx context.Context, routeName string, order models.PriceOrder) (models.RouteTable, error)
}

// RouteService runs the route query and filter pipeline. Every step is
// stateless; a failed step logs, returns an empty result and the error, so the
// caller can render "no data" and still tell it apart from a genuine miss.
type RouteService struct {
	Store     RouteStore
	Metrics   *metrics.Registry
	RequestID string
}

// RouteNames looks up distinct route names starting with prefix. The prefix is
// matched as given; callers upper-case user input before calling.
func (s RouteService) RouteNames(ctx context.Context, prefix string) ([]string, error) {
	logging.Event(s.RequestID, "routes", "fetch_route_names", "prefix="+prefix)

	names, err := s.Store.RouteNames(ctx, prefix)
	if err != nil {
		err = domain.QueryError{Op: "fetching route names", Err: err}
		logging.EventError(s.RequestID, "routes", "fetch_route_names", err)
		s.Metrics.PipelineFailure("route_names")
		return []string{}, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// RouteData fetches every bus on routeName ordered by star rating descending
// and price in the requested direction.
func (s RouteService) RouteData(ctx context.Context, routeName string, order models.PriceOrder) (models.RouteTable, error) {
	if strings.TrimSpace(routeName) == "" {
		return models.EmptyTable(), domain.ValidationError{Field: "route_name", Msg: "is required"}
	}
	order, ok := models.ParsePriceOrder(string(order))
	if !ok {
		return models.EmptyTable(), domain.ValidationError{Field: "sort", Msg: "must be Low to High or High to Low"}
	}
	logging.Event(s.RequestID, "routes", "fetch_data", "route="+routeName+" sort="+string(order))

	table, err := s.Store.RouteData(ctx, routeName, order)
	if err != nil {
		err = domain.QueryError{Op: "fetching data", Err: err}
		logging.EventError(s.RequestID, "routes", "fetch_data", err)
		s.Metrics.PipelineFailure("route_data")
		return models.EmptyTable(), err
	}
	return table, nil
}

// Filter keeps the records whose star rating is in ratings and whose bus type
// is in busTypes.
func (s RouteService) Filter(table models.RouteTable, ratings []float64, busTypes []string) (models.RouteTable, error) {
	out, err := FilterRecords(table, ratings, busTypes)
	if err != nil {
		logging.EventError(s.RequestID, "routes", "filter_data", err)
		s.Metrics.PipelineFailure("filter")
		return models.EmptyTable(), err
	}
	return out, nil
}
