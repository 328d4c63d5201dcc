package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"busdekho/internal/domain/models"
	"busdekho/internal/metrics"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var busRouteCols = []string{"id", "Route_Name", "Bus_Name", "Bus_Type", "Star_Rating", "Price", "Seats_Available"}

func newMockRepo(t *testing.T) (BusRouteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return BusRouteRepository{DB: db}, mock
}

func TestRouteNamesQueryAndOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT Route_Name FROM bus_routes WHERE Route_Name LIKE ? ORDER BY Route_Name")).
		WithArgs("A%").
		WillReturnRows(sqlmock.NewRows([]string{"Route_Name"}).AddRow("Alpha").AddRow("Apex"))

	names, err := repo.RouteNames(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Apex"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteNamesEscapesWildcards(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT DISTINCT Route_Name").
		WithArgs(`A\_%`).
		WillReturnRows(sqlmock.NewRows([]string{"Route_Name"}))

	names, err := repo.RouteNames(context.Background(), "A_")
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteNamesQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	reg := metrics.New(prometheus.NewRegistry())
	repo.Metrics = reg

	mock.ExpectQuery("SELECT DISTINCT Route_Name").WillReturnError(errors.New("table doesn't exist"))

	names, err := repo.RouteNames(context.Background(), "A")
	assert.Nil(t, names)
	assert.ErrorContains(t, err, "table doesn't exist")
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.DBQueriesTotal.WithLabelValues("route_names", "error")))
}

func TestRouteDataOrderByDirection(t *testing.T) {
	cases := []struct {
		order models.PriceOrder
		sql   string
	}{
		{models.PriceLowToHigh, "SELECT * FROM bus_routes WHERE Route_Name = ? ORDER BY Star_Rating DESC, Price ASC"},
		{models.PriceHighToLow, "SELECT * FROM bus_routes WHERE Route_Name = ? ORDER BY Star_Rating DESC, Price DESC"},
	}
	for _, tc := range cases {
		t.Run(string(tc.order), func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectQuery("^" + regexp.QuoteMeta(tc.sql) + "$").
				WithArgs("Alpha").
				WillReturnRows(sqlmock.NewRows(busRouteCols))

			table, err := repo.RouteData(context.Background(), "Alpha", tc.order)
			require.NoError(t, err)
			assert.Equal(t, busRouteCols, table.Columns)
			assert.True(t, table.Empty())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRouteDataScansRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(busRouteCols).
		AddRow(int64(7), []byte("Alpha"), []byte("KPN Travels"), []byte("AC Sleeper"), []byte("5"), []byte("80.00"), int64(12)).
		AddRow(int64(3), []byte("Alpha"), []byte("SRS"), []byte("Seater"), 5.0, 100.0, nil).
		AddRow(int64(9), []byte("Alpha"), []byte("Orange"), []byte("AC Sleeper"), []byte("3"), []byte("200"), int64(0))
	mock.ExpectQuery("SELECT \\* FROM bus_routes").WithArgs("Alpha").WillReturnRows(rows)

	table, err := repo.RouteData(context.Background(), "Alpha", models.PriceLowToHigh)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	first := table.Records[0]
	assert.Equal(t, "Alpha", first.RouteName)
	assert.Equal(t, "AC Sleeper", first.BusType)
	assert.Equal(t, 5.0, first.StarRating)
	assert.Equal(t, 80.0, first.Price)
	assert.Equal(t, "KPN Travels", first.Value("Bus_Name"))
	assert.Equal(t, "7", first.Value("id"))

	assert.Equal(t, 100.0, table.Records[1].Price)
	assert.Equal(t, "", table.Records[1].Value("Seats_Available"))
	assert.Equal(t, 3.0, table.Records[2].StarRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteDataBadNumber(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"Route_Name", "Price", "Star_Rating", "Bus_Type"}).
		AddRow("Alpha", "n/a", "4", "Seater")
	mock.ExpectQuery("SELECT \\* FROM bus_routes").WithArgs("Alpha").WillReturnRows(rows)

	_, err := repo.RouteData(context.Background(), "Alpha", models.PriceHighToLow)
	assert.ErrorContains(t, err, "column Price")
}

func TestRouteDataQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT \\* FROM bus_routes").WillReturnError(errors.New("lost connection"))

	table, err := repo.RouteData(context.Background(), "Alpha", models.PriceLowToHigh)
	assert.Error(t, err)
	assert.True(t, table.Empty())
}

func TestRepositoryWithoutDB(t *testing.T) {
	_, err := BusRouteRepository{}.RouteNames(context.Background(), "A")
	assert.Error(t, err)
}

func TestTableExistsAndCount(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("bus_routes").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bus_routes"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bus_routes")).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(42)))

	ok, err := repo.TableExists(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := repo.CountRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
