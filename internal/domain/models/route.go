package models

import (
	"strings"

	"busdekho/internal/utils"
)

// bus_routes column names.
const (
	ColRouteName  = "Route_Name"
	ColPrice      = "Price"
	ColStarRating = "Star_Rating"
	ColBusType    = "Bus_Type"
)

// RouteRecord is one row of bus_routes. The typed fields mirror the known
// columns; Fields keeps every column of the row as text, keyed by column name.
type RouteRecord struct {
	RouteName  string            `json:"route_name" csv:"Route_Name"`
	BusType    string            `json:"bus_type" csv:"Bus_Type"`
	StarRating float64           `json:"star_rating" csv:"Star_Rating"`
	Price      float64           `json:"price" csv:"Price"`
	Fields     map[string]string `json:"fields,omitempty" csv:"-"`
}

// Value returns the text of column col, falling back to the typed fields.
func (r RouteRecord) Value(col string) string {
	if v, ok := r.Fields[col]; ok {
		return v
	}
	for k, v := range r.Fields {
		if strings.EqualFold(k, col) {
			return v
		}
	}
	return ""
}

// RouteTable is a fetched result set: columns in select order plus records in
// query order. The zero value is the empty table.
type RouteTable struct {
	Columns []string      `json:"columns"`
	Records []RouteRecord `json:"records"`
}

// EmptyTable returns a table with non-nil, empty slices so it encodes as [].
func EmptyTable() RouteTable {
	return RouteTable{Columns: []string{}, Records: []RouteRecord{}}
}

func (t RouteTable) Empty() bool {
	return len(t.Records) == 0
}

func (t RouteTable) Len() int {
	return len(t.Records)
}

// HasColumn reports whether col is present, ignoring case the way MySQL does.
func (t RouteTable) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if strings.EqualFold(c, col) {
			return true
		}
	}
	return false
}

// PriceOrder is the price direction among buses with equal star rating.
type PriceOrder string

const (
	PriceLowToHigh PriceOrder = "Low to High"
	PriceHighToLow PriceOrder = "High to Low"
)

// PriceOrders lists the admissible values in display order.
var PriceOrders = []PriceOrder{PriceLowToHigh, PriceHighToLow}

// ParsePriceOrder accepts the two display labels plus asc/desc aliases.
func ParsePriceOrder(raw string) (PriceOrder, bool) {
	s := utils.NormalizeSpace(raw)
	switch {
	case strings.EqualFold(s, string(PriceLowToHigh)), strings.EqualFold(s, "asc"):
		return PriceLowToHigh, true
	case strings.EqualFold(s, string(PriceHighToLow)), strings.EqualFold(s, "desc"):
		return PriceHighToLow, true
	}
	return "", false
}

// SQL returns the ORDER BY keyword for the order.
func (o PriceOrder) SQL() string {
	if o == PriceLowToHigh {
		return "ASC"
	}
	return "DESC"
}
