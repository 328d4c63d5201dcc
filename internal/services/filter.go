package services

import (
	"busdekho/internal/domain"
	"busdekho/internal/domain/models"
)

// FilterRecords returns the records of table matching both sets, in their
// original order. A table without the Star_Rating or Bus_Type column is a
// FilterError. Empty sets match nothing.
func FilterRecords(table models.RouteTable, ratings []float64, busTypes []string) (models.RouteTable, error) {
	for _, col := range []string{models.ColStarRating, models.ColBusType} {
		if !table.HasColumn(col) {
			return models.EmptyTable(), domain.FilterError{Column: col}
		}
	}

	ratingSet := make(map[float64]struct{}, len(ratings))
	for _, r := range ratings {
		ratingSet[r] = struct{}{}
	}
	typeSet := make(map[string]struct{}, len(busTypes))
	for _, bt := range busTypes {
		typeSet[bt] = struct{}{}
	}

	out := models.RouteTable{Columns: table.Columns, Records: []models.RouteRecord{}}
	for _, rec := range table.Records {
		_, okRating := ratingSet[rec.StarRating]
		_, okType := typeSet[rec.BusType]
		if okRating && okType {
			out.Records = append(out.Records, rec)
		}
	}
	return out, nil
}

// UniqueStarRatings lists the distinct star ratings in first-seen order.
func UniqueStarRatings(table models.RouteTable) []float64 {
	seen := map[float64]bool{}
	out := []float64{}
	for _, rec := range table.Records {
		if !seen[rec.StarRating] {
			seen[rec.StarRating] = true
			out = append(out, rec.StarRating)
		}
	}
	return out
}

// UniqueBusTypes lists the distinct bus types in first-seen order.
func UniqueBusTypes(table models.RouteTable) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, rec := range table.Records {
		if !seen[rec.BusType] {
			seen[rec.BusType] = true
			out = append(out, rec.BusType)
		}
	}
	return out
}
