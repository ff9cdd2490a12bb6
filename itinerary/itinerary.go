// ABOUTME: Itinerary timeline grouping for the travel-application view
// ABOUTME: Groups flat dated segments by day preserving first-seen date order
package itinerary

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/voyagehq/tripdesk/models"
)

// UnknownDate is the bucket for segments carrying no usable date at all.
const UnknownDate = "Unknown Date"

// Day is one rendered group of the timeline. It is also the wire shape of
// a backend that sends the timeline pre-grouped.
type Day struct {
	Date     string                    `json:"date"`
	Segments []models.ItinerarySegment `json:"segments"`
}

// Decode parses an itinerary response body. The backend sends either a
// flat segment list or days already grouped by date; grouped input passes
// through unchanged, flat input is grouped here.
func Decode(data []byte) ([]Day, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	if days, ok := decodeGrouped(data); ok {
		return days, nil
	}
	var segments []models.ItinerarySegment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}
	return Days(segments), nil
}

// decodeGrouped detects the pre-grouped shape. Flat segments also carry
// date fields, so the check keys on every element having a segments
// array.
func decodeGrouped(data []byte) ([]Day, bool) {
	var peek []struct {
		Segments json.RawMessage `json:"segments"`
	}
	if err := json.Unmarshal(data, &peek); err != nil || len(peek) == 0 {
		return nil, false
	}
	for _, p := range peek {
		if p.Segments == nil {
			return nil, false
		}
	}
	var days []Day
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, false
	}
	return days, true
}

// SegmentDate picks the grouping date of a segment: date, else departure
// date, else start date, else the unknown bucket.
func SegmentDate(s models.ItinerarySegment) string {
	switch {
	case s.Date != "":
		return s.Date
	case s.DepartureDate != "":
		return s.DepartureDate
	case s.StartDate != "":
		return s.StartDate
	default:
		return UnknownDate
	}
}

// GroupByDay yields (date, segments) groups lazily. Distinct dates appear
// in first-seen order and segments keep their original relative order
// within a day. The sequence is finite and restartable: ranging over it
// twice produces the same groups.
func GroupByDay(segments []models.ItinerarySegment) iter.Seq2[string, []models.ItinerarySegment] {
	return func(yield func(string, []models.ItinerarySegment) bool) {
		var order []string
		grouped := map[string][]models.ItinerarySegment{}
		for _, s := range segments {
			date := SegmentDate(s)
			if _, seen := grouped[date]; !seen {
				order = append(order, date)
			}
			grouped[date] = append(grouped[date], s)
		}
		for _, date := range order {
			if !yield(date, grouped[date]) {
				return
			}
		}
	}
}

// Days collects the grouping into a slice for renderers that index into
// it (the TUI timeline does).
func Days(segments []models.ItinerarySegment) []Day {
	var days []Day
	for date, group := range GroupByDay(segments) {
		days = append(days, Day{Date: date, Segments: group})
	}
	return days
}
