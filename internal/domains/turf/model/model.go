package model

import (
	"turfbook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "turfs"
	EntityName = "turf"

	FieldID           = "id"
	FieldVenueID      = "venue_id"
	FieldName         = "name"
	FieldPricePerHour = "price_per_hour"
	FieldSportType    = "sport_type"
	FieldDescription  = "description"
	FieldImages       = "images"
	FieldAmenities    = "amenities"
)

type SportType string

const (
	SportFootball   SportType = "Football"
	SportCricket    SportType = "Cricket"
	SportBasketball SportType = "Basketball"
	SportTennis     SportType = "Tennis"
	SportBadminton  SportType = "Badminton"
	SportVolleyball SportType = "Volleyball"
	SportOther      SportType = "Other"
)

var defaultAmenities = map[SportType][]string{
	SportFootball:   {"Goals", "Corner Flags", "Changing Rooms"},
	SportCricket:    {"Wickets", "Practice Nets", "Pavilion"},
	SportBasketball: {"Hoops", "Scoreboard", "Indoor Court"},
	SportTennis:     {"Nets", "Racket Rental", "Court Lighting"},
	SportBadminton:  {"Nets", "Shuttle Rental", "Indoor Court"},
	SportVolleyball: {"Nets", "Ball Rental", "Court Markers"},
}

// DefaultAmenities returns a fresh copy of the amenities a turf of sportType gets
// when the host lists none. Unknown sports and Other get an empty list.
func DefaultAmenities(sportType SportType) []string {
	return append([]string{}, defaultAmenities[sportType]...)
}

type Turf struct {
	ID           string         `db:"id"`
	VenueID      string         `db:"venue_id"`
	Name         string         `db:"name"`
	PricePerHour float64        `db:"price_per_hour"`
	SportType    SportType      `db:"sport_type"`
	Description  string         `db:"description"`
	Images       pq.StringArray `db:"images"`
	Amenities    pq.StringArray `db:"amenities"`
	model.Metadata
}
