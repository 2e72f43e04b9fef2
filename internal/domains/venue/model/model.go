package model

import (
	"turfbook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "venues"
	EntityName = "venue"

	FieldID             = "id"
	FieldHostID         = "host_id"
	FieldName           = "name"
	FieldAddress        = "address"
	FieldDescription    = "description"
	FieldImages         = "images"
	FieldGoogleMapsLink = "google_maps_link"
)

type Venue struct {
	ID             string         `db:"id"`
	HostID         string         `db:"host_id"`
	Name           string         `db:"name"`
	Address        string         `db:"address"`
	Description    string         `db:"description"`
	Images         pq.StringArray `db:"images"`
	GoogleMapsLink *string        `db:"google_maps_link"`
	model.Metadata
}
