package dto

import (
	"turfbook/internal/domains/venue/model"
	"turfbook/shared"
	gDto "turfbook/shared/dto"
	gModel "turfbook/shared/model"
	"turfbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateVenueRequest struct {
	Name           string   `json:"name"             validate:"required,max=255"`
	Address        string   `json:"address"          validate:"required,max=500"`
	Description    string   `json:"description"      validate:"omitempty,max=2000"`
	Images         []string `json:"images"           validate:"omitempty,dive,url"`
	GoogleMapsLink *string  `json:"google_maps_link" validate:"omitempty,url"`
}

func (c *CreateVenueRequest) ToModel(host string) model.Venue {
	images := c.Images
	if images == nil {
		images = []string{}
	}

	return model.Venue{
		ID:             uuid.NewString(),
		HostID:         host,
		Name:           c.Name,
		Address:        c.Address,
		Description:    c.Description,
		Images:         pq.StringArray(images),
		GoogleMapsLink: c.GoogleMapsLink,
		Metadata:       gModel.NewMetadata(host, timezone.Now()),
	}
}

type UpdateImagesRequest struct {
	Images pq.StringArray `db:"images"`
}

// SearchFilter matches query against name, address or description, case-insensitively.
// An empty query matches everything.
func SearchFilter(query string) gDto.FilterGroup {
	if query == "" {
		return gDto.FilterGroup{}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{ArgName: "q_name", Field: model.FieldName, Value: query, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			gDto.Filter{ArgName: "q_address", Field: model.FieldAddress, Value: query, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			gDto.Filter{ArgName: "q_description", Field: model.FieldDescription, Value: query, Operator: gDto.FilterOperatorLike, Table: model.TableName},
		},
	}
}

type VenueResponse struct {
	ID             string   `json:"id"`
	HostID         string   `json:"host_id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Description    string   `json:"description"`
	Images         []string `json:"images"`
	GoogleMapsLink *string  `json:"google_maps_link,omitempty"`
	gDto.Metadata
}

func (r *VenueResponse) FromModel(model model.Venue) {
	r.ID = model.ID
	r.HostID = model.HostID
	r.Name = model.Name
	r.Address = model.Address
	r.Description = model.Description
	r.Images = append([]string{}, model.Images...)
	r.GoogleMapsLink = model.GoogleMapsLink
	r.Metadata.FromModel(model.Metadata)
}

type GetVenuesResponse struct {
	Venues    []VenueResponse `json:"venues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVenuesResponse) FromModels(models []model.Venue, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Venues = make([]VenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod)
	}
}
