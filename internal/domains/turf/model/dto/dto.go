package dto

import (
	"turfbook/internal/domains/turf/model"
	"turfbook/shared"
	gDto "turfbook/shared/dto"
	gModel "turfbook/shared/model"
	"turfbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateTurfRequest struct {
	VenueID      string   `json:"venue_id"       validate:"required,uuid"`
	Name         string   `json:"name"           validate:"required,max=255"`
	PricePerHour float64  `json:"price_per_hour" validate:"required,gt=0"`
	SportType    string   `json:"sport_type"     validate:"required,oneof=Football Cricket Basketball Tennis Badminton Volleyball Other"`
	Description  string   `json:"description"    validate:"omitempty,max=2000"`
	Images       []string `json:"images"         validate:"omitempty,dive,url"`
	Amenities    []string `json:"amenities"      validate:"omitempty,dive,required,max=100"`
}

// ToModel builds the turf, falling back to the sport's default amenities when none were given.
func (c *CreateTurfRequest) ToModel(user string) model.Turf {
	sportType := model.SportType(c.SportType)

	amenities := c.Amenities
	if len(amenities) == 0 {
		amenities = model.DefaultAmenities(sportType)
	}

	images := c.Images
	if images == nil {
		images = []string{}
	}

	return model.Turf{
		ID:           uuid.NewString(),
		VenueID:      c.VenueID,
		Name:         c.Name,
		PricePerHour: c.PricePerHour,
		SportType:    sportType,
		Description:  c.Description,
		Images:       pq.StringArray(images),
		Amenities:    pq.StringArray(amenities),
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateImagesRequest struct {
	Images pq.StringArray `db:"images"`
}

type TurfResponse struct {
	ID           string   `json:"id"`
	VenueID      string   `json:"venue_id"`
	Name         string   `json:"name"`
	PricePerHour float64  `json:"price_per_hour"`
	SportType    string   `json:"sport_type"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	gDto.Metadata
}

func (r *TurfResponse) FromModel(model model.Turf) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.Name = model.Name
	r.PricePerHour = model.PricePerHour
	r.SportType = string(model.SportType)
	r.Description = model.Description
	r.Images = append([]string{}, model.Images...)
	r.Amenities = append([]string{}, model.Amenities...)
	r.Metadata.FromModel(model.Metadata)
}

type GetTurfsResponse struct {
	Turfs     []TurfResponse `json:"turfs"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTurfsResponse) FromModels(models []model.Turf, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Turfs = make([]TurfResponse, len(models))
	for i, mod := range models {
		r.Turfs[i].FromModel(mod)
	}
}

type AmenitiesResponse struct {
	SportType string   `json:"sport_type"`
	Amenities []string `json:"amenities"`
}

type AmenitiesRequest struct {
	SportType string `validate:"required,oneof=Football Cricket Basketball Tennis Badminton Volleyball Other" json:"sport_type"`
}
