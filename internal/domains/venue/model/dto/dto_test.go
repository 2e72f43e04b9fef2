package dto_test

import (
	"testing"
	"turfbook/internal/domains/venue/model"
	"turfbook/internal/domains/venue/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVenueRequest_ToModel(t *testing.T) {
	link := "https://maps.google.com/?q=arena"
	req := dto.CreateVenueRequest{Name: "Arena", Address: "1 Main St", GoogleMapsLink: &link}

	venue := req.ToModel("host-1")

	assert.NotEmpty(t, venue.ID)
	assert.Equal(t, "host-1", venue.HostID)
	assert.Equal(t, "host-1", venue.CreatedBy)
	assert.NotNil(t, venue.Images)
	assert.Equal(t, &link, venue.GoogleMapsLink)
}

func TestSearchFilter(t *testing.T) {
	assert.Empty(t, dto.SearchFilter("").Filters)

	filter := dto.SearchFilter("Arena")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(LOWER(venues.name) LIKE LOWER(:q_name)  OR LOWER(venues.address) LIKE LOWER(:q_address)  OR LOWER(venues.description) LIKE LOWER(:q_description) )", where)
	assert.Equal(t, map[string]any{"q_name": "%Arena%", "q_address": "%Arena%", "q_description": "%Arena%"}, args)
}

func TestGetVenuesResponse(t *testing.T) {
	var res dto.GetVenuesResponse

	res.FromModels([]model.Venue{{ID: "v-1", Name: "Arena"}}, 11, 10)

	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, 11, res.TotalData)
	require.Len(t, res.Venues, 1)
	assert.Equal(t, "Arena", res.Venues[0].Name)
	assert.NotNil(t, res.Venues[0].Images)
}
