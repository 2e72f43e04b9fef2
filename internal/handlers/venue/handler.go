package venue

import (
	"net/http"
	"turfbook/infras/otel"
	turfService "turfbook/internal/domains/turf/service"
	"turfbook/internal/domains/venue/model/dto"
	"turfbook/internal/domains/venue/service"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/validator"
	"turfbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Venue
	turfs   turfService.Turf
	otel    otel.Otel
}

func New(service service.Venue, turfs turfService.Turf, otel otel.Otel) Handler {
	return Handler{
		service: service,
		turfs:   turfs,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/venues", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateVenue)
		routerGroup.Get("/", handler.GetVenues)
		routerGroup.Get("/mine", handler.GetMyVenues)
		routerGroup.Get("/{id}", handler.GetVenueByID)
		routerGroup.Get("/{id}/turfs", handler.GetVenueTurfs)
		routerGroup.Post("/{id}/images", handler.UploadImage)
	})
}

// CreateVenue handles the creation of a new venue.
// @Summary Create a venue
// @Description Create a venue owned by the calling host.
// @Tags Venue
// @Accept json
// @Produce json
// @Param request body dto.CreateVenueRequest true "Create Venue Request"
// @Success 201 {object} response.Data[dto.VenueResponse] "Venue created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [post]
// @Security BearerAuth
func (handler *Handler) CreateVenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVenue")
	defer scope.End()

	req := dto.CreateVenueRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	venue, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create venue")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Venue created " + venue.ID)

	response.WithJSON(writer, http.StatusCreated, venue)
}

// GetVenues lists venues, optionally filtered by a search term.
// @Summary List venues
// @Description Search matches name, address or description, case-insensitively.
// @Tags Venue
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param q query string false "Search term"
// @Success 200 {object} response.Data[dto.GetVenuesResponse] "Venues"
// @Failure 500 {object} response.Error
// @Router /v1/venues [get]
func (handler *Handler) GetVenues(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	venues, err := handler.service.GetAll(ctx, queryParams, request.URL.Query().Get(constant.RequestParamQuery))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venues")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, venues)
}

// GetMyVenues lists the calling host's venues.
// @Summary List my venues
// @Tags Venue
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetVenuesResponse] "Venues"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyVenues(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyVenues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	venues, err := handler.service.GetByHost(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get host venues")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, venues)
}

// GetVenueByID retrieves a venue by its ID.
// @Summary Get a venue
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Data[dto.VenueResponse] "Venue"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [get]
func (handler *Handler) GetVenueByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueByID")
	defer scope.End()

	venue, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, venue)
}

// GetVenueTurfs lists the turfs of a venue.
// @Summary List turfs of a venue
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} map[string]interface{} "Turfs with total_page and total_data"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/turfs [get]
func (handler *Handler) GetVenueTurfs(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueTurfs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	turfs, err := handler.turfs.GetByVenue(ctx, chi.URLParam(request, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue turfs")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, turfs)
}

// UploadImage attaches an image to a venue.
// @Summary Upload a venue image
// @Description Accepts png, jpeg or webp up to 5MB as multipart field "image".
// @Tags Venue
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Venue ID"
// @Param image formData file true "Image"
// @Success 200 {object} response.Data[dto.VenueResponse] "Updated venue"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	image := gDto.ImageUpload{}

	if err := image.FromRequest(request); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read image upload")

		response.WithError(writer, err)

		return
	}
	defer image.File.Close()

	venue, err := handler.service.UploadImage(ctx, chi.URLParam(request, constant.RequestParamID), image)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload venue image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Venue image uploaded " + venue.ID)

	response.WithJSON(writer, http.StatusOK, venue)
}
