package turf

import (
	"net/http"
	"turfbook/infras/otel"
	bookingService "turfbook/internal/domains/booking/service"
	"turfbook/internal/domains/turf/model/dto"
	"turfbook/internal/domains/turf/service"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/validator"
	"turfbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Turf
	bookings bookingService.Booking
	otel     otel.Otel
}

func New(service service.Turf, bookings bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		bookings: bookings,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/turfs", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTurf)
		routerGroup.Get("/amenities", handler.GetDefaultAmenities)
		routerGroup.Get("/{id}", handler.GetTurfByID)
		routerGroup.Get("/{id}/slots", handler.GetAvailableSlots)
		routerGroup.Get("/{id}/bookings", handler.GetTurfBookings)
		routerGroup.Post("/{id}/images", handler.UploadImage)
	})
}

// CreateTurf handles the creation of a new turf.
// @Summary Create a turf
// @Description Create a turf on a venue owned by the calling host. Amenities default by sport type when empty.
// @Tags Turf
// @Accept json
// @Produce json
// @Param request body dto.CreateTurfRequest true "Create Turf Request"
// @Success 201 {object} response.Data[dto.TurfResponse] "Turf created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs [post]
// @Security BearerAuth
func (handler *Handler) CreateTurf(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTurf")
	defer scope.End()

	req := dto.CreateTurfRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	turf, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create turf")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Turf created " + turf.ID)

	response.WithJSON(writer, http.StatusCreated, turf)
}

// GetDefaultAmenities returns the amenities a new turf of the given sport gets by default.
// @Summary Default amenities
// @Tags Turf
// @Produce json
// @Param sport_type query string true "Sport type" Enums(Football, Cricket, Basketball, Tennis, Badminton, Volleyball, Other)
// @Success 200 {object} response.Data[dto.AmenitiesResponse] "Amenities"
// @Failure 400 {object} response.Error
// @Router /v1/turfs/amenities [get]
func (handler *Handler) GetDefaultAmenities(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDefaultAmenities")
	defer scope.End()

	amenities, err := handler.service.DefaultAmenities(ctx, request.URL.Query().Get(constant.RequestParamSport))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, amenities)
}

// GetTurfByID retrieves a turf by its ID.
// @Summary Get a turf
// @Tags Turf
// @Produce json
// @Param id path string true "Turf ID"
// @Success 200 {object} response.Data[dto.TurfResponse] "Turf"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs/{id} [get]
func (handler *Handler) GetTurfByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTurfByID")
	defer scope.End()

	turf, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get turf by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, turf)
}

// GetAvailableSlots returns the half-hour slot grid of a turf for one day.
// @Summary Available slots
// @Description 28 slots from 08:00 to 22:00. A slot is unavailable when it overlaps a non-cancelled booking.
// @Tags Turf
// @Produce json
// @Param id path string true "Turf ID"
// @Param date query string true "Day as YYYY-MM-DD or RFC3339"
// @Success 200 {object} map[string]interface{} "turf_id, date, slot_price and slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs/{id}/slots [get]
func (handler *Handler) GetAvailableSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableSlots")
	defer scope.End()

	turfID := chi.URLParam(request, constant.RequestParamID)

	slots, err := handler.bookings.AvailableSlots(ctx, turfID, request.URL.Query().Get(constant.RequestParamDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("turf_id", turfID).Msg("failed to get available slots")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, slots)
}

// GetTurfBookings lists the bookings of a turf.
// @Summary List turf bookings
// @Tags Turf
// @Produce json
// @Param id path string true "Turf ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} map[string]interface{} "Bookings with total_page and total_data"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs/{id}/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetTurfBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTurfBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.bookings.GetByTurf(ctx, chi.URLParam(request, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get turf bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// UploadImage attaches an image to a turf.
// @Summary Upload a turf image
// @Description Accepts png, jpeg or webp up to 5MB as multipart field "image".
// @Tags Turf
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Turf ID"
// @Param image formData file true "Image"
// @Success 200 {object} response.Data[dto.TurfResponse] "Updated turf"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/turfs/{id}/images [post]
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

	turf, err := handler.service.UploadImage(ctx, chi.URLParam(request, constant.RequestParamID), image)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload turf image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Turf image uploaded " + turf.ID)

	response.WithJSON(writer, http.StatusOK, turf)
}
