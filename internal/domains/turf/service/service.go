package service

import (
	"context"
	"fmt"
	"path"
	"turfbook/config"
	"turfbook/infras/otel"
	"turfbook/infras/s3"
	"turfbook/internal/domains/turf/model"
	"turfbook/internal/domains/turf/model/dto"
	"turfbook/internal/domains/turf/repository"
	venueModel "turfbook/internal/domains/venue/model"
	venueRepo "turfbook/internal/domains/venue/repository"
	"turfbook/shared"
	"turfbook/shared/cache"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"
	"turfbook/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTurf    = "turf:get"
	cacheGetAllTurf = "turf:gets"
)

type Turf interface {
	Create(ctx context.Context, req dto.CreateTurfRequest) (dto.TurfResponse, error)
	Get(ctx context.Context, id string) (dto.TurfResponse, error)
	GetByVenue(ctx context.Context, venueID string, req gDto.QueryParams) (dto.GetTurfsResponse, error)
	DefaultAmenities(ctx context.Context, sportType string) (dto.AmenitiesResponse, error)
	UploadImage(ctx context.Context, id string, image gDto.ImageUpload) (dto.TurfResponse, error)
}

type serviceImpl struct {
	repo      repository.Turf
	venueRepo venueRepo.Venue
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(repo repository.Turf, venueRepo venueRepo.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Turf {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTurfRequest) (res dto.TurfResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.UserIDFromContext(ctx)

	if err = s.authorizeVenue(ctx, req.VenueID); err != nil {
		return res, err
	}

	turf := req.ToModel(user)

	if err = s.repo.Insert(ctx, turf); err != nil {
		log.Error().Err(err).Msg("failed to create turf")

		return res, fmt.Errorf("failed to create turf: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTurf)
	}()

	res.FromModel(turf)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TurfResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTurf, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for turf")

		return res, nil
	}

	turf, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(turf)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save turf to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByVenue(ctx context.Context, venueID string, req gDto.QueryParams) (res dto.GetTurfsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByVenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(venueID, model.FieldVenueID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTurf, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for turfs")

		return res, nil
	}

	if _, err = s.getVenue(ctx, venueID); err != nil {
		return res, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count turfs")

		return res, fmt.Errorf("failed to count turfs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get turfs")

		return res, fmt.Errorf("failed to get turfs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save turfs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) DefaultAmenities(ctx context.Context, sportType string) (res dto.AmenitiesResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DefaultAmenities")
	defer scope.End()
	defer scope.TraceIfError(err)

	req := dto.AmenitiesRequest{SportType: sportType}
	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	res.SportType = req.SportType
	res.Amenities = model.DefaultAmenities(model.SportType(req.SportType))

	return res, nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, image gDto.ImageUpload) (res dto.TurfResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = image.Validate(); err != nil {
		return res, err //nolint:wrapcheck
	}

	turf, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeVenue(ctx, turf.VenueID); err != nil {
		return res, err
	}

	bucketName := s.cfg.External.S3.BucketName
	directory := path.Join(model.TableName, turf.ID)
	objectName := image.ObjectName()

	url, err := s.s3.UploadFile(ctx, bucketName, directory, image.File, image.Header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload turf image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	turf.Images = append(turf.Images, url)
	updatedFields := shared.TransformFields(dto.UpdateImagesRequest{Images: turf.Images}, shared.UserIDFromContext(ctx))

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(turf.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save turf image")

		if delErr := s.s3.DeleteFile(ctx, bucketName, directory, objectName); delErr != nil {
			log.Error().Err(delErr).Str("object", objectName).Msg("failed to remove orphaned turf image")
		}

		return res, fmt.Errorf("failed to save turf image: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTurf, turf.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete turf from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTurf)
	}()

	res.FromModel(turf)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Turf, error) {
	turf, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get turf")

		return turf, fmt.Errorf("failed to get turf: %w", err)
	}

	if turf.ID == constant.Empty {
		return turf, failure.NotFound("turf not found") // nolint:wrapcheck
	}

	return turf, nil
}

func (s *serviceImpl) getVenue(ctx context.Context, id string) (venueModel.Venue, error) {
	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(id, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venue, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venue, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	return venue, nil
}

// authorizeVenue allows admins and the host owning venueID.
func (s *serviceImpl) authorizeVenue(ctx context.Context, venueID string) error {
	role := shared.UserRoleFromContext(ctx)
	if role != constant.RoleHost && role != constant.RoleAdmin {
		return failure.Forbidden("only hosts can manage turfs") // nolint:wrapcheck
	}

	venue, err := s.getVenue(ctx, venueID)
	if err != nil {
		return err
	}

	if role != constant.RoleAdmin && venue.HostID != shared.UserIDFromContext(ctx) {
		return failure.Forbidden("venue belongs to another host") // nolint:wrapcheck
	}

	return nil
}
