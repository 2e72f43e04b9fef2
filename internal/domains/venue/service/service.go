package service

import (
	"context"
	"fmt"
	"path"
	"turfbook/config"
	"turfbook/infras/otel"
	"turfbook/infras/s3"
	"turfbook/internal/domains/venue/model"
	"turfbook/internal/domains/venue/model/dto"
	"turfbook/internal/domains/venue/repository"
	"turfbook/shared"
	"turfbook/shared/cache"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetVenue    = "venue:get"
	cacheGetAllVenue = "venue:gets"
)

type Venue interface {
	Create(ctx context.Context, req dto.CreateVenueRequest) (dto.VenueResponse, error)
	Get(ctx context.Context, id string) (dto.VenueResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, query string) (dto.GetVenuesResponse, error)
	GetByHost(ctx context.Context, req gDto.QueryParams) (dto.GetVenuesResponse, error)
	UploadImage(ctx context.Context, id string, image gDto.ImageUpload) (dto.VenueResponse, error)
}

type serviceImpl struct {
	repo  repository.Venue
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Venue {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVenueRequest) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if role := shared.UserRoleFromContext(ctx); role != constant.RoleHost && role != constant.RoleAdmin {
		return res, failure.Forbidden("only hosts can create venues") // nolint:wrapcheck
	}

	venue := req.ToModel(shared.UserIDFromContext(ctx))

	if err = s.repo.Insert(ctx, venue); err != nil {
		log.Error().Err(err).Msg("failed to create venue")

		return res, fmt.Errorf("failed to create venue: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVenue)
	}()

	res.FromModel(venue)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetVenue, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venue")

		return res, nil
	}

	venue, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(venue)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venue to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, query string) (res dto.GetVenuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.list(ctx, req, dto.SearchFilter(query))
}

func (s *serviceImpl) GetByHost(ctx context.Context, req gDto.QueryParams) (res dto.GetVenuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByHost")
	defer scope.End()
	defer scope.TraceIfError(err)

	host := shared.UserIDFromContext(ctx)
	if host == constant.Empty {
		return res, failure.Unauthorized("missing user") // nolint:wrapcheck
	}

	return s.list(ctx, req, shared.FilterByID(host, model.FieldHostID, model.TableName))
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, image gDto.ImageUpload) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = image.Validate(); err != nil {
		return res, err //nolint:wrapcheck
	}

	venue, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	user := shared.UserIDFromContext(ctx)
	if shared.UserRoleFromContext(ctx) != constant.RoleAdmin && venue.HostID != user {
		return res, failure.Forbidden("venue belongs to another host") // nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName
	directory := path.Join(model.TableName, venue.ID)
	objectName := image.ObjectName()

	url, err := s.s3.UploadFile(ctx, bucketName, directory, image.File, image.Header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload venue image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	venue.Images = append(venue.Images, url)
	updatedFields := shared.TransformFields(dto.UpdateImagesRequest{Images: venue.Images}, user)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(venue.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save venue image")

		if delErr := s.s3.DeleteFile(ctx, bucketName, directory, objectName); delErr != nil {
			log.Error().Err(delErr).Str("object", objectName).Msg("failed to remove orphaned venue image")
		}

		return res, fmt.Errorf("failed to save venue image: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVenue, venue.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete venue from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVenue)
	}()

	res.FromModel(venue)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Venue, error) {
	venue, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venue, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venue, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	return venue, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVenuesResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVenue, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venues")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count venues")

		return res, fmt.Errorf("failed to count venues: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get venues")

		return res, fmt.Errorf("failed to get venues: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venues to cache")
		}
	}()

	return res, nil
}
