package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"
	"turfbook/config"
	"turfbook/infras/otel/mocks"
	s3Mocks "turfbook/infras/s3/mocks"
	venueMocks "turfbook/internal/domains/venue/mocks"
	"turfbook/internal/domains/venue/model"
	"turfbook/internal/domains/venue/model/dto"
	"turfbook/internal/domains/venue/service"
	cacheMocks "turfbook/shared/cache/mocks"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	venueID = "0e6a3a38-8f43-4b8e-9a0a-6f1e1c1d2b3a"
	hostID  = "host-1"
)

type fixture struct {
	repo  *venueMocks.MockVenue
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Venue
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  venueMocks.NewMockVenue(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "turfbook"

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func (f fixture) expectSideEffects() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func userContext(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestVenueService_Create(t *testing.T) {
	req := dto.CreateVenueRequest{Name: "Arena", Address: "1 Main St"}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "host creates venue",
			ctx:  userContext(hostID, constant.RoleHost),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, venue model.Venue) error {
					assert.Equal(t, hostID, venue.HostID)

					return nil
				})
				f.expectSideEffects()
			},
		},
		{
			name:      "plain user is rejected",
			ctx:       userContext("user-1", constant.RoleUser),
			setupMock: func(fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name: "insert fails",
			ctx:  userContext(hostID, constant.RoleHost),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(tt.ctx, req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, hostID, res.HostID)
			assert.Equal(t, "Arena", res.Name)
		})
	}
}

func TestVenueService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "venue:get:"+venueID, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, dest any) error {
			*dest.(*dto.VenueResponse) = dto.VenueResponse{ID: venueID, Name: "cached"}

			return nil
		})

		res, err := f.svc.Get(context.Background(), venueID)
		require.NoError(t, err)
		assert.Equal(t, "cached", res.Name)
	})

	t.Run("cache miss", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{ID: venueID, Name: "Arena"}, nil)
		f.expectSideEffects()

		res, err := f.svc.Get(context.Background(), venueID)
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "Arena", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)

		_, err := f.svc.Get(context.Background(), venueID)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestVenueService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("search uses an OR group", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assert.Equal(t, gDto.FilterGroupOperatorOr, filter.Operator)
			assert.Len(t, filter.Filters, 3)

			return 1, nil
		})
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Venue{{ID: venueID, Name: "Green Arena"}}, nil)
		f.expectSideEffects()

		res, err := f.svc.GetAll(context.Background(), params, "arena")
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Venues, 1)
	})

	t.Run("no query lists everything", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assert.Empty(t, filter.Filters)

			return 0, nil
		})
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Venue{}, nil)
		f.expectSideEffects()

		res, err := f.svc.GetAll(context.Background(), params, "")
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalPage)
		assert.Empty(t, res.Venues)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := f.svc.GetAll(context.Background(), params, "x")
		assert.Error(t, err)
	})
}

func TestVenueService_GetByHost(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("filters by caller", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, hostID, args[model.FieldHostID])

			return 2, nil
		})
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Venue{{ID: "v-1"}, {ID: "v-2"}}, nil)
		f.expectSideEffects()

		res, err := f.svc.GetByHost(userContext(hostID, constant.RoleHost), params)
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Len(t, res.Venues, 2)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetByHost(context.Background(), params)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestVenueService_UploadImage(t *testing.T) {
	header := textproto.MIMEHeader{}
	header.Set(constant.RequestHeaderContentType, "image/jpeg")
	upload := gDto.ImageUpload{Header: &multipart.FileHeader{Filename: "front.JPG", Header: header, Size: 4096}}

	venue := model.Venue{ID: venueID, HostID: hostID}

	t.Run("owner uploads", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venue, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), "turfbook", "venues/"+venueID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn/venues/"+venueID+"/a.jpg", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.expectSideEffects()

		res, err := f.svc.UploadImage(userContext(hostID, constant.RoleHost), venueID, upload)
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn/venues/" + venueID + "/a.jpg"}, res.Images)
	})

	t.Run("admin may upload for any venue", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venue, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn/b.jpg", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.expectSideEffects()

		_, err := f.svc.UploadImage(userContext("admin-1", constant.RoleAdmin), venueID, upload)
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("other host", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venue, nil)

		_, err := f.svc.UploadImage(userContext("host-2", constant.RoleHost), venueID, upload)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("upload fails", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venue, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("s3 down"))

		_, err := f.svc.UploadImage(userContext(hostID, constant.RoleHost), venueID, upload)
		assert.Error(t, err)
	})
}
