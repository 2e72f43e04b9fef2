package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
	"turfbook/config"
	"turfbook/infras/otel/mocks"
	userMocks "turfbook/internal/domains/user/mocks"
	"turfbook/internal/domains/user/model"
	"turfbook/internal/domains/user/model/dto"
	"turfbook/internal/domains/user/service"
	cacheMocks "turfbook/shared/cache/mocks"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const userID = "user-1"

func setup(t *testing.T) (*userMocks.MockUser, *cacheMocks.MockRedisCache, service.User) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockUser(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return repo, cache, service.New(repo, cfg, cache, mocks.NewOtel())
}

func userContext(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestUserService_Me(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache)
		wantCode  int
		wantHost  bool
	}{
		{
			name: "cache hit",
			ctx:  userContext(userID),
			setupMock: func(_ *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "user:get:"+userID, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, dest any) error {
					*dest.(*dto.UserResponse) = dto.UserResponse{ID: userID, IsHost: true}

					return nil
				})
			},
			wantHost: true,
		},
		{
			name: "loads host profile",
			ctx:  userContext(userID),
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: userID, Role: constant.RoleHost}, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()
			},
			wantHost: true,
		},
		{
			name: "user deleted",
			ctx:  userContext(userID),
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "anonymous",
			ctx:  context.Background(),
			setupMock: func(_ *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := setup(t)
			tt.setupMock(repo, cache)

			res, err := svc.Me(tt.ctx)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, userID, res.ID)
			assert.Equal(t, tt.wantHost, res.IsHost)
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("updates full name", func(t *testing.T) {
		repo, cache, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: userID, FullName: "Old"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "New Name", fields["full_name"])
			assert.Equal(t, userID, fields[constant.FieldModifiedBy])

			return nil
		})
		cache.EXPECT().Delete(gomock.Any(), "user:get:"+userID).Return(nil).AnyTimes()

		res, err := svc.UpdateProfile(userContext(userID), dto.UpdateProfileRequest{FullName: "New Name"})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "New Name", res.FullName)
	})

	t.Run("update fails", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: userID}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := svc.UpdateProfile(userContext(userID), dto.UpdateProfileRequest{FullName: "New Name"})
		assert.Error(t, err)
	})
}
