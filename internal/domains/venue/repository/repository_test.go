package repository_test

import (
	"context"
	"testing"
	"turfbook/infras/otel/mocks"
	"turfbook/internal/domains/venue/repository"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	gRepo "turfbook/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UpdateRequiresFilter(t *testing.T) {
	ot := mocks.NewOtel()
	repo := repository.New(nil, ot)

	err := repo.Update(context.Background(), map[string]any{"name": "renamed"}, gDto.FilterGroup{})
	require.ErrorIs(t, err, gRepo.ErrRequiredFilter)

	scope := ot.Scope(constant.OtelRepositoryScopeName + ".venue.Update")
	require.NotNil(t, scope)
	assert.True(t, scope.Ended)
}
