package service_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"castmind/backend/internal/model"
	"castmind/backend/internal/service"
)

func TestFeedConflictError_Error(t *testing.T) {
	err := &service.FeedConflictError{ExistingFeed: model.Feed{ID: 123, Name: "Test Feed"}}
	require.Equal(t, "feed already exists", err.Error())
}

func TestFeedConflictError_Is(t *testing.T) {
	err := &service.FeedConflictError{ExistingFeed: model.Feed{ID: 123}}

	require.True(t, errors.Is(err, service.ErrConflict))
	require.False(t, errors.Is(err, service.ErrNotFound))

	wrapped := fmt.Errorf("add feed: %w", err)
	require.ErrorIs(t, wrapped, service.ErrConflict)

	var conflict *service.FeedConflictError
	require.ErrorAs(t, wrapped, &conflict)
	require.Equal(t, int64(123), conflict.ExistingFeed.ID)
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{service.ErrNotFound, service.ErrConflict, service.ErrInvalid, service.ErrFeedFetch}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				require.NotErrorIs(t, a, b)
			}
		}
	}
	require.NotErrorIs(t, sql.ErrNoRows, service.ErrNotFound)
}
