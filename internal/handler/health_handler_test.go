package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"castmind/backend/internal/handler"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	e := newTestEcho()

	c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/health", nil))
	require.NoError(t, handler.NewHealthHandler(stubPinger{}).Health(c))
	var resp handler.HealthResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "ok", resp.Status)

	c, rec = newTestContext(e, newJSONRequest(http.MethodGet, "/health", nil))
	require.NoError(t, handler.NewHealthHandler(stubPinger{err: errors.New("database is locked")}).Health(c))
	assertJSONResponse(t, rec, http.StatusServiceUnavailable, &resp)
	require.Equal(t, "degraded", resp.Status)
	require.Equal(t, "database is locked", resp.Database)
}
