package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"castmind/backend/internal/handler"
	"castmind/backend/internal/service"
	"castmind/backend/internal/service/mock"
)

func TestHostLimitHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockHostLimitService(ctrl)
	h := handler.NewHostLimitHandler(mockService)

	e := newTestEcho()
	c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/host-limits", nil))
	mockService.EXPECT().List(gomock.Any()).Return([]service.HostLimitDTO{
		{ID: "1", Host: "feeds.example.org", IntervalSeconds: 5},
	}, nil)

	require.NoError(t, h.List(c))
	var resp []service.HostLimitDTO
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Len(t, resp, 1)
	require.Equal(t, "feeds.example.org", resp[0].Host)
}

func TestHostLimitHandler_Set(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockHostLimitService(ctrl)
	h := handler.NewHostLimitHandler(mockService)
	e := newTestEcho()

	mockService.EXPECT().SetInterval(gomock.Any(), "feeds.example.org", 5).Return(nil)
	mockService.EXPECT().GetInterval(gomock.Any(), "feeds.example.org").Return(5)

	c, rec := newTestContext(e, newJSONRequest(http.MethodPost, "/host-limits", map[string]interface{}{
		"host":            "feeds.example.org",
		"intervalSeconds": 5,
	}))
	require.NoError(t, h.Set(c))
	var resp map[string]interface{}
	assertJSONResponse(t, rec, http.StatusCreated, &resp)
	require.Equal(t, float64(5), resp["intervalSeconds"])

	mockService.EXPECT().
		SetInterval(gomock.Any(), "https://bad/host", 5).
		Return(fmt.Errorf("%w: host", service.ErrInvalid))
	c, rec = newTestContext(e, newJSONRequest(http.MethodPost, "/host-limits", map[string]interface{}{
		"host":            "https://bad/host",
		"intervalSeconds": 5,
	}))
	require.NoError(t, h.Set(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHostLimitHandler_UpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockHostLimitService(ctrl)
	h := handler.NewHostLimitHandler(mockService)
	e := newTestEcho()

	mockService.EXPECT().SetInterval(gomock.Any(), "example.org", 30).Return(nil)
	mockService.EXPECT().GetInterval(gomock.Any(), "example.org").Return(30)
	c, rec := newTestContext(e, newJSONRequest(http.MethodPut, "/host-limits/example.org", map[string]interface{}{
		"intervalSeconds": 30,
	}))
	setPathParams(c, map[string]string{"host": "example.org"})
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	mockService.EXPECT().DeleteInterval(gomock.Any(), "example.org").Return(nil)
	c, rec = newTestContext(e, newJSONRequest(http.MethodDelete, "/host-limits/example.org", nil))
	setPathParams(c, map[string]string{"host": "example.org"})
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	mockService.EXPECT().DeleteInterval(gomock.Any(), "gone.org").Return(service.ErrNotFound)
	c, rec = newTestContext(e, newJSONRequest(http.MethodDelete, "/host-limits/gone.org", nil))
	setPathParams(c, map[string]string{"host": "gone.org"})
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
