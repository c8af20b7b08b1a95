package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Freeeeeet/store_scheduler/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRespondError(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		c, rec := newTestContext(t, "/")

		err := respondError(c, service.NotFoundf("booking_id=%d was not found", 7))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "not_found")
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		c, rec := newTestContext(t, "/")

		err := respondError(c, service.Conflictf("booking is cancelled"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "conflict")
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		c, _ := newTestContext(t, "/")

		err := respondError(c, assert.AnError)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPathID(t *testing.T) {
	c, _ := newTestContext(t, "/")
	c.SetParamNames("store_id")
	c.SetParamValues("42")

	id, err := pathID(c, "store_id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	c.SetParamValues("abc")
	_, err = pathID(c, "store_id")
	assert.Error(t, err)

	c.SetParamValues("-1")
	_, err = pathID(c, "store_id")
	assert.Error(t, err)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", target: "/", wantLimit: 20, wantOffset: 0},
		{name: "explicit values", target: "/?limit=50&offset=10", wantLimit: 50, wantOffset: 10},
		{name: "limit too small", target: "/?limit=0", wantErr: true},
		{name: "limit too large", target: "/?limit=101", wantErr: true},
		{name: "negative offset", target: "/?offset=-1", wantErr: true},
		{name: "not a number", target: "/?limit=ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t, tt.target)

			limit, offset, err := pagination(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
