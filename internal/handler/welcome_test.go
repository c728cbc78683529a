package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcome(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/welcome", nil), rec)

	require.NoError(t, Welcome(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message   string            `json:"message"`
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Welcome to the ALX Travel App API", body.Message)
	assert.Equal(t, "1.0.0", body.Version)
	assert.Equal(t, "/v1/listings", body.Endpoints["listings"])
	assert.Equal(t, "/v1/bookings", body.Endpoints["bookings"])
	assert.Equal(t, "/v1/reviews", body.Endpoints["reviews"])
}

func TestHealth(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)

	require.NoError(t, Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
