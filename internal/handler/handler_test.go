package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/service"
)

func TestParseStartTime(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2035-04-01T20:00:00Z",
		"2035-04-01T22:00:00+02:00",
		"2035-04-01 20:00:00",
		" 2035-04-01 20:00 ",
		"2035-04-01T20:00",
	} {
		got, err := parseStartTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := parseStartTime("next friday")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestRespond(t *testing.T) {
	tests := []struct {
		name    string
		res     model.Result
		err     error
		status  int
		message string
	}{
		{"created", model.Result{Outcome: model.OutcomeCreated, ID: 1, Subject: "The Musical Hop"}, nil, http.StatusCreated, "Venue The Musical Hop was successfully listed!"},
		{"rejected", model.Result{Outcome: model.OutcomeRejected, Subject: "The Musical Hop"}, nil, http.StatusConflict, "Venue The Musical Hop is already listed, please try again!"},
		{"not found", model.Result{Outcome: model.OutcomeNotFound, ID: 9}, service.ErrNotFound, http.StatusNotFound, "venue not found"},
		{"invalid", model.Result{Outcome: model.OutcomeInvalid}, errors.New("invalid fields: name is required"), http.StatusBadRequest, "invalid fields: name is required"},
		{"store", model.Result{Outcome: model.OutcomeStoreUnavailable, Subject: "X"}, service.ErrStoreUnavailable, http.StatusServiceUnavailable, "An error occurred. Venue X could not be listed."},
	}
	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
			require.NoError(t, respond(c, "venue", tt.res, tt.err, http.StatusCreated))
			assert.Equal(t, tt.status, rec.Code)

			var body struct {
				Outcome string `json:"outcome"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, string(tt.res.Outcome), body.Outcome)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestDeletedShowMessageWithoutSubject(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	require.NoError(t, respond(c, "show", model.Result{Outcome: model.OutcomeDeleted, ID: 3}, nil, http.StatusOK))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Show was deleted."`)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)
	require.NoError(t, Health(c))
	assert.Equal(t, "ok", rec.Body.String())
}
