package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-directory/internal/model"
)

// showRequest carries start_time as text so both RFC 3339 and the
// "2006-01-02 15:04:05" form layout are accepted.
type showRequest struct {
	VenueID   int64  `json:"venue_id" form:"venue_id"`
	ArtistID  int64  `json:"artist_id" form:"artist_id"`
	StartTime string `json:"start_time" form:"start_time"`
}

// ListShows handles GET /v1/shows.
func (h *DirectoryHandler) ListShows(c echo.Context) error {
	shows, err := h.Dir.ListShows(c.Request().Context())
	if err != nil {
		return readError(c, "show", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// CreateShow handles POST /v1/shows.
func (h *DirectoryHandler) CreateShow(c echo.Context) error {
	var req showRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, err := parseStartTime(req.StartTime)
	if err != nil {
		return respond(c, "show", model.Result{Outcome: model.OutcomeInvalid}, err, http.StatusCreated)
	}
	res, err := h.Dir.CreateShow(c.Request().Context(), model.ShowFields{
		VenueID:   req.VenueID,
		ArtistID:  req.ArtistID,
		StartTime: start,
	})
	return respond(c, "show", res, err, http.StatusCreated)
}

// DeleteShow handles DELETE /v1/shows/:id.
func (h *DirectoryHandler) DeleteShow(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}
	res, err := h.Dir.DeleteShow(c.Request().Context(), id)
	return respond(c, "show", res, err, http.StatusOK)
}
