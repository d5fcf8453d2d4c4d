package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-directory/internal/model"
)

// venueRequest is the body accepted by create and update.  It binds
// from JSON or from a form post.
type venueRequest struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Address            string   `json:"address" form:"address"`
	Phone              string   `json:"phone" form:"phone"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	Website            string   `json:"website" form:"website"`
	Genres             []string `json:"genres" form:"genres"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

func (r venueRequest) fields() model.VenueFields {
	return model.VenueFields{
		Name:               r.Name,
		City:               r.City,
		State:              r.State,
		Address:            r.Address,
		Phone:              r.Phone,
		ImageLink:          r.ImageLink,
		FacebookLink:       r.FacebookLink,
		Website:            r.Website,
		Genres:             r.Genres,
		SeekingTalent:      r.SeekingTalent,
		SeekingDescription: r.SeekingDescription,
	}
}

// ListVenues handles GET /v1/venues and returns venues grouped by area.
func (h *DirectoryHandler) ListVenues(c echo.Context) error {
	areas, err := h.Dir.ListVenueAreas(c.Request().Context())
	if err != nil {
		return readError(c, "venue", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// SearchVenues handles GET and POST /v1/venues/search.
func (h *DirectoryHandler) SearchVenues(c echo.Context) error {
	term := searchTerm(c)
	res, err := h.Dir.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return readError(c, "venue", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"search_term": term, "results": res})
}

// ShowVenue handles GET /v1/venues/:id.
func (h *DirectoryHandler) ShowVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	}
	detail, err := h.Dir.VenueDetail(c.Request().Context(), id)
	if err != nil {
		return readError(c, "venue", err)
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateVenue handles POST /v1/venues.
func (h *DirectoryHandler) CreateVenue(c echo.Context) error {
	var req venueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Dir.CreateVenue(c.Request().Context(), req.fields())
	return respond(c, "venue", res, err, http.StatusCreated)
}

// UpdateVenue handles PUT /v1/venues/:id.  Every field is replaced.
func (h *DirectoryHandler) UpdateVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	}
	var req venueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Dir.UpdateVenue(c.Request().Context(), id, req.fields())
	return respond(c, "venue", res, err, http.StatusOK)
}

// DeleteVenue handles DELETE /v1/venues/:id.  The venue's shows go with it.
func (h *DirectoryHandler) DeleteVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	}
	res, err := h.Dir.DeleteVenue(c.Request().Context(), id)
	return respond(c, "venue", res, err, http.StatusOK)
}
