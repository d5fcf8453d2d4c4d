package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-directory/internal/model"
)

type artistRequest struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Phone              string   `json:"phone" form:"phone"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	Website            string   `json:"website" form:"website"`
	Genres             []string `json:"genres" form:"genres"`
	SeekingVenue       bool     `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

func (r artistRequest) fields() model.ArtistFields {
	return model.ArtistFields{
		Name:               r.Name,
		City:               r.City,
		State:              r.State,
		Phone:              r.Phone,
		ImageLink:          r.ImageLink,
		FacebookLink:       r.FacebookLink,
		Website:            r.Website,
		Genres:             r.Genres,
		SeekingVenue:       r.SeekingVenue,
		SeekingDescription: r.SeekingDescription,
	}
}

// ListArtists handles GET /v1/artists.
func (h *DirectoryHandler) ListArtists(c echo.Context) error {
	artists, err := h.Dir.ListArtists(c.Request().Context())
	if err != nil {
		return readError(c, "artist", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists})
}

// SearchArtists handles GET and POST /v1/artists/search.
func (h *DirectoryHandler) SearchArtists(c echo.Context) error {
	term := searchTerm(c)
	res, err := h.Dir.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return readError(c, "artist", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"search_term": term, "results": res})
}

// ShowArtist handles GET /v1/artists/:id.
func (h *DirectoryHandler) ShowArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
	}
	detail, err := h.Dir.ArtistDetail(c.Request().Context(), id)
	if err != nil {
		return readError(c, "artist", err)
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateArtist handles POST /v1/artists.
func (h *DirectoryHandler) CreateArtist(c echo.Context) error {
	var req artistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Dir.CreateArtist(c.Request().Context(), req.fields())
	return respond(c, "artist", res, err, http.StatusCreated)
}

// UpdateArtist handles PUT /v1/artists/:id.
func (h *DirectoryHandler) UpdateArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
	}
	var req artistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Dir.UpdateArtist(c.Request().Context(), id, req.fields())
	return respond(c, "artist", res, err, http.StatusOK)
}

// DeleteArtist handles DELETE /v1/artists/:id.
func (h *DirectoryHandler) DeleteArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
	}
	res, err := h.Dir.DeleteArtist(c.Request().Context(), id)
	return respond(c, "artist", res, err, http.StatusOK)
}
