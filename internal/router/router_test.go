package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-directory/internal/config"
	"github.com/iliyamo/venue-directory/internal/handler"
	"github.com/iliyamo/venue-directory/internal/service"
	"github.com/iliyamo/venue-directory/internal/testhelpers"
)

var testNow = time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	dir := service.NewDirectory(db, service.WithClock(func() time.Time { return testNow }))
	e := echo.New()
	RegisterRoutes(e, db)
	RegisterDirectory(e, handler.NewDirectoryHandler(dir),
		Middlewares(config.RateLimitConfig{}, config.CacheConfig{}, nil)...)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	out := map[string]any{}
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestOperationalRoutes(t *testing.T) {
	e := newTestServer(t)
	for _, p := range []string{"/healthz", "/readyz", "/metrics"} {
		rec, _ := do(t, e, http.MethodGet, p, "")
		assert.Equal(t, http.StatusOK, rec.Code, p)
	}
}

func TestVenueLifecycle(t *testing.T) {
	e := newTestServer(t)

	rec, body := do(t, e, http.MethodPost, "/v1/venues", `{"name":"The Musical Hop","city":"San Francisco","state":"CA","genres":["Jazz","Blues"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Venue The Musical Hop was successfully listed!", body["message"])
	id := int(body["id"].(float64))

	rec, body = do(t, e, http.MethodPost, "/v1/venues", `{"name":"The Musical Hop"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "rejected", body["outcome"])

	rec, _ = do(t, e, http.MethodPost, "/v1/venues", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	path := "/v1/venues/" + strconv.Itoa(id)
	rec, body = do(t, e, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"Jazz", "Blues"}, body["genres"])
	assert.Equal(t, []any{}, body["past_shows"])
	assert.EqualValues(t, 0, body["upcoming_shows_count"])

	rec, _ = do(t, e, http.MethodPut, path, `{"name":"The Musical Hop","city":"Oakland","state":"CA","genres":["Jazz"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = do(t, e, http.MethodGet, "/v1/venues", "")
	require.Equal(t, http.StatusOK, rec.Code)
	areas := body["areas"].([]any)
	require.Len(t, areas, 1)
	assert.Equal(t, "Oakland", areas[0].(map[string]any)["city"])

	rec, _ = do(t, e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, e, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, e, http.MethodPut, path, `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, e, http.MethodGet, "/v1/venues/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchByQueryAndForm(t *testing.T) {
	e := newTestServer(t)
	for _, name := range []string{"The Musical Hop", "Park Square Live Music & Coffee", "The Dueling Pianos Bar"} {
		rec, _ := do(t, e, http.MethodPost, "/v1/venues", `{"name":"`+name+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := do(t, e, http.MethodGet, "/v1/venues/search?search_term=music", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["results"].(map[string]any)["count"])

	form := url.Values{"search_term": {"Hop"}}
	req := httptest.NewRequest(http.MethodPost, "/v1/venues/search", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"count":1`)

	rec, body = do(t, e, http.MethodGet, "/v1/venues/search?search_term=Musical+Hop+", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Musical Hop ", body["search_term"])
	assert.EqualValues(t, 0, body["results"].(map[string]any)["count"])

	rec, body = do(t, e, http.MethodGet, "/v1/venues/search?search_term=+Hop", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["results"].(map[string]any)["count"])

	rec, body = do(t, e, http.MethodGet, "/v1/artists/search?search_term=zzz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["results"].(map[string]any)["count"])
}

func TestShowsAndArtists(t *testing.T) {
	e := newTestServer(t)
	_, v := do(t, e, http.MethodPost, "/v1/venues", `{"name":"Hall"}`)
	rec, a := do(t, e, http.MethodPost, "/v1/artists", `{"name":"Guns N Petals","genres":["Rock n Roll"],"seeking_venue":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Artist Guns N Petals was successfully listed!", a["message"])
	vid, aid := strconv.Itoa(int(v["id"].(float64))), strconv.Itoa(int(a["id"].(float64)))

	rec, body := do(t, e, http.MethodPost, "/v1/shows", `{"venue_id":`+vid+`,"artist_id":`+aid+`,"start_time":"2035-04-01 20:00:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	showID := strconv.Itoa(int(body["id"].(float64)))
	rec, _ = do(t, e, http.MethodPost, "/v1/shows", `{"venue_id":`+vid+`,"artist_id":`+aid+`,"start_time":"2019-05-21T21:30:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, e, http.MethodPost, "/v1/shows", `{"venue_id":999,"artist_id":`+aid+`,"start_time":"2035-04-01 20:00:00"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec, _ = do(t, e, http.MethodPost, "/v1/shows", `{"venue_id":`+vid+`,"artist_id":`+aid+`,"start_time":"soon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, e, http.MethodGet, "/v1/artists/"+aid, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["past_shows_count"])
	assert.EqualValues(t, 1, body["upcoming_shows_count"])
	assert.Equal(t, true, body["seeking_venue"])

	rec, body = do(t, e, http.MethodGet, "/v1/shows", "")
	require.Equal(t, http.StatusOK, rec.Code)
	shows := body["shows"].([]any)
	require.Len(t, shows, 2)
	assert.Equal(t, "2019-05-21T21:30:00Z", shows[0].(map[string]any)["start_time"])

	rec, body = do(t, e, http.MethodGet, "/v1/venues", "")
	require.Equal(t, http.StatusOK, rec.Code)
	venue := body["areas"].([]any)[0].(map[string]any)["venues"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 1, venue["num_upcoming_shows"])

	rec, _ = do(t, e, http.MethodDelete, "/v1/shows/"+showID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, e, http.MethodDelete, "/v1/shows/"+showID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, e, http.MethodDelete, "/v1/artists/"+aid, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, body = do(t, e, http.MethodGet, "/v1/artists", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, body["artists"])
}
