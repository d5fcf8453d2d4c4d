// Package handler exposes the directory over HTTP.  Handlers bind and
// parse requests, call the directory service and turn its outcomes into
// status codes and user-facing messages; no business rule lives here.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-directory/internal/logger"
	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/service"
)

// DirectoryHandler bundles the directory service for venue, artist and
// show endpoints.
type DirectoryHandler struct {
	Dir *service.Directory
}

// NewDirectoryHandler constructs a DirectoryHandler and panics if the
// service is nil.
func NewDirectoryHandler(dir *service.Directory) *DirectoryHandler {
	if dir == nil {
		panic("nil directory passed to NewDirectoryHandler")
	}
	return &DirectoryHandler{Dir: dir}
}

// parseID reads the :id path parameter as a positive integer.
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// searchTerm accepts the term from a form body or the query string.
// It is matched as given, surrounding spaces included.
func searchTerm(c echo.Context) string {
	return c.FormValue("search_term")
}

// mutationResponse is the body of every write endpoint.
type mutationResponse struct {
	model.Result
	Message string `json:"message"`
}

// messages formats the user-facing text of each outcome; %s is the
// capitalised entity kind, %q the subject.
var messages = map[model.Outcome]string{
	model.OutcomeCreated:  "%s %s was successfully listed!",
	model.OutcomeUpdated:  "%s %s was successfully updated!",
	model.OutcomeDeleted:  "%s %s was deleted.",
	model.OutcomeRejected: "%s %s is already listed, please try again!",
}

// respond maps a mutation result to an HTTP response.  created is the
// status used for a successful write (201 for creates, 200 otherwise).
func respond(c echo.Context, kind string, res model.Result, err error, created int) error {
	title := strings.ToUpper(kind[:1]) + kind[1:]
	body := mutationResponse{Result: res}
	if f, ok := messages[res.Outcome]; ok {
		body.Message = strings.TrimSpace(strings.ReplaceAll(fmt.Sprintf(f, title, res.Subject), "  ", " "))
	}

	switch res.Outcome {
	case model.OutcomeCreated, model.OutcomeUpdated, model.OutcomeDeleted:
		return c.JSON(created, body)
	case model.OutcomeRejected:
		return c.JSON(http.StatusConflict, body)
	case model.OutcomeNotFound:
		body.Message = kind + " not found"
		return c.JSON(http.StatusNotFound, body)
	case model.OutcomeInvalid:
		body.Message = err.Error()
		return c.JSON(http.StatusBadRequest, body)
	case model.OutcomeReferentialError:
		body.Message = fmt.Sprintf("An error occurred. %s could not be listed: %v", title, err)
		return c.JSON(http.StatusUnprocessableEntity, body)
	default:
		logger.FromEcho(c).Error("mutation failed", zap.String("kind", kind), zap.Error(err))
		body.Message = strings.ReplaceAll(fmt.Sprintf("An error occurred. %s %s could not be %s.", title, res.Subject, failedVerb(c.Request().Method)), "  ", " ")
		return c.JSON(http.StatusServiceUnavailable, body)
	}
}

func failedVerb(method string) string {
	switch method {
	case http.MethodPut:
		return "updated"
	case http.MethodDelete:
		return "deleted"
	}
	return "listed"
}

// readError maps a query error to an HTTP response.
func readError(c echo.Context, kind string, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": kind + " not found"})
	}
	logger.FromEcho(c).Error("query failed", zap.String("kind", kind), zap.Error(err))
	return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
}

var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseStartTime accepts RFC 3339 or the plain form layouts; times
// without a zone are UTC.
func parseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: start_time %q is not a valid time", service.ErrValidation, s)
}
