package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/phone-temp-checker/internal/checker"
	"github.com/couchcryptid/phone-temp-checker/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const maxBodyBytes = 1 << 12

// Service is the checker behaviour the API exposes.
type Service interface {
	Check(ctx context.Context, input string) (checker.Outcome, error)
	Detect(ctx context.Context) (checker.Outcome, error)
	Current() (domain.Status, bool)
}

type handlers struct {
	svc    Service
	logger *slog.Logger
}

// checkRequest carries the raw text of the input field. A JSON number is
// accepted as well as a string.
type checkRequest struct {
	Temperature json.RawMessage `json:"temperature"`
}

func (r checkRequest) input() string {
	if len(r.Temperature) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Temperature, &s); err == nil {
		return s
	}
	return string(r.Temperature)
}

func (h *handlers) check(w http.ResponseWriter, r *http.Request) {
	// An unreadable body counts as empty input and is rejected by the checker.
	var req checkRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("malformed check request", "error", err)
		req = checkRequest{}
	}

	out, err := h.svc.Check(r.Context(), req.input())
	sharedobs.WriteJSON(w, statusCode(err), out)
}

func (h *handlers) detect(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Detect(r.Context())
	if err != nil && !isUserError(err) {
		h.logger.Error("detect request failed", "error", err)
	}
	sharedobs.WriteJSON(w, statusCode(err), out)
}

func (h *handlers) status(w http.ResponseWriter, _ *http.Request) {
	status, ok := h.svc.Current()
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "no temperature checked yet"})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, checker.Outcome{Status: &status})
}

// statusCode maps checker errors onto HTTP status codes.
func statusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrInvalidTemperature):
		return http.StatusUnprocessableEntity
	case errors.Is(err, checker.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDetectionUnsupported):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrDetectionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isUserError(err error) bool {
	return errors.Is(err, domain.ErrInvalidTemperature) ||
		errors.Is(err, checker.ErrBusy) ||
		errors.Is(err, domain.ErrDetectionUnsupported) ||
		errors.Is(err, domain.ErrDetectionFailed)
}
