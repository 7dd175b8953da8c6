package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/repository"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Code      string            `json:"code"`
	Path      string            `json:"path"`
	Details   map[string]string `json:"details,omitempty"`
}

const internalErrorMessage = "Une erreur interne est survenue"

// statusFor maps an error classification to its HTTP status.
func statusFor(code domain.Code) int {
	switch code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeAlreadyExists:
		return http.StatusConflict
	case domain.CodeDeleteForbidden, domain.CodeOperationForbidden:
		return http.StatusForbidden
	case domain.CodeInvalidData, domain.CodeConstraint:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("failed to encode response", "error", err)
	}
}

// writeError renders err. Unclassified errors become a 500 whose message
// hides the cause, which is logged instead.
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.Internal(err, "unclassified error")
	}

	status := statusFor(de.Code)
	resp := ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   de.Message,
		Code:      string(de.Code),
		Path:      r.URL.Path,
		Details:   de.Details,
	}
	if status == http.StatusInternalServerError {
		resp.Message = internalErrorMessage
		resp.Code = string(domain.CodeInternal)
		resp.Details = nil
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, log, status, resp)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.InvalidData("Corps de requête JSON invalide: %v", err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.InvalidData("Identifiant invalide: %q", raw)
	}
	return id, nil
}

// queryInt reads an optional integer parameter. ok is false when absent.
func queryInt(r *http.Request, name string) (n int, ok bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, domain.InvalidData("Paramètre %s invalide: %q", name, raw)
	}
	return n, true, nil
}

func queryIntDefault(r *http.Request, name string, def int) (int, error) {
	n, ok, err := queryInt(r, name)
	if err != nil || !ok {
		return def, err
	}
	return n, nil
}

func requiredQueryInt(r *http.Request, name string) (int, error) {
	n, ok, err := queryInt(r, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.InvalidData("Paramètre %s obligatoire", name)
	}
	return n, nil
}

func requiredQuery(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", domain.InvalidData("Paramètre %s obligatoire", name)
	}
	return v, nil
}

// pageRequest reads page (default 0), size (default 20) and sort. An empty
// sort lets the service apply its default key.
func pageRequest(r *http.Request) (repository.PageRequest, error) {
	page, err := queryIntDefault(r, "page", 0)
	if err != nil {
		return repository.PageRequest{}, err
	}
	size, err := queryIntDefault(r, "size", repository.DefaultPageSize)
	if err != nil {
		return repository.PageRequest{}, err
	}
	return repository.PageRequest{Page: page, Size: size, Sort: strings.TrimSpace(r.URL.Query().Get("sort"))}, nil
}

func populationRange(r *http.Request) (min, max int, err error) {
	if min, err = requiredQueryInt(r, "min"); err != nil {
		return 0, 0, err
	}
	if max, err = requiredQueryInt(r, "max"); err != nil {
		return 0, 0, err
	}
	return min, max, nil
}
