package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/domain"
)

const (
	headerTotalCount = "X-Total-Count"
	headerPage       = "X-Page"
	headerPageSize   = "X-Page-Size"
	headerTotalPages = "X-Total-Pages"
)

const queryInvalidCode = "QUERY_INVALID"

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var notFound *content.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: notFound.Error(),
		}
	}

	if content.IsValidation(err) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	// A document that exists but cannot be loaded. The message names the
	// file and the authoring mistake.
	if content.IsLoadError(err) {
		return http.StatusInternalServerError, errorResponse{
			Error:   "content_unavailable",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

// parsePositiveQuery reads an optional integer query parameter. Blank values
// return 0 so the repository default applies.
func parsePositiveQuery(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, goerrors.Wrap(errors.New(key+" must be a positive integer"), goerrors.CategoryValidation, "invalid query parameter").
			WithTextCode(queryInvalidCode)
	}
	return value, nil
}

func (api *API) listOptions(r *http.Request, defaultPageSize int) (content.ListOptions, error) {
	page, err := parsePositiveQuery(r, "page")
	if err != nil {
		return content.ListOptions{}, err
	}
	pageSize, err := parsePositiveQuery(r, "page_size")
	if err != nil {
		return content.ListOptions{}, err
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize > max(api.maxPageSize, defaultPageSize) {
		return content.ListOptions{}, goerrors.Wrap(fmt.Errorf("page_size must not exceed %d", api.maxPageSize), goerrors.CategoryValidation, "invalid query parameter").
			WithTextCode(queryInvalidCode)
	}
	query := r.URL.Query()
	return content.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Category: query.Get("category"),
		Search:   query.Get("search"),
		Status:   domain.Status(query.Get("status")),
	}, nil
}

func writePageHeaders[T any](w http.ResponseWriter, result content.PageResult[T]) {
	h := w.Header()
	h.Set(headerTotalCount, strconv.Itoa(result.Total))
	h.Set(headerPage, strconv.Itoa(result.Page))
	h.Set(headerPageSize, strconv.Itoa(result.PageSize))
	h.Set(headerTotalPages, strconv.Itoa(result.TotalPages))
}

func etag(checksum string) string {
	if checksum == "" {
		return ""
	}
	return `"` + checksum + `"`
}

// notModified writes the ETag and reports whether the client copy is current.
func notModified(w http.ResponseWriter, r *http.Request, tag string) bool {
	if tag == "" {
		return false
	}
	w.Header().Set("ETag", tag)
	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == tag || candidate == "*" {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}
