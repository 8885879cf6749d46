package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/camden-git/carregistrybackend/database"
	"github.com/camden-git/carregistrybackend/logger"
	"github.com/camden-git/carregistrybackend/transfer"
)

// Error codes used in APIErrorDetail.Code.
const (
	CodeBadRequest = "bad_request"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeInternal   = "internal_error"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}

	_ = json.NewEncoder(w).Encode(resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeStoreError maps registry errors onto HTTP statuses. Only unexpected
// failures are logged; their detail is not sent to the client.
func writeStoreError(w http.ResponseWriter, log *logger.Logger, action string, err error) {
	switch {
	case errors.Is(err, database.ErrConstraint):
		WriteAPIError(w, http.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, database.ErrNotFound):
		WriteAPIError(w, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, database.ErrInvalidPerson),
		errors.Is(err, database.ErrInvalidCar),
		errors.Is(err, transfer.ErrMalformedRow):
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
	default:
		log.Error("request failed", "action", action, "error", err)
		WriteAPIError(w, http.StatusInternalServerError, CodeInternal, "Failed to "+action)
	}
}

func parseIDParam(w http.ResponseWriter, raw, what string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid "+what+" ID format")
		return 0, false
	}
	return id, true
}
