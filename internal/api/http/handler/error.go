package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fedblog/blog-server/internal/model"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func handleError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.HTTPStatus, errorResponse{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		})
		return
	}

	if errors.Is(err, model.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code:    model.CodeUserNotFound,
			Message: "record not found",
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Code:    "INTERNAL",
		Message: "internal server error",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON reads the request body into dst and reports malformed payloads
// as invalid-argument errors.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewErrInvalidArgument("body")
	}
	return nil
}
