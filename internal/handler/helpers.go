package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/shortlist-dev/shortlister/internal/apperr"
	"github.com/shortlist-dev/shortlister/internal/domain"
	"github.com/shortlist-dev/shortlister/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func decodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return apperr.New(apperr.Validation, "Body is invalid json")
	}
	if err := validate.Struct(body); err != nil {
		return apperr.New(apperr.Validation, "Required fields missing or invalid")
	}
	return nil
}

// decodeValidateSlice decodes a JSON array body and validates every
// element against its struct tags.
func decodeValidateSlice[T any](r *http.Request, body *[]T) error {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return apperr.New(apperr.Validation, "Body is invalid json")
	}
	if err := validate.Var(*body, "required,min=1,dive"); err != nil {
		return apperr.New(apperr.Validation, "Required fields missing or invalid")
	}
	return nil
}

// writeError maps status-coded errors to their HTTP status. Anything else
// is an infrastructure failure: the detail is logged, the caller gets a
// generic 500 body.
func writeError(w http.ResponseWriter, err error) {
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind != apperr.Infrastructure {
		http.Error(w, e.Error(), e.StatusCode())
		return
	}
	logger.Log.Error("internal error", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func jdIdFromRequest(r *http.Request) (domain.JdId, error) {
	raw := mux.Vars(r)["jd_id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.Validation, "Invalid ID format")
	}
	return domain.JdId(id), nil
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
