package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/billing/models"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, domain.ProblemResponse{
		Type:   typ,
		Title:  http.StatusText(code),
		Status: code,
		Detail: detail,
	})
}

// writeError maps a service error onto its problem response. Anything
// unclassified is logged and reported as 500.
func writeError(w http.ResponseWriter, lg *logger.Logger, action string, err error) {
	var nerr *models.NetworkError
	switch {
	case errors.Is(err, models.ErrIndexOutOfRange):
		writeProblem(w, http.StatusBadRequest, "index_out_of_range", err.Error())
	case errors.Is(err, models.ErrValidation):
		writeProblem(w, http.StatusBadRequest, validationType(err), err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, models.ErrConflict):
		writeProblem(w, http.StatusConflict, "conflict", err.Error())
	case errors.As(err, &nerr):
		typ := "backend_unavailable"
		if nerr.Status != 0 {
			typ = "backend_error"
		}
		writeProblem(w, http.StatusBadGateway, typ, err.Error())
	default:
		lg.Error(action, err, nil)
		writeProblem(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

func validationType(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, models.ErrMissingField):
		return "missing_field"
	case errors.Is(err, models.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, models.ErrKindMismatch):
		return "kind_mismatch"
	case errors.Is(err, models.ErrPaymentMethod):
		return "invalid_payment_method"
	case errors.Is(err, models.ErrNoSelection):
		return "no_selection"
	case errors.Is(err, models.ErrRejected):
		return "rejected"
	}
	return "validation_error"
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// pathInt reads an integer path wildcard, writing a 400 on failure.
func pathInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(key))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_path", key+" must be an integer")
		return 0, false
	}
	return n, true
}
