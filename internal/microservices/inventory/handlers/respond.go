package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pos-system/internal/common/logger"
	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/repository"
	"pos-system/internal/microservices/inventory/service"
)

func respond(w http.ResponseWriter, lg *logger.Logger, action string, code int, v any, err error) {
	if err != nil {
		fail(w, lg, action, err)
		return
	}
	writeJSON(w, code, v)
}

func fail(w http.ResponseWriter, lg *logger.Logger, action string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		writeProblem(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, repository.ErrInsufficientStock):
		writeProblem(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, repository.ErrConflict):
		writeProblem(w, http.StatusConflict, "conflict", err.Error())
	default:
		lg.Error(action, err, nil)
		writeProblem(w, http.StatusInternalServerError, "db_error", "internal error")
	}
}

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

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "invalid_path", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
