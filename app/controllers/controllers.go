// Package controllers holds the HTTP handlers. Controllers decode and
// validate input, call a service, and render the result; all domain rules
// live in app/services.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/cozyloom/pkg/apperr"
	"github.com/shashiranjanraj/cozyloom/pkg/logger"
	"github.com/shashiranjanraj/cozyloom/pkg/response"
)

// renderError maps a service failure onto the HTTP response.
// Domain errors keep their message; anything else is a 500 with the
// detail kept server-side.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Kind == apperr.KindValidation && len(ae.Fields) > 0 {
			response.ValidationError(w, ae.Fields)
			return
		}
		response.Error(w, apperr.HTTPStatus(ae), ae.Message)
		return
	}

	logger.WithCtx(r.Context()).Error("request failed", "error", err)
	response.Error(w, http.StatusInternalServerError, "Internal Server Error")
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
