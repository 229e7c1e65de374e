package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shashiranjanraj/cozyloom/pkg/apperr"
)

func TestKindOfUnwraps(t *testing.T) {
	err := fmt.Errorf("create order: %w", apperr.NotFound("blanket model"))

	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not_found, got %q", apperr.KindOf(err))
	}
	if !apperr.IsNotFound(err) {
		t.Error("IsNotFound should see through the wrap")
	}
}

func TestKindOfForeignError(t *testing.T) {
	if apperr.KindOf(errors.New("boom")) != "" {
		t.Error("non-domain errors must have no kind")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation(map[string]string{"model_name": "required"}), http.StatusUnprocessableEntity},
		{apperr.NotFound("order"), http.StatusNotFound},
		{apperr.Conflictf("model name already in use"), http.StatusConflict},
		{apperr.InvalidStatef("order is not pending"), http.StatusConflict},
		{apperr.InsufficientStock("not enough stock"), http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := apperr.HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestValidationCarriesFields(t *testing.T) {
	err := apperr.Validation(map[string]string{"quantity": "The quantity field is required."})

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatal("expected *apperr.Error")
	}
	if ae.Fields["quantity"] == "" {
		t.Error("field detail lost")
	}
}
