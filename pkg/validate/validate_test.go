package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/cozyloom/pkg/validate"
)

type adjustInput struct {
	BlanketID uint   `json:"blanket_id" validate:"required"`
	Action    string `json:"action"     validate:"required,in=add,remove"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

func TestRequired(t *testing.T) {
	errs := validate.Struct(&adjustInput{})
	for _, field := range []string{"blanket_id", "action", "quantity"} {
		if errs[field] == "" {
			t.Errorf("expected error for %s, got none", field)
		}
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(&adjustInput{BlanketID: 1, Action: "destroy", Quantity: 5})
	if errs["action"] == "" {
		t.Error("unknown action should fail the in rule")
	}

	errs = validate.Struct(&adjustInput{BlanketID: 1, Action: "remove", Quantity: 5})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestPointerFields(t *testing.T) {
	type createInput struct {
		ModelName string   `json:"model_name" validate:"required"`
		UnitCost  *float64 `json:"unit_cost"  validate:"required,gte=0"`
	}

	errs := validate.Struct(&createInput{ModelName: "Cloud Nine"})
	if errs["unit_cost"] == "" {
		t.Error("nil pointer should fail required")
	}

	zero := 0.0
	errs = validate.Struct(&createInput{ModelName: "Cloud Nine", UnitCost: &zero})
	if len(errs) != 0 {
		t.Errorf("explicit zero cost is valid, got %v", errs)
	}

	neg := -1.5
	errs = validate.Struct(&createInput{ModelName: "Cloud Nine", UnitCost: &neg})
	if errs["unit_cost"] == "" {
		t.Error("negative cost should fail gte=0")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type input struct {
		Description string `json:"description" validate:"nullable,min=5"`
	}

	if errs := validate.Struct(&input{}); len(errs) != 0 {
		t.Errorf("empty nullable field should pass, got %v", errs)
	}
	if errs := validate.Struct(&input{Description: "abc"}); errs["description"] == "" {
		t.Error("non-empty nullable field should still hit min")
	}
}

func TestGtRejectsZero(t *testing.T) {
	type input struct {
		Quantity int `json:"quantity" validate:"required,gt=0"`
	}
	if errs := validate.Struct(&input{Quantity: -3}); errs["quantity"] == "" {
		t.Error("negative quantity should fail")
	}
}
