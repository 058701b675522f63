package validate_test

import (
	"math"
	"testing"

	"github.com/shashiranjanraj/stockroom/pkg/validate"
)

type productInput struct {
	Name  string  `json:"name"  validate:"required,max=20"`
	Price float64 `json:"price" validate:"gte=0"`
	Stock int     `json:"stock" validate:"gte=0,lte=1000"`
}

type productPatch struct {
	Name  *string  `json:"name"  validate:"nullable,required"`
	Price *float64 `json:"price" validate:"nullable,gte=0"`
	Stock *int     `json:"stock" validate:"nullable,gte=0"`
}

func ptr[T any](v T) *T { return &v }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Laptop", Price: 1000, Stock: 20})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestZeroPriceAndStockAllowed(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Freebie"})
	if validate.HasErrors(errs) {
		t.Errorf("expected zero price/stock to pass, got: %v", errs)
	}
}

func TestRequiredTrimsWhitespace(t *testing.T) {
	errs := validate.Struct(productInput{Name: "   "})
	if _, ok := errs["name"]; !ok {
		t.Error("expected blank name to be rejected")
	}
}

func TestNegativeNumbers(t *testing.T) {
	errs := validate.Struct(&productInput{Name: "Printer", Price: -1, Stock: -5})
	if _, ok := errs["price"]; !ok {
		t.Error("expected price error")
	}
	if _, ok := errs["stock"]; !ok {
		t.Error("expected stock error")
	}
}

func TestMaxRules(t *testing.T) {
	errs := validate.Struct(productInput{Name: "a very long product name indeed", Stock: 1001})
	if _, ok := errs["name"]; !ok {
		t.Error("expected name length error")
	}
	if got := errs["stock"]; got != "The stock must be less than or equal to 1000." {
		t.Errorf("unexpected stock message: %q", got)
	}
}

func TestNullablePointersSkipped(t *testing.T) {
	errs := validate.Struct(productPatch{})
	if validate.HasErrors(errs) {
		t.Errorf("expected empty patch to pass field rules, got: %v", errs)
	}
}

func TestPointerValuesValidated(t *testing.T) {
	errs := validate.Struct(productPatch{Name: ptr(""), Price: ptr(-0.5), Stock: ptr(3)})
	if _, ok := errs["name"]; !ok {
		t.Error("expected empty name to be rejected")
	}
	if _, ok := errs["price"]; !ok {
		t.Error("expected negative price to be rejected")
	}
	if _, ok := errs["stock"]; ok {
		t.Error("expected valid stock to pass")
	}
}

func TestRequiredNilPointer(t *testing.T) {
	type in struct {
		Qty *int `json:"qty" validate:"required"`
	}
	if errs := validate.Struct(in{}); !validate.HasErrors(errs) {
		t.Error("expected nil required pointer to fail")
	}
}

func TestGreaterThan(t *testing.T) {
	type in struct {
		Qty int `json:"quantity" validate:"gt=0"`
	}
	if errs := validate.Struct(in{Qty: 0}); errs["quantity"] != "The quantity must be greater than 0." {
		t.Errorf("unexpected errors: %v", errs)
	}
	if errs := validate.Struct(in{Qty: 1}); validate.HasErrors(errs) {
		t.Errorf("expected 1 to pass, got: %v", errs)
	}
}

func TestNonStruct(t *testing.T) {
	if errs := validate.Struct(42); validate.HasErrors(errs) {
		t.Error("non-struct input should yield no errors")
	}
}

func TestNaNFailsComparisons(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Ghost", Price: math.NaN()})
	if got := errs["price"]; got != "The price must be greater than or equal to 0." {
		t.Errorf("unexpected price message: %q", got)
	}
}

func TestFinite(t *testing.T) {
	type in struct {
		Price *float64 `json:"price" validate:"nullable,finite,gte=0"`
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if errs := validate.Struct(in{Price: ptr(f)}); errs["price"] != "The price must be a finite number." {
			t.Errorf("%v: unexpected errors: %v", f, errs)
		}
	}
	if errs := validate.Struct(in{Price: ptr(19.99)}); validate.HasErrors(errs) {
		t.Errorf("expected finite price to pass, got: %v", errs)
	}
}
