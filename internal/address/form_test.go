package address

import (
	"testing"

	"github.com/verdantleaf/storefront/internal/api"
	pkgerrors "github.com/verdantleaf/storefront/pkg/errors"
)

func validForm() Form {
	return Form{
		Type:         "home",
		Name:         "Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	t.Parallel()

	if err := validForm().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	t.Parallel()

	err := Form{Type: "home"}.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected per-field details, got %T", typed.Details())
	}
	for _, field := range []string{"name", "phone", "address_line_1", "city", "state", "pincode"} {
		if _, present := details[field]; !present {
			t.Fatalf("expected %s to be reported, details=%v", field, details)
		}
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.Type = "igloo"
	if err := form.Validate(); err == nil {
		t.Fatal("expected error for unknown address type")
	}
}

func TestInputDefaultsTypeToHome(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.Type = "  "
	if got := form.Input().Type; got != "home" {
		t.Fatalf("expected default type home, got %q", got)
	}
}

func TestFromAddressRoundTrip(t *testing.T) {
	t.Parallel()

	addr := api.Address{
		AddressID:    4,
		Type:         "work",
		Name:         "Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
		IsDefault:    true,
	}

	form := FromAddress(addr)
	if err := form.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input := form.Input()
	if input.Type != "work" || !input.IsDefault || input.City != "Bengaluru" {
		t.Fatalf("unexpected input mapping: %+v", input)
	}
}
