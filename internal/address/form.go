// Package address validates address forms before any network call. Invalid
// forms never reach the backend.
package address

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/verdantleaf/storefront/internal/api"
	pkgerrors "github.com/verdantleaf/storefront/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Form is the address dialog payload. Name, phone, address line 1, city,
// state and pincode are mandatory; everything else is optional.
type Form struct {
	Type         string `json:"type" validate:"omitempty,oneof=home work office other"`
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"address_line_1" validate:"required"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required"`
	Landmark     string `json:"landmark"`
	IsDefault    bool   `json:"is_default"`
}

// Validate checks the mandatory fields and reports every violation at once.
func (f Form) Validate() error {
	if err := validate.Struct(f); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// Input maps the form into the API payload, defaulting the type to home the
// way the backend expects.
func (f Form) Input() api.AddressInput {
	addressType := f.Type
	if strings.TrimSpace(addressType) == "" {
		addressType = "home"
	}
	return api.AddressInput{
		Type:         addressType,
		Name:         f.Name,
		Phone:        f.Phone,
		AddressLine1: f.AddressLine1,
		AddressLine2: f.AddressLine2,
		City:         f.City,
		State:        f.State,
		Pincode:      f.Pincode,
		Landmark:     f.Landmark,
		IsDefault:    f.IsDefault,
	}
}

// FromAddress pre-fills the form for the edit dialog.
func FromAddress(addr api.Address) Form {
	return Form{
		Type:         addr.Type,
		Name:         addr.Name,
		Phone:        addr.Phone,
		AddressLine1: addr.AddressLine1,
		AddressLine2: addr.AddressLine2,
		City:         addr.City,
		State:        addr.State,
		Pincode:      addr.Pincode,
		Landmark:     addr.Landmark,
		IsDefault:    addr.IsDefault,
	}
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "please fill in all required fields").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}
