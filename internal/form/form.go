// Package form binds user-facing input to validated mutation payloads.
// Validation failures never reach the backend; currency values cross the
// boundary here (major units in, minor units out) and nowhere else.
package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/salonware/salon-manager/internal/resource"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError is one inline, field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Check validates a form struct against its validate tags and returns
// field-level errors suitable for inline display.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, ve := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(ve.Field()),
			Rule:    ve.Tag(),
			Message: fmt.Sprintf("failed %q validation", ve.Tag()),
		})
	}
	return out
}

// Form is anything that can produce a validated mutation payload. RecordID
// distinguishes create (zero) from update.
type Form[T any] interface {
	Model() (T, error)
	RecordID() uint
}

// Submit runs the full pipeline: validate and convert, then invoke the
// create or update mutation. Invalid input returns FieldErrors and performs
// no backend call.
func Submit[T any](ctx context.Context, f Form[T], acc *resource.Accessor[T]) (T, error) {
	model, err := f.Model()
	if err != nil {
		var zero T
		return zero, err
	}

	if id := f.RecordID(); id != 0 {
		return acc.Update(ctx, id, model)
	}
	return acc.Create(ctx, model)
}
