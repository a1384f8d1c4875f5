package persist

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

var validate = validator.New()

// ValidateStruct checks a decoded snapshot entry against its validate tags.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}

// Warnings accumulates the repairs applied while sanitizing a snapshot. A
// non-empty list never blocks hydration; it is logged once by the controller.
type Warnings []error

func (w *Warnings) Add(err error) {
	if err == nil {
		return
	}
	*w = append(*w, err)
}

func (w *Warnings) Addf(format string, args ...any) {
	*w = append(*w, fmt.Errorf(format, args...))
}

// Err collapses the list into a single error, nil when empty.
func (w Warnings) Err() error {
	return multierr.Combine(w...)
}
