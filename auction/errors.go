package auction

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced to the HTTP layer. Handlers map these to a login
// redirect, a not-found page, or a re-rendered form respectively.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// BidRejectedMessage is shown when a bid fails the acceptance rule.
const BidRejectedMessage = "Bid must be as large as starting bid, and must be greater than any other bids that have been placed."

// FieldError names a single offending form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries a human-readable message plus the list of fields
// that failed, so the originating form can be re-rendered with the attempted
// input preserved.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("%s (fields: %s)", e.Message, strings.Join(names, ", "))
}

// AsValidation unwraps err into a *ValidationError, or returns nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
