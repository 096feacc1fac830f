package domain

import (
	"errors"
	"fmt"
)

// ErrNameRequired is matched by every ValidationError raised for a missing
// layout name.
var ErrNameRequired = errors.New("layout name is required")

// ErrInvalidText is matched by validation errors for text that is not valid
// UTF-8. Stores would otherwise replace the bad bytes with U+FFFD.
var ErrInvalidText = errors.New("layout text is not valid UTF-8")

// ValidationError is a user-correctable input problem detected before any I/O.
type ValidationError struct {
	Field   string
	Message string
	// Err is the sentinel the error matches with errors.Is.
	Err error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return e.Err != nil && target == e.Err
}

// NameRequired builds the validation error for an empty name during action
// ("saving", "publishing").
func NameRequired(action string) *ValidationError {
	return &ValidationError{
		Field:   DocKeyName,
		Message: fmt.Sprintf("Please enter a layout name before %s.", action),
		Err:     ErrNameRequired,
	}
}

// InvalidText builds the validation error for a field holding invalid UTF-8.
func InvalidText(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("The %s contains characters that cannot be saved.", field),
		Err:     ErrInvalidText,
	}
}

// StoreError wraps a document-store failure.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ErrNoSurface is returned by surfaces that cannot open anything.
var ErrNoSurface = errors.New("no presentation surface available")

// SurfaceUnavailableError reports that the publish target could not be created.
type SurfaceUnavailableError struct {
	Err error
}

func (e *SurfaceUnavailableError) Error() string {
	return fmt.Sprintf("open publish surface: %v", e.Err)
}

func (e *SurfaceUnavailableError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsStore(err error) bool {
	var s *StoreError
	return errors.As(err, &s)
}

func IsSurfaceUnavailable(err error) bool {
	var s *SurfaceUnavailableError
	return errors.As(err, &s)
}

// UserMessage returns the notice shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	var s *StoreError
	if errors.As(err, &s) {
		switch s.Op {
		case "insert":
			return "Could not save the layout. Please try again."
		default:
			return "Could not load a layout. Please try again."
		}
	}
	if IsSurfaceUnavailable(err) {
		return "Unable to open a new tab. Please check your browser settings."
	}
	return err.Error()
}
