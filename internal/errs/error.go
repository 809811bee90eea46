package errs

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	ErrTransport   = errors.New("backend unreachable")
	ErrBreakerOpen = errors.New("backend temporarily disabled")
	ErrNoEdit      = errors.New("nothing is being edited")
	ErrReadOnly    = errors.New("operation not supported for this resource")
)

// ValidationError is raised before any request leaves the client.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// FromValidator converts the first failed rule of a validator error.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email"
	case "eqfield":
		return "does not match " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// ServerError is a non-2xx response.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// LogicalError is a 2xx response whose envelope reports failure.
type LogicalError struct {
	Message string
}

func (e *LogicalError) Error() string {
	if e.Message == "" {
		return "request rejected by server"
	}
	return e.Message
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsUnauthorized(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden)
}

// Display returns text fit for the user: the server's own message when it
// sent one, the validation reason for client-side rejections, and fallback
// for everything else.
func Display(err error, fallback string) string {
	var (
		se *ServerError
		le *LogicalError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &se) && se.Message != "":
		return se.Message
	case errors.As(err, &le) && le.Message != "":
		return le.Message
	default:
		return fallback
	}
}

// Failed formats the "<action> failed: <reason>" line used by controllers.
func Failed(action string, err error) string {
	return action + " failed: " + Display(err, "please try again later")
}
