package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/zgs/booking-client/internal/errs"
)

// envelope covers every spelling the backend uses: {success, message, data},
// {status: "success", message, data} and {success: false, error}.
type envelope struct {
	Success *bool           `json:"success"`
	Status  json.RawMessage `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// statusText returns status when it is a JSON string; Spring error bodies
// carry a numeric status which is not an envelope marker.
func (e envelope) statusText() string {
	var s string
	if len(e.Status) == 0 || json.Unmarshal(e.Status, &s) != nil {
		return ""
	}
	return s
}

// wrapped reports whether the body is an envelope at all, and if so whether
// it signals success. A body without a success flag, or with a string status
// but no data, is a bare DTO.
func (e envelope) wrapped() (isEnvelope, ok bool) {
	if e.Success != nil {
		return true, *e.Success
	}
	if st := e.statusText(); st != "" && e.Data != nil {
		switch strings.ToLower(st) {
		case "success", "ok", "true":
			return true, true
		default:
			return true, false
		}
	}
	return false, false
}

func decode(status int, data []byte, out any) error {
	data = bytes.TrimSpace(data)

	var env envelope
	parsed := len(data) > 0 && data[0] == '{' && json.Unmarshal(data, &env) == nil

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		se := &errs.ServerError{Status: status}
		if parsed {
			se.Message = env.message()
		}
		return se
	}
	if len(data) == 0 || out == nil {
		if parsed {
			if isEnv, ok := env.wrapped(); isEnv && !ok {
				return &errs.LogicalError{Message: env.message()}
			}
		}
		return nil
	}

	if !parsed {
		// arrays and bare values
		return errors.Wrap(json.Unmarshal(data, out), "decode body")
	}
	isEnv, ok := env.wrapped()
	switch {
	case !isEnv:
		return errors.Wrap(json.Unmarshal(data, out), "decode body")
	case !ok:
		return &errs.LogicalError{Message: env.message()}
	case len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")):
		// payload fields sit next to the success flag, as in the login reply
		return errors.Wrap(json.Unmarshal(data, out), "decode body")
	default:
		return errors.Wrap(json.Unmarshal(env.Data, out), "decode data")
	}
}
