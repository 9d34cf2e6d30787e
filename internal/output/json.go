package output

import (
	"encoding/json"
	"io"
)

// ErrorCode is the machine-readable class of a failed command.
type ErrorCode string

const (
	ErrGeneral    ErrorCode = "GENERAL_ERROR"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	ErrConflict   ErrorCode = "CONFLICT"
)

// Process exit codes.
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitNotFound   = 2
	ExitValidation = 3
	ExitConflict   = 4
)

// ExitCodeForError maps an ErrorCode to the process exit code.
func ExitCodeForError(code ErrorCode) int {
	switch code {
	case ErrNotFound:
		return ExitNotFound
	case ErrValidation:
		return ExitValidation
	case ErrConflict:
		return ExitConflict
	default:
		return ExitGeneral
	}
}

type successEnvelope struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type errorEnvelope struct {
	OK      bool      `json:"ok"`
	Error   string    `json:"error"`
	Code    ErrorCode `json:"code"`
	Details []string  `json:"details,omitempty"`
}

// newEncoder returns an encoder that leaves HTML untouched, since exported
// documents travel inside the data field.
func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

func writeJSONSuccess(w io.Writer, data any, message string) error {
	return newEncoder(w).Encode(successEnvelope{
		OK:      true,
		Data:    data,
		Message: message,
	})
}

func writeJSONError(w io.Writer, err error, code ErrorCode, details []string) error {
	return newEncoder(w).Encode(errorEnvelope{
		OK:      false,
		Error:   err.Error(),
		Code:    code,
		Details: details,
	})
}
