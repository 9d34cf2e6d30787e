package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Writer sends command results to the terminal, either as a JSON envelope
// or as human-readable text.
type Writer struct {
	JSONMode  bool
	QuietMode bool
	Stdout    io.Writer
	Stderr    io.Writer
	Log       *slog.Logger
}

// New creates a Writer bound to os.Stdout and os.Stderr.
func New(jsonMode, quietMode bool) *Writer {
	return &Writer{
		JSONMode:  jsonMode,
		QuietMode: quietMode,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Log:       slog.Default(),
	}
}

func (w *Writer) logger() *slog.Logger {
	if w.Log == nil {
		return slog.Default()
	}
	return w.Log
}

// Success reports a result. JSON mode wraps data in an envelope on Stdout;
// human mode prints message.
func (w *Writer) Success(data any, message string) {
	if w.JSONMode {
		if err := writeJSONSuccess(w.Stdout, data, message); err != nil {
			w.logger().Error("Failed to encode result", "error", err)
		}
		return
	}
	writeHumanSuccess(w.Stdout, message)
}

// Raw writes s to Stdout as-is. It is used for documents streamed to a pipe.
func (w *Writer) Raw(s string) error {
	_, err := io.WriteString(w.Stdout, s)
	return err
}

// Error reports err and returns the exit code for code. JSON errors go to
// Stdout so the envelope stays the single structured output.
func (w *Writer) Error(err error, code ErrorCode, details ...string) int {
	w.logger().Debug("Command failed", "code", string(code), "error", err)
	if w.JSONMode {
		if encErr := writeJSONError(w.Stdout, err, code, details); encErr != nil {
			w.logger().Error("Failed to encode error", "error", encErr)
		}
	} else {
		writeHumanError(w.Stderr, err, details)
	}
	return ExitCodeForError(code)
}

// Info prints a note to Stderr. Quiet and JSON mode drop it.
func (w *Writer) Info(format string, args ...any) {
	if w.QuietMode || w.JSONMode {
		return
	}
	writeHumanInfo(w.Stderr, fmt.Sprintf(format, args...))
}

// Warn prints a warning to Stderr, even in quiet mode. JSON mode drops it
// but the warning is still logged.
func (w *Writer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.JSONMode {
		w.logger().Warn(msg)
		return
	}
	writeHumanWarning(w.Stderr, msg)
}
