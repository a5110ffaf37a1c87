package errors

import (
	"errors"
	"log/slog"
	"runtime"
	"strconv"
)

// AnnotatedError includes more context than a plain error that is useful for troubleshooting.
type AnnotatedError struct {
	// msg is the error message describing the failed operation.
	msg string
	// cause is the wrapped error, nil for errors created with New.
	cause error
	// pc is the program counter for the location of the error provided by runtime.Callers.
	pc uintptr
	// attrs are slog attributes that are added to the log event to provide more context for the error.
	attrs []slog.Attr
}

func annotate(msg string, cause error, attrs []slog.Attr) *AnnotatedError {
	var pcs [1]uintptr
	// Skip runtime.Callers, annotate and the exported constructor.
	runtime.Callers(3, pcs[:]) //nolint:mnd // see above
	return &AnnotatedError{
		msg:   msg,
		cause: cause,
		pc:    pcs[0],
		attrs: attrs,
	}
}

// New creates a new AnnotatedError with the given message and attributes.
func New(msg string, attrs ...slog.Attr) error {
	return annotate(msg, nil, attrs)
}

// NewSentinel creates a plain error without other context that can be used as sentinel error that can be detected
// with errors.Is.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap adds context to err, e.g., the operation that failed and the identifiers involved.
//
// Wrapping a nil error returns nil so that Wrap can be used on the result of a call directly.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return annotate(msg, err, attrs)
}

// Error implements error interface.
func (err *AnnotatedError) Error() string {
	if err.cause == nil {
		return err.msg
	}
	return err.msg + ": " + err.cause.Error()
}

// Unwrap returns the wrapped error so that errors.Is and errors.As see through the annotation.
func (err *AnnotatedError) Unwrap() error {
	return err.cause
}

// Source returns the file:line where the error was created.
func (err *AnnotatedError) Source() string {
	frames := runtime.CallersFrames([]uintptr{err.pc})
	frame, _ := frames.Next()
	return frame.File + ":" + strconv.Itoa(frame.Line)
}

// LogValue formats the error for useful logging.
//
// Attributes of annotated errors further down the chain are included so that one log line tells the whole story.
func (err *AnnotatedError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(err.attrs)+2) //nolint:mnd // source and cause
	attrs = append(attrs, slog.String("source", err.Source()))
	attrs = append(attrs, err.attrs...)

	var inner *AnnotatedError
	if err.cause != nil && errors.As(err.cause, &inner) {
		attrs = append(attrs, slog.Any("cause", inner.LogValue()))
	}

	return slog.GroupValue(attrs...)
}

// SlogError returns a log attribute for err that includes the annotations when there are any.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	args := []any{slog.String("message", err.Error())}
	var annotated *AnnotatedError
	if errors.As(err, &annotated) {
		args = append(args, slog.Any("context", annotated.LogValue()))
	}
	return slog.Group("error", args...)
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
