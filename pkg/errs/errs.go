package errs

import (
	"errors"
	"fmt"
)

// Error represents a json-encoded API error.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new error message.
func New(text string) error {
	return &Error{Message: text}
}

// Kind classifies the failures the coverage gate knows how to report.
type Kind string

const (
	// KindToolUnavailable is used when the coverage tool is not installed or not found.
	KindToolUnavailable Kind = "tool-unavailable"
	// KindRetrieval is used when the tool ran but no usable report was produced.
	KindRetrieval Kind = "retrieval"
	// KindConfig is used when required configuration is missing or malformed.
	KindConfig Kind = "config"
	// KindThreshold is the deliberate failure raised when coverage is under the minimum.
	KindThreshold Kind = "threshold"
)

// CheckError is an error carrying its Kind and an optional cause.
type CheckError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *CheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *CheckError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a kind sentinel matching this error.
func (e *CheckError) Is(target error) bool {
	t, ok := target.(*CheckError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	// ErrToolUnavailable matches any ToolUnavailable error with errors.Is.
	ErrToolUnavailable = &CheckError{Kind: KindToolUnavailable}
	// ErrRetrieval matches any RetrievalError with errors.Is.
	ErrRetrieval = &CheckError{Kind: KindRetrieval}
	// ErrConfig matches any ConfigError with errors.Is.
	ErrConfig = &CheckError{Kind: KindConfig}
	// ErrThresholdNotMet matches the threshold failure with errors.Is.
	ErrThresholdNotMet = &CheckError{Kind: KindThreshold}

	// ErrInvalidLoggerInstance is returned when logger instance is not supported.
	ErrInvalidLoggerInstance = New("Invalid logger instance")
	// ErrUnsupportedChangeSource is returned for an unknown changed-files source.
	ErrUnsupportedChangeSource = New("unsupported changed files source")
	// ErrUnsupportedPublisher is returned for an unknown publisher.
	ErrUnsupportedPublisher = New("unsupported publisher")
	// GenericErrRemark returns a generic error message for user facing errors.
	GenericErrRemark = New("Unexpected error")
)

// ToolUnavailable returns an error for a missing coverage tool.
func ToolUnavailable(tool string, err error) error {
	return &CheckError{Kind: KindToolUnavailable, Message: fmt.Sprintf("%s is not available on this machine", tool), Err: err}
}

// Retrieval returns an error for a report that could not be obtained.
func Retrieval(msg string, err error) error {
	return &CheckError{Kind: KindRetrieval, Message: msg, Err: err}
}

// Config returns an error for invalid configuration.
func Config(msg string, err error) error {
	return &CheckError{Kind: KindConfig, Message: msg, Err: err}
}

// ThresholdNotMet returns the error used to fail the check.
func ThresholdNotMet(threshold int) error {
	return &CheckError{Kind: KindThreshold, Message: fmt.Sprintf("Code coverage under minimum of %d%%", threshold)}
}

// KindOf returns the Kind of err, or an empty Kind when err is not a CheckError.
func KindOf(err error) Kind {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// ErrInvalidConf is used when the config file has invalid field values
type ErrInvalidConf struct {
	Message string
	Fields  []string
	Values  []interface{}
}

func (e *ErrInvalidConf) Error() string {
	msg := e.Message
	for i, f := range e.Fields {
		msg += fmt.Sprintf("%s: %v\n", f, e.Values[i])
	}
	return msg
}

// ErrUnknownKeys is used when the config contains keys that are not recognized
type ErrUnknownKeys struct {
	Keys []string
}

func (e *ErrUnknownKeys) Error() string {
	return fmt.Sprintf("unknown configuration keys: %v", e.Keys)
}
