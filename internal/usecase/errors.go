package usecase

import "fmt"

type ErrorCode string

const (
	ErrorInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrorUnknownModel  ErrorCode = "UNKNOWN_MODEL"
	ErrorConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrorUpstream      ErrorCode = "UPSTREAM_ERROR"
	ErrorInference     ErrorCode = "INFERENCE_ERROR"
)

const (
	msgEmptySentence      = "Please enter a sentence!"
	msgMissingCredential  = "Missing HF token. Add HF_TOKEN=hf_xxx to your .env and restart."
	msgInferencePrefix    = "Inference error: "
	msgSentenceTooLongFmt = "Sentence is too long (max %d characters)."
)

// Error is a classified correction failure. StatusCode and Body are set only
// for ErrorUpstream.
type Error struct {
	Code       ErrorCode
	Reason     string
	StatusCode int
	Body       string
	Err        error

	message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Display is the message shown to the person who typed the sentence.
func (e *Error) Display() string {
	if e == nil {
		return ""
	}
	if e.message != "" {
		return e.message
	}
	switch e.Code {
	case ErrorConfiguration:
		return msgMissingCredential
	case ErrorUpstream, ErrorInference:
		if e.Err != nil {
			return msgInferencePrefix + e.Err.Error()
		}
		return msgInferencePrefix + e.Reason
	default:
		return e.Reason
	}
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

func (e *Error) withMessage(msg string) *Error {
	e.message = msg
	return e
}
