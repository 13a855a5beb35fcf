package apperr

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// UpstreamError marks a failure of the search index or the relational store.
// It is propagated to the request boundary as-is; the search core never
// retries.
type UpstreamError struct {
	System string
	Err    error
}

func (e *UpstreamError) Error() string {
	return e.System + " failure: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstream(system string, err error) *UpstreamError {
	return &UpstreamError{System: system, Err: err}
}
