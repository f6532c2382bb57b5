package leads

import "errors"

var (
	// ErrEmptyResponse means the provider returned no usable text
	ErrEmptyResponse = errors.New("no data received from search provider")

	// ErrMalformedResponse means the reply was not a JSON array of objects
	ErrMalformedResponse = errors.New("malformed business data")

	// ErrSerialization means an export could not be produced
	ErrSerialization = errors.New("failed to serialize businesses")
)

// MalformedResponseError carries the raw provider reply for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return ErrMalformedResponse.Error()
	}
	return ErrMalformedResponse.Error() + ": " + e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
