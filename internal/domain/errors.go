package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoInput         = errors.New("no binary file, text content, or url provided")
	ErrBinaryMissing   = errors.New("binary property not found on item")
	ErrUnknownEncoding = errors.New("unknown binary encoding")
	ErrNoURLs          = errors.New("no url found in input field")
	ErrEmptyText       = errors.New("invalid or missing text content")
	ErrUnknownVariant  = errors.New("unknown dispatch variant")
	ErrUnknownPolicy   = errors.New("unknown error policy")
	ErrAuditDisabled   = errors.New("run audit is not enabled")
)

// BatchIndex is the item index used for errors that concern the whole batch
// rather than a single item.
const BatchIndex = -1

// DispatchError reports a per-item failure. It wraps the underlying cause so
// callers can match sentinel and typed errors with errors.Is and errors.As.
type DispatchError struct {
	ItemIndex int       `json:"index"`
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	Err       error     `json:"-"`
}

func (e *DispatchError) Error() string {
	if e.ItemIndex == BatchIndex {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("item %d: %s error: %s", e.ItemIndex, e.Kind, e.Message)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// NewDispatchError builds a DispatchError whose message is the cause's text.
func NewDispatchError(index int, kind ErrorKind, err error) *DispatchError {
	return &DispatchError{ItemIndex: index, Kind: kind, Message: err.Error(), Err: err}
}

// AsDispatchError extracts a DispatchError from err's chain.
func AsDispatchError(err error) (*DispatchError, bool) {
	var de *DispatchError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
