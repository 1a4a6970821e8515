package event

import "errors"

var (
	// ErrBadPayload marks payloads that cannot be decoded into the expected
	// shape. Redelivery would fail the same way, so these are never retried.
	ErrBadPayload = errors.New("malformed event payload")

	// ErrNoDevice and ErrMultipleDevices reject wrapped payloads that do not
	// contain exactly one device entry.
	ErrNoDevice        = errors.New("no device entry in payload")
	ErrMultipleDevices = errors.New("multiple device entries in payload")
)
