package capture

import "errors"

// Setup errors of the capture pipeline. All of them are detected before any
// frame is read; callers match them with errors.Is and the underlying cause
// stays reachable through the wrap chain.
var (
	// ErrDeviceLookup means enumerating capture devices failed.
	ErrDeviceLookup = errors.New("failed to list interfaces")

	// ErrNoInterface means no device matched the requested name exactly.
	ErrNoInterface = errors.New("no interface found")

	// ErrCreateHandle means constructing the inactive capture handle failed.
	ErrCreateHandle = errors.New("failed to create capture handle")

	// ErrOpenHandle means configuring or activating the capture handle failed.
	ErrOpenHandle = errors.New("failed to open capture handle")
)
