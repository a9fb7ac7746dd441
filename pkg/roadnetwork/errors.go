package roadnetwork

import "errors"

var (
	// ErrMissingSnapshot means the backing snapshot file is absent. Fatal at
	// startup: the process cannot serve queries without a network.
	ErrMissingSnapshot = errors.New("road network snapshot file is missing")

	ErrCorruptSnapshot = errors.New("road network snapshot is corrupt")
)
