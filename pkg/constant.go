package pkg

const (
	INF_WEIGHT float64 = 1e15

	// mean earth radius in meters, same constant the snapshot lengths were
	// derived with.
	EARTH_RADIUS_M = 6371000.0
)

const (
	DEBUG = false
)
