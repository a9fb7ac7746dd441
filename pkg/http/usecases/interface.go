package usecases

import (
	"context"

	"github.com/jalur-dev/jalur/pkg/geo"
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
)

type Geocoder interface {
	Resolve(ctx context.Context, query string) (geo.Coordinate, error)
}

type Renderer interface {
	Render(coords []geo.Coordinate, aLabel, bLabel, outPath string) error
}

type SpatialIndex interface {
	NearestNode(lat, lon float64) (roadnetwork.Index, error)
}
