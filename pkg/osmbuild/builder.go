package osmbuild

import (
	"context"
	"io"
	"os"

	"github.com/jalur-dev/jalur/pkg/geo"
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// highway tags a car can drive on; everything else in the extract is skipped
var drivableHighway = map[string]struct{}{
	"motorway":       {},
	"trunk":          {},
	"primary":        {},
	"secondary":      {},
	"tertiary":       {},
	"unclassified":   {},
	"residential":    {},
	"service":        {},
	"living_street":  {},
	"road":           {},
	"motorway_link":  {},
	"trunk_link":     {},
	"primary_link":   {},
	"secondary_link": {},
	"tertiary_link":  {},
}

type way struct {
	nodes   []int64
	oneWay  bool
	reverse bool
}

// Builder turns an .osm.pbf extract into the road-network snapshot the server
// loads at startup. The equivalent of the pre-cached network the serving path
// assumes: run offline, never during a query.
type Builder struct {
	log *zap.Logger

	ways      []way
	usedNodes map[int64]struct{}
	coords    map[int64]geo.Coordinate
}

func NewBuilder(log *zap.Logger) *Builder {
	return &Builder{
		log:       log,
		usedNodes: make(map[int64]struct{}),
		coords:    make(map[int64]geo.Coordinate),
	}
}

// Build parses the extract and returns the reduced road network. Two passes
// over the file: ways first to learn which nodes matter, then nodes for their
// coordinates.
func (b *Builder) Build(mapFile string) (*roadnetwork.RoadNetwork, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := b.scanWays(f); err != nil {
		return nil, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if err := b.scanNodes(f); err != nil {
		return nil, err
	}

	nodes, edges := b.assemble()
	b.log.Info("assembled road network from openstreetmap extract",
		zap.String("file", mapFile),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)))

	return roadnetwork.New(nodes, edges, b.log)
}

func (b *Builder) scanWays(f *os.File) error {
	scanner := osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()

	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		w := o.(*osm.Way)
		if len(w.Nodes) < 2 {
			continue
		}
		if _, ok := drivableHighway[w.Tags.Find("highway")]; !ok {
			continue
		}
		if w.Tags.Find("area") == "yes" {
			continue
		}

		if (countWays+1)%50000 == 0 {
			b.log.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		nodeIDs := make([]int64, len(w.Nodes))
		for i, n := range w.Nodes {
			nodeIDs[i] = int64(n.ID)
			b.usedNodes[int64(n.ID)] = struct{}{}
		}

		oneWayTag := w.Tags.Find("oneway")
		isRoundabout := w.Tags.Find("junction") == "roundabout"
		b.ways = append(b.ways, way{
			nodes:   nodeIDs,
			oneWay:  oneWayTag == "yes" || oneWayTag == "1" || oneWayTag == "true" || oneWayTag == "-1" || isRoundabout,
			reverse: oneWayTag == "-1",
		})
	}
	return scanner.Err()
}

func (b *Builder) scanNodes(f *os.File) error {
	scanner := osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()

	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		n := o.(*osm.Node)
		if _, ok := b.usedNodes[int64(n.ID)]; !ok {
			continue
		}
		b.coords[int64(n.ID)] = geo.NewCoordinate(n.Lat, n.Lon)
	}
	return scanner.Err()
}

// assemble emits one directed edge per consecutive node pair of every way,
// both directions unless the way is one-way, with the length taken from the
// segment geometry. Parallel carriageways naturally yield parallel edges.
func (b *Builder) assemble() ([]roadnetwork.NodeCoord, []roadnetwork.EdgeSpec) {
	nodes := make([]roadnetwork.NodeCoord, 0, len(b.coords))
	seen := make(map[int64]struct{}, len(b.coords))

	var edges []roadnetwork.EdgeSpec
	for _, w := range b.ways {
		for i := 0; i+1 < len(w.nodes); i++ {
			from, to := w.nodes[i], w.nodes[i+1]
			cFrom, okFrom := b.coords[from]
			cTo, okTo := b.coords[to]
			if !okFrom || !okTo {
				// node missing from the extract, drop the segment
				continue
			}

			for _, id := range []int64{from, to} {
				if _, ok := seen[id]; !ok {
					seen[id] = struct{}{}
					c := b.coords[id]
					nodes = append(nodes, roadnetwork.NodeCoord{ID: id, Lat: c.Lat, Lon: c.Lon})
				}
			}

			length := geo.CalculateHaversineDistance(cFrom.Lat, cFrom.Lon, cTo.Lat, cTo.Lon)
			if w.reverse {
				from, to = to, from
			}
			edges = append(edges, roadnetwork.EdgeSpec{From: from, To: to, Length: length, HasLength: true})
			if !w.oneWay {
				edges = append(edges, roadnetwork.EdgeSpec{From: to, To: from, Length: length, HasLength: true})
			}
		}
	}
	return nodes, edges
}
