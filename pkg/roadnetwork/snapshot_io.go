package roadnetwork

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/jalur-dev/jalur/pkg/util"
	"go.uber.org/zap"
)

// Snapshot format, whitespace separated, optionally bzip2-compressed when the
// filename ends in .bz2:
//
//	n m
//	id lat lon      (n node lines)
//	from to length  (m edge lines, length "-" when the source had none)
//
// from/to reference node ids, not line positions.

// LoadSnapshot reads the persisted network snapshot and builds the reduced
// in-memory graph. Returns ErrMissingSnapshot when the file does not exist.
func LoadSnapshot(path string, log *zap.Logger) (*RoadNetwork, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.WrapErrorf(err, ErrMissingSnapshot,
				"missing %s. provide a pre-built road network snapshot", path)
		}
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, util.WrapErrorf(err, ErrCorruptSnapshot, "open bzip2 snapshot %s", path)
		}
		defer bz.Close()
		r = bz
	}

	nodes, edges, err := parseSnapshot(bufio.NewReader(r))
	if err != nil {
		return nil, util.WrapErrorf(err, ErrCorruptSnapshot, "parse snapshot %s", path)
	}

	if log != nil {
		log.Info("loaded road network snapshot",
			zap.String("path", path),
			zap.Int("nodes", len(nodes)),
			zap.Int("edges", len(edges)))
	}

	return New(nodes, edges, log)
}

func parseSnapshot(br *bufio.Reader) ([]NodeCoord, []EdgeSpec, error) {
	var n, m int
	if _, err := fmt.Fscan(br, &n, &m); err != nil {
		return nil, nil, fmt.Errorf("header: %w", err)
	}
	if n < 0 || m < 0 {
		return nil, nil, fmt.Errorf("header: negative counts %d %d", n, m)
	}

	nodes := make([]NodeCoord, n)
	for i := 0; i < n; i++ {
		var latS, lonS string
		if _, err := fmt.Fscan(br, &nodes[i].ID, &latS, &lonS); err != nil {
			return nil, nil, fmt.Errorf("node line %d: %w", i, err)
		}
		lat, err := util.StringToFloat64(latS)
		if err != nil {
			return nil, nil, fmt.Errorf("node line %d: bad latitude %q", i, latS)
		}
		lon, err := util.StringToFloat64(lonS)
		if err != nil {
			return nil, nil, fmt.Errorf("node line %d: bad longitude %q", i, lonS)
		}
		nodes[i].Lat, nodes[i].Lon = lat, lon
	}

	edges := make([]EdgeSpec, m)
	for i := 0; i < m; i++ {
		var lengthS string
		if _, err := fmt.Fscan(br, &edges[i].From, &edges[i].To, &lengthS); err != nil {
			return nil, nil, fmt.Errorf("edge line %d: %w", i, err)
		}
		// "-" or an unparsable token marks a missing length; the graph
		// builder recomputes it as the great-circle distance.
		if length, err := util.StringToFloat64(lengthS); err == nil {
			edges[i].Length = length
			edges[i].HasLength = true
		}
	}

	return nodes, edges, nil
}

// WriteSnapshot persists the network in the snapshot format, compressed when
// path ends in .bz2. Used by the offline builder, never by the serving path.
func (g *RoadNetwork) WriteSnapshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w *bufio.Writer
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			return err
		}
		defer bz.Close()
		w = bufio.NewWriter(bz)
	} else {
		w = bufio.NewWriter(f)
	}

	fmt.Fprintf(w, "%d %d\n", g.NumberOfVertices(), g.NumberOfEdges())

	for _, v := range g.vertices {
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)
		fmt.Fprintf(w, "%d %s %s\n", v.id, latF, lonF)
	}

	for u, edges := range g.outEdges {
		for _, e := range edges {
			lengthF := strconv.FormatFloat(e.length, 'f', -1, 64)
			fmt.Fprintf(w, "%d %d %s\n", g.vertices[u].id, g.vertices[e.head].id, lengthF)
		}
	}

	return w.Flush()
}
