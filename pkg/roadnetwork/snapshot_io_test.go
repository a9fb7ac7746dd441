package roadnetwork

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jalur-dev/jalur/pkg/util"
)

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.graph"), nil)
	if err == nil {
		t.Fatal("expected error for missing snapshot")
	}
	var domainErr *util.Error
	if !errors.As(err, &domainErr) || !errors.Is(domainErr.Code(), ErrMissingSnapshot) {
		t.Errorf("want ErrMissingSnapshot code, got %v", err)
	}
}

func TestLoadSnapshotParsesMissingLengthMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.graph")
	content := "2 2\n" +
		"1 3.1390 101.6869\n" +
		"2 3.1400 101.6880\n" +
		"1 2 -\n" +
		"2 1 42.5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadSnapshot(path, nil)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if g.NumberOfVertices() != 2 || g.NumberOfEdges() != 2 {
		t.Fatalf("got %d nodes %d edges", g.NumberOfVertices(), g.NumberOfEdges())
	}

	u, _ := g.GetVertexIndex(1)
	v, _ := g.GetVertexIndex(2)

	// "-" edge got a recomputed great-circle length
	backfilled, _ := g.MinEdgeLength(u, v)
	if backfilled < 100 || backfilled > 300 {
		t.Errorf("backfilled length = %f, want a few hundred meters", backfilled)
	}
	if explicit, _ := g.MinEdgeLength(v, u); explicit != 42.5 {
		t.Errorf("explicit length = %f, want 42.5", explicit)
	}
}

func TestLoadSnapshotCorruptHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.graph")
	if err := os.WriteFile(path, []byte("not a header\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSnapshot(path, nil)
	if err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
	var domainErr *util.Error
	if !errors.As(err, &domainErr) || !errors.Is(domainErr.Code(), ErrCorruptSnapshot) {
		t.Errorf("want ErrCorruptSnapshot code, got %v", err)
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	for _, name := range []string{"roundtrip.graph", "roundtrip.graph.bz2"} {
		t.Run(name, func(t *testing.T) {
			g := mustNetwork(t, testNodes, []EdgeSpec{
				{From: 1, To: 2, Length: 50, HasLength: true},
				{From: 1, To: 2, Length: 30, HasLength: true},
				{From: 2, To: 3, Length: 20, HasLength: true},
				{From: 3, To: 4, Length: 15, HasLength: true},
			})

			path := filepath.Join(t.TempDir(), name)
			if err := g.WriteSnapshot(path); err != nil {
				t.Fatalf("WriteSnapshot: %v", err)
			}

			loaded, err := LoadSnapshot(path, nil)
			if err != nil {
				t.Fatalf("LoadSnapshot: %v", err)
			}

			if loaded.NumberOfVertices() != g.NumberOfVertices() {
				t.Errorf("vertices %d, want %d", loaded.NumberOfVertices(), g.NumberOfVertices())
			}
			if loaded.NumberOfEdges() != g.NumberOfEdges() {
				t.Errorf("edges %d, want %d", loaded.NumberOfEdges(), g.NumberOfEdges())
			}

			for _, id := range []int64{1, 2, 3, 4} {
				gi, ok1 := g.GetVertexIndex(id)
				li, ok2 := loaded.GetVertexIndex(id)
				if !ok1 || !ok2 {
					t.Fatalf("node %d lost in roundtrip", id)
				}
				gLat, gLon := g.GetVertexCoordinates(gi)
				lLat, lLon := loaded.GetVertexCoordinates(li)
				if math.Abs(gLat-lLat) > 1e-12 || math.Abs(gLon-lLon) > 1e-12 {
					t.Errorf("node %d coords drifted: (%f,%f) vs (%f,%f)", id, gLat, gLon, lLat, lLon)
				}
			}

			u, _ := loaded.GetVertexIndex(1)
			v, _ := loaded.GetVertexIndex(2)
			if got, _ := loaded.MinEdgeLength(u, v); got != 30 {
				t.Errorf("parallel min after roundtrip = %f, want 30", got)
			}
		})
	}
}
