package main

import (
	"flag"

	"github.com/jalur-dev/jalur/pkg/logger"
	"github.com/jalur-dev/jalur/pkg/osmbuild"
	"go.uber.org/zap"
)

var (
	mapFile = flag.String("map", "./data/kuala_lumpur.osm.pbf", "openstreetmap pbf extract")
	outFile = flag.String("out", "./data/kl_drive.graph.bz2", "output snapshot file")
)

// builds the road-network snapshot the server loads at startup. Run once,
// offline, whenever the extract changes.
func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	builder := osmbuild.NewBuilder(log)
	network, err := builder.Build(*mapFile)
	if err != nil {
		log.Fatal("build road network", zap.Error(err))
	}

	if err := network.WriteSnapshot(*outFile); err != nil {
		log.Fatal("write snapshot", zap.Error(err))
	}
	log.Info("snapshot written", zap.String("path", *outFile),
		zap.Int("nodes", network.NumberOfVertices()),
		zap.Int("edges", network.NumberOfEdges()))
}
