package main

import (
	"context"
	"flag"
	"time"

	"github.com/jalur-dev/jalur/pkg/geocoder"
	"github.com/jalur-dev/jalur/pkg/http"
	"github.com/jalur-dev/jalur/pkg/http/usecases"
	"github.com/jalur-dev/jalur/pkg/logger"
	"github.com/jalur-dev/jalur/pkg/renderer"
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
	"github.com/jalur-dev/jalur/pkg/spatialindex"
	"github.com/jalur-dev/jalur/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	snapshotPath = flag.String("snapshot", "./data/kl_drive.graph.bz2", "road network snapshot file")
	mapDir       = flag.String("map_dir", "./static", "directory for rendered map artifacts")
	useRateLimit = flag.Bool("rate_limit", false, "enable per-ip rate limiting")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := util.ReadConfig(); err != nil {
		log.Warn("no config file found, using defaults", zap.Error(err))
	}

	// the network and index are built once here and shared read-only by every
	// query for the life of the process
	network, err := roadnetwork.LoadSnapshot(*snapshotPath, log)
	if err != nil {
		log.Fatal("load road network snapshot", zap.Error(err))
	}
	nodeIndex := spatialindex.NewNodeIndex(network, log)

	geocodeClient := geocoder.NewNominatim(geocoder.Config{
		BaseURL:     viper.GetString("GEOCODER_BASE_URL"),
		UserAgent:   viper.GetString("GEOCODER_USER_AGENT"),
		MinInterval: viper.GetDuration("GEOCODER_MIN_INTERVAL"),
		Timeout:     10 * time.Second,
	}, log)
	mapRenderer := renderer.NewMapRenderer()

	routingService := usecases.NewRoutingService(log, network, nodeIndex,
		geocodeClient, mapRenderer, *mapDir)

	api := http.NewServer(log)
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := api.Use(ctx, log, *useRateLimit, routingService); err != nil {
		log.Fatal("start http server", zap.Error(err))
	}

	signal := http.GracefulShutdown()
	log.Info("Jalur routing server stopped", zap.String("signal", signal.String()))
	cancel()
}
