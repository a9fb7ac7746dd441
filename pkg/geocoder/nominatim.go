package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jalur-dev/jalur/pkg/geo"
	"github.com/jalur-dev/jalur/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrEmptyQuery means the caller passed a blank place query.
	ErrEmptyQuery = errors.New("empty location")

	// ErrPlaceNotFound means no geocoding attempt resolved the query.
	ErrPlaceNotFound = errors.New("could not geocode place")
)

// common short names that the geocoder would otherwise miss or resolve to the
// wrong country
var aliases = map[string]string{
	"UPM":          "Universiti Putra Malaysia",
	"KLCC":         "Suria KLCC, Kuala Lumpur",
	"KLIA":         "Kuala Lumpur International Airport",
	"PAVILION":     "Pavilion Kuala Lumpur",
	"MID VALLEY":   "Mid Valley Megamall, Kuala Lumpur",
	"TIMES SQUARE": "Berjaya Times Square, Kuala Lumpur",
}

var coordPattern = regexp.MustCompile(`^\s*(-?\d+(\.\d+)?)\s*,\s*(-?\d+(\.\d+)?)\s*$`)

// rough bounding box for the Klang Valley, used to bias search results toward
// the served network
type viewbox struct {
	minLon, minLat, maxLon, maxLat float64
}

var klViewbox = viewbox{
	minLon: 101.3,
	minLat: 2.7,
	maxLon: 101.95,
	maxLat: 3.35,
}

type Config struct {
	BaseURL     string
	UserAgent   string
	MinInterval time.Duration
	Timeout     time.Duration
}

// Nominatim resolves free-text place names to coordinates against a nominatim
// instance. Requests are spaced by the rate limiter; the public instance
// requires at least one second between calls.
type Nominatim struct {
	client    *http.Client
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
	log       *zap.Logger
}

func NewNominatim(cfg Config, log *zap.Logger) *Nominatim {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "jalur-shortest-route"
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Nominatim{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		log:       log,
	}
}

// Resolve turns user text into a coordinate. Supports the alias table, raw
// "lat,lon" input, and a Kuala-Lumpur-biased search that progressively drops
// the viewbox and country bias before giving up.
func (n *Nominatim) Resolve(ctx context.Context, query string) (geo.Coordinate, error) {
	s := strings.TrimSpace(query)
	if s == "" {
		return geo.Coordinate{}, ErrEmptyQuery
	}

	if alias, ok := aliases[strings.ToUpper(s)]; ok {
		s = alias
	}

	if m := coordPattern.FindStringSubmatch(s); m != nil {
		lat, err1 := util.StringToFloat64(m[1])
		lon, err2 := util.StringToFloat64(m[3])
		if err1 == nil && err2 == nil {
			return geo.NewCoordinate(lat, lon), nil
		}
	}

	augmented := s
	if !strings.Contains(s, "Malaysia") && !strings.Contains(s, "Kuala Lumpur") {
		augmented = s + ", Kuala Lumpur, Malaysia"
	}

	attempts := []struct {
		query       string
		countryBias bool
		viewboxBias bool
	}{
		{augmented, true, true},
		{augmented, true, false},
		{s, false, false},
	}

	for _, attempt := range attempts {
		coord, found, err := n.search(ctx, attempt.query, attempt.countryBias, attempt.viewboxBias)
		if err != nil {
			return geo.Coordinate{}, err
		}
		if found {
			return coord, nil
		}
	}

	return geo.Coordinate{}, util.WrapErrorf(ErrPlaceNotFound, util.ErrNotFound,
		"could not geocode %q. try adding 'Kuala Lumpur' or use 'lat,lon'", query)
}

func (n *Nominatim) search(ctx context.Context, query string, countryBias, viewboxBias bool) (geo.Coordinate, bool, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return geo.Coordinate{}, false, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	params.Set("accept-language", "en")
	params.Set("addressdetails", "0")
	if countryBias {
		params.Set("countrycodes", "my")
	}
	if viewboxBias {
		params.Set("viewbox", fmt.Sprintf("%g,%g,%g,%g",
			klViewbox.minLon, klViewbox.minLat, klViewbox.maxLon, klViewbox.maxLat))
		params.Set("bounded", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return geo.Coordinate{}, false, err
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return geo.Coordinate{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, false, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geo.Coordinate{}, false, err
	}
	if len(results) == 0 {
		return geo.Coordinate{}, false, nil
	}

	lat, err := util.StringToFloat64(results[0].Lat)
	if err != nil {
		return geo.Coordinate{}, false, err
	}
	lon, err := util.StringToFloat64(results[0].Lon)
	if err != nil {
		return geo.Coordinate{}, false, err
	}

	if n.log != nil {
		n.log.Debug("geocoded place", zap.String("query", query),
			zap.Float64("lat", lat), zap.Float64("lon", lon))
	}
	return geo.NewCoordinate(lat, lon), true, nil
}
