package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travel/internal/apperr"
	"travel/internal/enrich"
	"travel/internal/intent"
	"travel/internal/metrics"
	"travel/internal/models"
	"travel/pkg/geo"
	"travel/pkg/location"
)

type Geocoder interface {
	Geocode(ctx context.Context, query string) (*models.Coordinates, error)
}

type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) (*models.Weather, error)
}

type PlacesSource interface {
	Nearby(ctx context.Context, lat, lon float64) ([]models.Place, error)
}

// Recorder keeps a copy of finished results somewhere outside the request.
type Recorder interface {
	Record(ctx context.Context, result *models.Result) error
}

// NotFoundMessage is shown when the geocoder has no match for place.
func NotFoundMessage(place string) string {
	return fmt.Sprintf("I don't know if \"%s\" exists. Please try another location.", place)
}

// exploration is the item carried through the pipeline.
type exploration struct {
	query  string
	intent models.Intent
	coords *models.Coordinates
	result models.Result
}

// Explorer answers a travel query: it reads the intent, resolves the place,
// then fetches weather and nearby attractions as requested.
type Explorer struct {
	geocoder Geocoder
	weather  WeatherSource
	places   PlacesSource
	recorder Recorder
	logger   *zap.Logger
	pipeline *enrich.Pipeline[exploration]

	now   func() time.Time
	newID func() string
}

// NewExplorer wires the three upstream clients into a pipeline. recorder may
// be nil.
func NewExplorer(geocoder Geocoder, weather WeatherSource, places PlacesSource, recorder Recorder, logger *zap.Logger) *Explorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Explorer{
		geocoder: geocoder,
		weather:  weather,
		places:   places,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	e.pipeline = enrich.NewPipeline(logger,
		enrich.NewStage("analyze", e.analyze),
		enrich.NewStage("geocode", e.geocode),
		enrich.NewStage("details",
			enrich.When(func(x *exploration) bool { return x.intent.NeedsWeather }, e.fetchWeather),
			enrich.When(func(x *exploration) bool { return x.intent.NeedsPlaces }, e.fetchPlaces),
		),
	)
	return e
}

// Explore runs one query to completion. A place the geocoder does not know
// is reported as an apperr.KindNotFound error carrying the user-facing
// message; failing upstream calls as apperr.KindUpstream.
func (e *Explorer) Explore(ctx context.Context, query string) (*models.Result, error) {
	if strings.TrimSpace(query) == "" {
		metrics.RecordOutcome(metrics.OutcomeError)
		return nil, apperr.Validation("query must not be blank")
	}

	metrics.InFlight.Inc()
	defer metrics.InFlight.Dec()

	x := &exploration{query: query}
	if err := e.pipeline.Run(ctx, x); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			metrics.RecordOutcome(metrics.OutcomeNotFound)
		} else {
			metrics.RecordOutcome(metrics.OutcomeError)
		}
		e.logger.Info("exploration failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	metrics.RecordOutcome(metrics.OutcomeSuccess)

	result := &x.result
	if e.recorder != nil {
		// Recording outlives a client that hangs up.
		if err := e.recorder.Record(context.WithoutCancel(ctx), result); err != nil {
			e.logger.Warn("failed to record result", zap.String("id", result.ID), zap.Error(err))
		}
	}

	e.logger.Info("exploration finished",
		zap.String("id", result.ID),
		zap.String("place", result.Place),
		zap.Bool("weather", result.Weather != nil),
		zap.Int("places", len(result.Places)),
	)
	return result, nil
}

func (e *Explorer) analyze(_ context.Context, x *exploration) error {
	x.intent = intent.Analyze(x.query)
	if x.intent.Place == "" {
		return apperr.Validation("could not find a place in the query")
	}
	x.result = models.Result{
		ID:        e.newID(),
		Query:     x.query,
		Place:     x.intent.Place,
		Kind:      geo.IdentifyPlace(x.intent.Place),
		CreatedAt: e.now().UTC(),
	}
	return nil
}

func (e *Explorer) geocode(ctx context.Context, x *exploration) error {
	start := time.Now()
	coords, err := e.geocoder.Geocode(ctx, x.intent.Place)
	metrics.ObserveUpstream("nominatim", start)
	if errors.Is(err, location.ErrNotFound) {
		return apperr.Wrap(apperr.KindNotFound, NotFoundMessage(x.intent.Place), err)
	}
	if err != nil {
		return apperr.Upstream(err)
	}
	x.coords = coords
	x.result.DisplayName = coords.DisplayName
	return nil
}

func (e *Explorer) fetchWeather(ctx context.Context, x *exploration) error {
	start := time.Now()
	w, err := e.weather.Current(ctx, x.coords.Lat, x.coords.Lon)
	metrics.ObserveUpstream("open-meteo", start)
	if err != nil {
		return apperr.Upstream(err)
	}
	x.result.Weather = w
	return nil
}

func (e *Explorer) fetchPlaces(ctx context.Context, x *exploration) error {
	start := time.Now()
	places, err := e.places.Nearby(ctx, x.coords.Lat, x.coords.Lon)
	metrics.ObserveUpstream("overpass", start)
	if err != nil {
		return apperr.Upstream(err)
	}
	if places == nil {
		places = []models.Place{}
	}
	x.result.Places = places
	return nil
}
