package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/free-draw/internal/buffer"
	"github.com/drakos74/free-draw/internal/math/pca"
	"github.com/drakos74/free-draw/internal/metrics"
	"github.com/drakos74/free-draw/internal/storage"
)

// ErrBusy signals that a decomposition is already in flight.
// The pipeline is not interruptible, callers have to wait it out.
var ErrBusy = errors.New("fit already in flight")

// Bounds are the per-axis score ranges of a run, for the rendering layer.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// Result is one completed decomposition run.
type Result struct {
	ID      string    `json:"id"`
	Dim     int       `json:"dim"`
	Samples int       `json:"samples"`
	Basis   pca.Basis `json:"basis"`
	Bounds  Bounds    `json:"bounds"`
}

// Engine owns the sample window and runs the decomposition on demand.
// It keeps only the latest result around, for out-of-sample projections.
// Staleness of older results is the consumers problem.
type Engine struct {
	name   string
	window *buffer.Ring
	store  storage.Persistence
	busy   uint32
	mutex  sync.RWMutex
	latest Result
	runs   int64
}

// New creates an engine with the given window capacity.
func New(name string, window int, shard storage.Shard) *Engine {
	persistence, err := shard(name)
	if err != nil {
		log.Error().Err(err).Str("engine", name).Msg("could not create run storage")
		persistence = storage.NewVoidStorage()
	}
	return &Engine{
		name:   name,
		window: buffer.NewRing(window),
		store:  persistence,
	}
}

// Add appends a feature vector to the window and returns the new size.
// Vectors with non-finite entries never reach the numeric core.
// A vector of a new dimension starts a fresh collection epoch.
func (e *Engine) Add(source string, v []float64) (int, error) {
	if len(v) == 0 {
		metrics.Observer.Sample(source, "rejected")
		return e.Size(), fmt.Errorf("empty feature vector")
	}
	for d, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			metrics.Observer.Sample(source, "rejected")
			return e.Size(), fmt.Errorf("non-finite entry at coordinate %d: %f", d, f)
		}
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if dim := e.window.Dim(); dim != 0 && dim != len(v) {
		log.Warn().
			Str("engine", e.name).
			Int("dim", dim).
			Int("new-dim", len(v)).
			Msg("feature dimension changed, starting new collection epoch")
		e.latest = Result{}
	}

	size := e.window.Push(v)
	metrics.Observer.Sample(source, "accepted")
	return size, nil
}

// Compute runs the decomposition on the current window.
// Re-entrant invocations are rejected with ErrBusy, the run itself
// cannot be cancelled once started.
func (e *Engine) Compute() (Result, error) {
	if !atomic.CompareAndSwapUint32(&e.busy, 0, 1) {
		metrics.Observer.Fit("busy")
		return Result{}, ErrBusy
	}
	defer atomic.StoreUint32(&e.busy, 0)

	e.mutex.RLock()
	samples := e.window.Get()
	dim := e.window.Dim()
	e.mutex.RUnlock()

	start := time.Now()
	basis, err := pca.Fit(samples)
	metrics.Observer.FitDuration(time.Since(start).Seconds())
	if err != nil {
		metrics.Observer.Fit("error")
		return Result{}, fmt.Errorf("could not fit window: %w", err)
	}

	if basis.Empty() {
		// not enough data is a well defined state, not a failure
		metrics.Observer.Fit("empty")
		return Result{Dim: dim, Basis: basis}, nil
	}

	result := Result{
		ID:      uuid.New().String(),
		Dim:     dim,
		Samples: len(basis.Points),
		Basis:   basis,
		Bounds:  bounds(basis.Points),
	}

	e.mutex.Lock()
	e.latest = result
	run := e.runs
	e.runs++
	e.mutex.Unlock()

	key := storage.Key{Set: e.name, Hash: run, Label: "basis"}
	if err := e.store.Store(key, result); err != nil {
		log.Warn().Err(err).Str("engine", e.name).Str("id", result.ID).Msg("could not store run")
	}

	metrics.Observer.Fit("ok")
	log.Info().
		Str("engine", e.name).
		Str("id", result.ID).
		Int("samples", result.Samples).
		Int("dim", result.Dim).
		Float64("duration", time.Since(start).Seconds()).
		Msg("computed projection basis")
	return result, nil
}

// Project places one feature vector onto the latest basis.
// It returns false while no basis has been computed yet.
func (e *Engine) Project(v []float64) (pca.Point, bool) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return pca.Project(v, e.latest.Basis.Mean, e.latest.Basis.Components)
}

// Latest returns the most recent result.
func (e *Engine) Latest() (Result, bool) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.latest, !e.latest.Basis.Empty()
}

// Size returns the current window size.
func (e *Engine) Size() int {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.window.Size()
}

// Dim returns the current feature dimension.
func (e *Engine) Dim() int {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.window.Dim()
}

// Reset drops the window and the latest basis.
func (e *Engine) Reset() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.window.Reset()
	e.latest = Result{}
}

func bounds(points []pca.Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	collector := buffer.NewStatsCollector(2)
	for _, p := range points {
		collector.Push(p.X, p.Y)
	}
	stats := collector.Stats()
	return Bounds{
		MinX: stats[0].Min(),
		MaxX: stats[0].Max(),
		MinY: stats[1].Min(),
		MaxY: stats[1].Max(),
	}
}
