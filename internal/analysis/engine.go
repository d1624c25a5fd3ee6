// Package analysis derives chart overlays from raw candle data: fair value
// gaps, order blocks, liquidity pools and sweeps, and market structure
// breaks. Detectors are pure over their input window; the engine composes
// them behind a single Analyze call.
package analysis

import (
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/marketglass/chartcore/internal/logger"
	"github.com/marketglass/chartcore/internal/types"
	"github.com/marketglass/chartcore/pkg/errors"
)

// Detector derives overlays of one kind from a candle window.
type Detector interface {
	// Name returns the unique registry name of the detector
	Name() string
	// Detect analyzes the window and returns the overlays found
	Detect(candles []types.Candle) ([]types.Overlay, error)
}

// Engine runs a set of detectors over one candle window and concatenates
// their overlays in registration order.
type Engine struct {
	config    Config
	log       *logger.Logger
	detectors []Detector
	byName    map[string]Detector
}

// NewEngine creates an engine with the standard detector set registered.
func NewEngine(config Config, log *logger.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid analysis config", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	e := &Engine{
		config: config,
		log:    log,
		byName: make(map[string]Detector),
	}

	for _, d := range []Detector{
		NewFVGDetector(config.FVG),
		NewOrderBlockDetector(config.OrderBlock),
		NewLiquidityDetector(config.Liquidity),
		NewStructureDetector(config.Structure),
	} {
		if err := e.Register(d); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Register adds a detector to the engine. Names must be unique.
func (e *Engine) Register(d Detector) error {
	if _, exists := e.byName[d.Name()]; exists {
		return errors.Newf(errors.ErrCodeDetectorAlreadyExists, "detector already registered: %s", d.Name())
	}

	e.byName[d.Name()] = d
	e.detectors = append(e.detectors, d)

	return nil
}

// Detector returns a registered detector by name.
func (e *Engine) Detector(name string) (Detector, error) {
	d, exists := e.byName[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeDetectorNotFound, "detector not found: %s", name)
	}

	return d, nil
}

// Analyze runs every registered detector over the window and returns all
// overlays, in detector registration order and detection order within each
// detector.
func (e *Engine) Analyze(candles []types.Candle) ([]types.Overlay, error) {
	if len(candles) < e.config.MinCandles {
		return nil, errors.NewInsufficientDataErrorf(e.config.MinCandles, len(candles), "",
			"analysis needs %d candles, got %d", e.config.MinCandles, len(candles))
	}

	var overlays []types.Overlay

	for _, d := range e.detectors {
		found, err := d.Detect(candles)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeAnalysisFailed, err, "detector %s failed", d.Name())
		}

		e.log.Debug("detector pass complete",
			zap.String("detector", d.Name()),
			zap.Int("overlays", len(found)),
		)

		overlays = append(overlays, found...)
	}

	return overlays, nil
}

// newOverlay wraps a payload in a visible overlay with a fresh ID. An empty
// label leaves the overlay unlabeled.
func newOverlay(data types.OverlayData, label string) types.Overlay {
	o := types.Overlay{
		ID:      uuid.NewString(),
		Visible: true,
		Data:    data,
	}

	if label != "" {
		o.Label = optional.Some(label)
	}

	return o
}
