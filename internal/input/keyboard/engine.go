package keyboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/keybind/internal/config/notify"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/layout"
	"github.com/dshills/keybind/internal/input/resolve"
	"github.com/dshills/keybind/internal/logging"
)

// Engine errors
var (
	ErrNotLoaded = errors.New("no key binding configuration loaded")
	ErrNoLayout  = errors.New("layout is nil")
	ErrNoKeyMap  = errors.New("keymap is nil")
)

// Inputs are the static configuration a keyboard is resolved from.
type Inputs struct {
	Geometry    layout.Geometry
	Layout      *layout.Layout
	KeyMap      *keymap.KeyMap
	Labels      keymap.Labels
	EventLabels layout.EventLabels

	// SubMapLabel labels prefix bindings.
	SubMapLabel string
}

// DefaultInputs returns the built-in geometry, US layout and global keymap.
func DefaultInputs() Inputs {
	return Inputs{
		Geometry: layout.DefaultGeometry(),
		Layout:   layout.DefaultUS(),
		KeyMap:   keymap.Default(),
		Labels:   keymap.DefaultLabels(),
	}
}

// Validate reports configuration defects in the inputs.
func (in Inputs) Validate() error {
	var errs []error
	if err := in.Geometry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("geometry %q: %w", in.Geometry.Name, err))
	}
	if in.Layout == nil {
		errs = append(errs, ErrNoLayout)
	}
	if in.KeyMap == nil {
		errs = append(errs, ErrNoKeyMap)
	} else if err := in.KeyMap.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("keymap %q: %w", in.KeyMap.Name, err))
	}
	return errors.Join(errs...)
}

// Options returns the resolution options carried by the inputs.
func (in Inputs) Options() resolve.Options {
	return resolve.Options{
		Labels:      in.Labels,
		EventLabels: in.EventLabels,
		SubMapLabel: in.SubMapLabel,
	}
}

// Snapshot is an immutable, consistent copy of the configuration together
// with its event index.
type Snapshot struct {
	ID     string
	Source string
	Loaded time.Time

	Geometry layout.Geometry
	Layout   *layout.Layout
	KeyMap   *keymap.KeyMap
	ByEvent  *keymap.ByEvent
	Options  resolve.Options
}

// NewSnapshot validates and copies in, then indexes its key map.
func NewSnapshot(in Inputs, source string) (*Snapshot, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	km := in.KeyMap.Clone()
	byEvent, err := keymap.NewByEvent(km)
	if err != nil {
		return nil, fmt.Errorf("indexing keymap %q: %w", km.Name, err)
	}

	opts := in.Options()
	opts.Labels = opts.Labels.Clone()
	opts.EventLabels = opts.EventLabels.Clone()

	return &Snapshot{
		ID:       uuid.NewString(),
		Source:   source,
		Loaded:   time.Now(),
		Geometry: in.Geometry.Clone(),
		Layout:   in.Layout.Clone(),
		KeyMap:   km,
		ByEvent:  byEvent,
		Options:  opts,
	}, nil
}

// Keyboard assembles the keyboard reached after prefix has been pressed.
// An empty prefix yields the top level keyboard.
func (s *Snapshot) Keyboard(prefix key.Sequence) (*Keyboard, error) {
	byEvent, err := s.ByEvent.Descend(prefix)
	if err != nil {
		return nil, err
	}
	kb := Assemble(s.Geometry, s.Layout, byEvent, s.Options)
	kb.Prefix = append(key.Sequence(nil), prefix...)
	return kb, nil
}

// Engine holds the active snapshot.
type Engine struct {
	mu   sync.RWMutex
	snap *Snapshot

	notifier    *notify.Notifier
	ownNotifier bool
	log         *logrus.Entry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Engine) {
		e.log = logging.Component(logger, "engine")
	}
}

// WithNotifier sets the notifier changes are published on. The engine
// does not close a notifier it was given.
func WithNotifier(n *notify.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
		e.ownNotifier = false
	}
}

// NewEngine creates an engine with no snapshot loaded.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		notifier:    notify.New(),
		ownNotifier: true,
		log:         logging.Component(nil, "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the active snapshot with one built from in. A rejected
// configuration keeps the previous snapshot and publishes a ChangeFailed.
func (e *Engine) Load(in Inputs, source string) (*Snapshot, error) {
	return e.swap(in, source, notify.ChangeLoad)
}

// Reload is Load for changes coming from watched files.
func (e *Engine) Reload(in Inputs, source string) (*Snapshot, error) {
	return e.swap(in, source, notify.ChangeReload)
}

func (e *Engine) swap(in Inputs, source string, ct notify.ChangeType) (*Snapshot, error) {
	snap, err := NewSnapshot(in, source)
	if err != nil {
		e.Fail(source, err)
		return nil, err
	}

	e.mu.Lock()
	prev := e.snap
	e.snap = snap
	e.mu.Unlock()

	change := notify.Change{Type: ct, Snapshot: snap.ID, Source: source}
	if prev != nil {
		change.Previous = prev.ID
	}

	e.log.WithFields(logrus.Fields{
		"snapshot": snap.ID,
		"source":   source,
		"geometry": snap.Geometry.Name,
		"layout":   snap.Layout.Name,
		"keymap":   snap.KeyMap.Name,
		"events":   snap.ByEvent.Len(),
	}).Info("loaded key binding configuration")

	e.notifier.Notify(change)
	return snap, nil
}

// Fail publishes a ChangeFailed for a configuration from source that could
// not be loaded. The current snapshot stays active. Callers that read and
// decode configuration themselves use it to report errors that never reach
// Load or Reload.
func (e *Engine) Fail(source string, err error) {
	e.log.WithError(err).WithField("source", source).Warn("rejected key binding configuration")
	change := notify.Change{Type: notify.ChangeFailed, Source: source, Err: err}
	if prev := e.Snapshot(); prev != nil {
		change.Snapshot = prev.ID
	}
	e.notifier.Notify(change)
}

// Snapshot returns the active snapshot, or nil before the first Load.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// Keyboard resolves the active snapshot, after the optional prefix events.
func (e *Engine) Keyboard(prefix ...key.ModdedEvent) (*Keyboard, error) {
	snap := e.Snapshot()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	kb, err := snap.Keyboard(prefix)
	if err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"snapshot": snap.ID,
		"prefix":   kb.Prefix.String(),
		"keys":     kb.Len(),
	}).Debug("resolved keyboard")
	return kb, nil
}

// Subscribe registers an observer for snapshot changes.
func (e *Engine) Subscribe(obs notify.Observer) *notify.Subscription {
	return e.notifier.Subscribe(obs)
}

// Close releases the engine's notifier if the engine created it.
func (e *Engine) Close() {
	if e.ownNotifier {
		e.notifier.Close()
	}
}
