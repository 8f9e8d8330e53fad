package keyboard

import (
	"container/list"
	"context"
	"log/slog"
	"sync"

	"github.com/Azarattum/ColorHoster/internal/via"
)

// ActionKind discriminates the coalescing queue's entries; only one action
// of a given kind is ever queued at a time.
type ActionKind int

const (
	ActionUpdateColors ActionKind = iota
	ActionUpdateEffect
	ActionUpdateSpeed
	ActionUpdateBrightness
	ActionUpdateColor
	ActionLoadState
	ActionPersistState
	ActionResetBrightness
)

func (k ActionKind) String() string {
	switch k {
	case ActionUpdateColors:
		return "UpdateColors"
	case ActionUpdateEffect:
		return "UpdateEffect"
	case ActionUpdateSpeed:
		return "UpdateSpeed"
	case ActionUpdateBrightness:
		return "UpdateBrightness"
	case ActionUpdateColor:
		return "UpdateColor"
	case ActionLoadState:
		return "LoadState"
	case ActionPersistState:
		return "PersistState"
	case ActionResetBrightness:
		return "ResetBrightness"
	default:
		return "Unknown"
	}
}

// action is the tagged-union queue entry. Only the fields relevant to Kind
// are meaningful.
type action struct {
	Kind ActionKind

	Colors         []*RGB // nil entry = "do not touch this LED"
	Offset         int
	WithBrightness bool

	Effect, Speed, Brightness uint8
	Color                     RGB

	StateText string
}

// Keyboard wraps a Controller with a serialised, coalescing action queue:
// mutating calls enqueue and return immediately, while read-only queries
// take a short lock on the controller directly.
type Keyboard struct {
	controller *Controller
	logger     *slog.Logger

	mu      sync.Mutex
	queue   *list.List // of *action, FIFO
	index   map[ActionKind]*list.Element
	notify  chan struct{}
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewKeyboard starts the worker goroutine that drains controller's action
// queue. The returned Keyboard must be closed when its device disappears.
func NewKeyboard(controller *Controller, logger *slog.Logger) *Keyboard {
	ctx, cancel := context.WithCancel(context.Background())
	k := &Keyboard{
		controller: controller,
		logger:     logger,
		queue:      list.New(),
		index:      make(map[ActionKind]*list.Element),
		notify:     make(chan struct{}, 1),
		cancel:     cancel,
		stopped:    make(chan struct{}),
	}
	go k.worker(ctx)
	return k
}

// Close stops the worker goroutine. Pending queued actions are discarded.
func (k *Keyboard) Close() {
	k.cancel()
	<-k.stopped
}

func (k *Keyboard) worker(ctx context.Context) {
	defer close(k.stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case <-k.notify:
		}

		for {
			a := k.dequeue()
			if a == nil {
				break
			}
			if err := k.handle(ctx, a); err != nil {
				k.logger.Warn("keyboard action failed",
					"device", k.controller.Config().Name,
					"action", a.Kind.String(),
					"error", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}
}

func (k *Keyboard) dequeue() *action {
	k.mu.Lock()
	defer k.mu.Unlock()

	front := k.queue.Front()
	if front == nil {
		return nil
	}
	k.queue.Remove(front)
	a := front.Value.(*action)
	delete(k.index, a.Kind)
	return a
}

func (k *Keyboard) handle(ctx context.Context, a *action) error {
	switch a.Kind {
	case ActionUpdateColors:
		colors, offset := resolveSentinels(a.Colors, a.Offset, k.controller)
		return k.controller.UpdateColors(ctx, colors, offset, a.WithBrightness)
	case ActionLoadState:
		return k.controller.LoadState(ctx, a.StateText, a.WithBrightness)
	case ActionUpdateBrightness:
		return k.controller.UpdateBrightness(ctx, a.Brightness)
	case ActionUpdateEffect:
		return k.controller.UpdateEffect(ctx, a.Effect)
	case ActionUpdateColor:
		return k.controller.UpdateColor(ctx, a.Color)
	case ActionUpdateSpeed:
		return k.controller.UpdateSpeed(ctx, a.Speed)
	case ActionPersistState:
		return k.controller.PersistState(ctx)
	case ActionResetBrightness:
		k.controller.ResetBrightness(ctx)
		return nil
	}
	return nil
}

// resolveSentinels fills "do not touch" (nil) entries in a merged
// UpdateColors action with the controller's current colors at that
// position, so the underlying write always has a concrete value.
func resolveSentinels(colors []*RGB, offset int, controller *Controller) ([]RGB, int) {
	current := controller.Colors()
	out := make([]RGB, len(colors))
	for i, c := range colors {
		if c != nil {
			out[i] = *c
			continue
		}
		idx := offset + i
		if idx >= 0 && idx < len(current) {
			out[i] = current[idx]
		}
	}
	return out, offset
}

func (k *Keyboard) perform(a *action) {
	k.mu.Lock()
	if existing, ok := k.index[a.Kind]; ok {
		old := k.queue.Remove(existing).(*action)
		delete(k.index, a.Kind)
		if a.Kind == ActionUpdateColors {
			a = mergeUpdateColors(old, a)
		}
	}
	elem := k.queue.PushBack(a)
	k.index[a.Kind] = elem
	k.mu.Unlock()

	select {
	case k.notify <- struct{}{}:
	default:
	}
}

func mergeUpdateColors(old, next *action) *action {
	colors, offset := mergeColors(old.Colors, old.Offset, next.Colors, next.Offset)
	return &action{
		Kind:           ActionUpdateColors,
		Colors:         colors,
		Offset:         offset,
		WithBrightness: next.WithBrightness,
	}
}

// ID returns the device's stable identifier (its HID path).
func (k *Keyboard) ID() string {
	return k.controller.ID()
}

// Config returns the controller's static device description.
func (k *Keyboard) Config() *via.Config {
	return k.controller.Config()
}

// Keymap returns the device's scancode assignment.
func (k *Keyboard) Keymap() []uint16 {
	return k.controller.Keymap()
}

// Colors returns a snapshot of the per-LED colours.
func (k *Keyboard) Colors() []RGB {
	return k.controller.Colors()
}

// Color returns the mode-global colour.
func (k *Keyboard) Color() RGB {
	return k.controller.Color()
}

// Effect returns the active effect id.
func (k *Keyboard) Effect() uint8 {
	return k.controller.Effect()
}

// Speed returns the active effect speed.
func (k *Keyboard) Speed() uint8 {
	return k.controller.Speed()
}

// Brightness returns the active brightness.
func (k *Keyboard) Brightness() uint8 {
	return k.controller.Brightness()
}

// SaveState serialises the controller's current state.
func (k *Keyboard) SaveState() (string, error) {
	return k.controller.SaveState()
}

// UpdateColors enqueues a colour-frame update, coalescing with any pending
// UpdateColors action.
func (k *Keyboard) UpdateColors(colors []*RGB, offset int, withBrightness bool) {
	k.perform(&action{Kind: ActionUpdateColors, Colors: colors, Offset: offset, WithBrightness: withBrightness})
}

// UpdateColor enqueues a mode-global colour change.
func (k *Keyboard) UpdateColor(c RGB) {
	k.perform(&action{Kind: ActionUpdateColor, Color: c})
}

// UpdateEffect enqueues an effect change.
func (k *Keyboard) UpdateEffect(effect uint8) {
	k.perform(&action{Kind: ActionUpdateEffect, Effect: effect})
}

// UpdateSpeed enqueues a speed change.
func (k *Keyboard) UpdateSpeed(speed uint8) {
	k.perform(&action{Kind: ActionUpdateSpeed, Speed: speed})
}

// UpdateBrightness enqueues a brightness change.
func (k *Keyboard) UpdateBrightness(brightness uint8) {
	k.perform(&action{Kind: ActionUpdateBrightness, Brightness: brightness})
}

// LoadState enqueues a saved-state restore.
func (k *Keyboard) LoadState(text string, withBrightness bool) {
	k.perform(&action{Kind: ActionLoadState, StateText: text, WithBrightness: withBrightness})
}

// PersistState enqueues a device-side persist command.
func (k *Keyboard) PersistState() {
	k.perform(&action{Kind: ActionPersistState})
}

// ResetBrightness enqueues a best-effort reset of all LEDs to full
// brightness.
func (k *Keyboard) ResetBrightness() {
	k.perform(&action{Kind: ActionResetBrightness})
}
