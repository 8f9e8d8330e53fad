// Package registry implements the device registry (C7): it enumerates HID
// devices matching known VIA configs, polls for hotplug changes, and
// exposes an ordered DeviceId -> Keyboard actor map plus a broadcast of
// fleet changes.
//
// github.com/karalabe/hid exposes no native hotplug notification, unlike
// the async backend the reference implementation polls instead: enumerate
// on a fixed interval and diff against the previously known device set.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Azarattum/ColorHoster/internal/hiddevice"
	"github.com/Azarattum/ColorHoster/internal/keyboard"
	"github.com/Azarattum/ColorHoster/internal/via"
)

// pollInterval is how often the registry re-enumerates HID devices to
// detect hotplug connects and disconnects.
const pollInterval = 2 * time.Second

type vidpid struct {
	vendor, product uint16
}

// Registry owns the live fleet of connected keyboards and the pending
// configs of keyboards that are not currently plugged in.
type Registry struct {
	logger *slog.Logger

	mu       sync.Mutex
	order    []string // DeviceId (HID path) in client-visible index order
	keyboard map[string]*keyboard.Keyboard
	pending  map[vidpid]*via.Config

	notifyMu sync.Mutex
	notify   chan struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a registry from the set of known configs and performs the
// initial device enumeration, starting a Keyboard actor for every
// currently-connected match.
func New(ctx context.Context, configs []*via.Config, logger *slog.Logger) (*Registry, error) {
	pending := make(map[vidpid]*via.Config, len(configs))
	for _, cfg := range configs {
		pending[vidpid{cfg.VendorID, cfg.ProductID}] = cfg
	}

	r := &Registry{
		logger:   logger,
		keyboard: make(map[string]*keyboard.Keyboard),
		pending:  pending,
		notify:   make(chan struct{}),
	}

	infos, err := hiddevice.Enumerate()
	if err != nil {
		return nil, fmt.Errorf("registry: enumerate: %w", err)
	}
	for _, info := range infos {
		cfg, ok := pending[vidpid{info.VendorID, info.ProductID}]
		if !ok {
			continue
		}
		delete(pending, vidpid{info.VendorID, info.ProductID})
		if err := r.addLocked(ctx, info, cfg); err != nil {
			logger.Warn("failed to initialize keyboard", "device", cfg.Name, "error", err)
			pending[vidpid{info.VendorID, info.ProductID}] = cfg
		}
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.watch(pollCtx)

	return r, nil
}

// Subscribe returns a channel that is closed the next time the fleet
// changes. Callers should re-subscribe after it fires; delivery is lossy
// by design, a client only needs to know "something changed".
func (r *Registry) Subscribe() <-chan struct{} {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	return r.notify
}

func (r *Registry) broadcast() {
	r.notifyMu.Lock()
	close(r.notify)
	r.notify = make(chan struct{})
	r.notifyMu.Unlock()
}

// Count returns the number of currently-connected keyboards.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// At dereferences the client-visible device index into its Keyboard actor.
func (r *Registry) At(index int) (*keyboard.Keyboard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.order) {
		return nil, false
	}
	return r.keyboard[r.order[index]], true
}

// All returns a snapshot of the currently-connected keyboards in
// client-visible order.
func (r *Registry) All() []*keyboard.Keyboard {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*keyboard.Keyboard, len(r.order))
	for i, id := range r.order {
		out[i] = r.keyboard[id]
	}
	return out
}

// Close stops the hotplug poller and every keyboard actor.
func (r *Registry) Close() {
	r.cancel()
	<-r.done

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kb := range r.keyboard {
		kb.Close()
	}
}

func (r *Registry) addLocked(ctx context.Context, info hiddevice.Info, cfg *via.Config) error {
	ch, err := hiddevice.Open(info)
	if err != nil {
		return err
	}
	controller, err := keyboard.NewController(ctx, info.Path, cfg, ch)
	if err != nil {
		ch.Close()
		return err
	}
	kb := keyboard.NewKeyboard(controller, r.logger)

	r.order = append(r.order, info.Path)
	r.keyboard[info.Path] = kb
	return nil
}

func (r *Registry) watch(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.poll(ctx)
		}
	}
}

func (r *Registry) poll(ctx context.Context) {
	infos, err := hiddevice.Enumerate()
	if err != nil {
		r.logger.Warn("registry: poll enumerate failed", "error", err)
		return
	}

	present := make(map[string]hiddevice.Info, len(infos))
	for _, info := range infos {
		present[info.Path] = info
	}

	r.mu.Lock()
	var disconnected []string
	for _, path := range r.order {
		if _, ok := present[path]; !ok {
			disconnected = append(disconnected, path)
		}
	}
	changed := false
	for _, path := range disconnected {
		kb := r.keyboard[path]
		cfg := kb.Config()
		kb.Close()
		delete(r.keyboard, path)
		r.order = removeString(r.order, path)
		r.pending[vidpid{cfg.VendorID, cfg.ProductID}] = cfg
		r.logger.Info("keyboard disconnected", "device", cfg.Name)
		changed = true
	}

	for path, info := range present {
		if _, ok := r.keyboard[path]; ok {
			continue
		}
		cfg, ok := r.pending[vidpid{info.VendorID, info.ProductID}]
		if !ok {
			continue
		}
		delete(r.pending, vidpid{info.VendorID, info.ProductID})
		if err := r.addLocked(ctx, info, cfg); err != nil {
			r.logger.Warn("failed to initialize keyboard", "device", cfg.Name, "error", err)
			r.pending[vidpid{info.VendorID, info.ProductID}] = cfg
			continue
		}
		r.logger.Info("keyboard connected", "device", cfg.Name)
		changed = true
	}
	r.mu.Unlock()

	if changed {
		r.broadcast()
	}
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
