package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/showdesk/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages the global toggle shortcut.
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger

	mu      sync.Mutex
	current string
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler. It fails when the backend does
// not expose an X11 connection.
func NewHandler(backend platform.Backend, logger *slog.Logger) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, fmt.Errorf("backend does not support global hotkeys")
	}
	if logger == nil {
		logger = slog.Default()
	}
	xu := accessor.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:     xu,
		root:   accessor.RootWindow(),
		logger: logger,
	}, nil
}

// Bind grabs keySequence and runs callback on every press, replacing any
// earlier binding. An empty sequence only releases the old one; a sequence
// that does not parse leaves the old one in place. callback runs on the X
// event goroutine and should hand work off quickly.
func (h *Handler) Bind(keySequence string, callback func()) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if keySequence == h.current && keySequence != "" {
		return nil
	}
	// Reject a bad sequence before the working grab is released.
	if keySequence != "" {
		if _, _, err := keybind.ParseString(h.xu, keySequence); err != nil {
			return fmt.Errorf("invalid hotkey %q: %w", keySequence, err)
		}
	}
	if h.current != "" {
		keybind.Detach(h.xu, h.root)
		if mods, codes, err := keybind.ParseString(h.xu, h.current); err == nil {
			for _, code := range codes {
				keybind.Ungrab(h.xu, h.root, mods, code)
			}
		}
		h.logger.Debug("hotkey released", "hotkey", h.current)
		h.current = ""
	}
	if keySequence == "" {
		return nil
	}

	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
	if err != nil {
		return fmt.Errorf("failed to register hotkey %q: %w", keySequence, err)
	}
	h.current = keySequence
	h.logger.Info("hotkey registered", "hotkey", keySequence)
	return nil
}

// Current returns the bound key sequence, if any.
func (h *Handler) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
