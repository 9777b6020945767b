package browser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-rod/rod/lib/input"
)

// namedKeys maps DOM key names to rod key symbols
var namedKeys = map[string]input.Key{
	"Enter":      input.Enter,
	"Tab":        input.Tab,
	"Escape":     input.Escape,
	"Backspace":  input.Backspace,
	"Delete":     input.Delete,
	"Insert":     input.Insert,
	"Home":       input.Home,
	"End":        input.End,
	"PageUp":     input.PageUp,
	"PageDown":   input.PageDown,
	"ArrowUp":    input.ArrowUp,
	"ArrowDown":  input.ArrowDown,
	"ArrowLeft":  input.ArrowLeft,
	"ArrowRight": input.ArrowRight,
	"Space":      input.Space,
	"Shift":      input.ShiftLeft,
	"Control":    input.ControlLeft,
	"Alt":        input.AltLeft,
	"Meta":       input.MetaLeft,
	"F1":         input.F1,
	"F2":         input.F2,
	"F3":         input.F3,
	"F4":         input.F4,
	"F5":         input.F5,
	"F6":         input.F6,
	"F7":         input.F7,
	"F8":         input.F8,
	"F9":         input.F9,
	"F10":        input.F10,
	"F11":        input.F11,
	"F12":        input.F12,
}

// aliases accepted for convenience in hand-written scripts
var keyAliases = map[string]string{
	"esc":    "Escape",
	"return": "Enter",
	"del":    "Delete",
	"up":     "ArrowUp",
	"down":   "ArrowDown",
	"left":   "ArrowLeft",
	"right":  "ArrowRight",
	"ctrl":   "Control",
	"cmd":    "Meta",
}

// errNoKeyCode marks a single character rod has no key definition for
var errNoKeyCode = errors.New("no key code")

// resolveKey turns a key name like "Enter" or "a" into a rod key
func resolveKey(name string) (input.Key, error) {
	if k, ok := namedKeys[name]; ok {
		return k, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		k := input.Key(r)
		if !keyDefined(k) {
			return 0, fmt.Errorf("unsupported key: %q: %w", name, errNoKeyCode)
		}
		return k, nil
	}

	lower := strings.ToLower(name)
	if canonical, ok := keyAliases[lower]; ok {
		return namedKeys[canonical], nil
	}
	for n, k := range namedKeys {
		if strings.ToLower(n) == lower {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unsupported key: %q", name)
}

// keyDefined reports whether rod can type k. Key.Info panics on runes
// missing from its key map.
func keyDefined(k input.Key) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	k.Info()
	return true
}
