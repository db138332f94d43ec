// Package registry provides the template helper registry used by the
// progressive renderer.
//
// Helpers are registered once at process start and the registry is frozen
// before the first render; after that point it is read-only and safe to share
// across every render call without synchronization. This replaces ambient
// global helper state with an explicit object injected into the renderer at
// construction time.
package registry

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"
)

// HelperRegistry holds the named template helper functions available to
// every rendered shell.
type HelperRegistry struct {
	helpers template.FuncMap
	frozen  bool
	mutex   sync.Mutex
}

// NewHelperRegistry creates a registry pre-populated with the built-in
// helpers.
func NewHelperRegistry() *HelperRegistry {
	r := &HelperRegistry{helpers: make(template.FuncMap)}
	r.registerBuiltins()
	return r
}

// Register adds a helper under the given name. Registration after Freeze is
// rejected, preserving the no-per-request-mutation invariant.
func (r *HelperRegistry) Register(name string, fn interface{}) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.frozen {
		return fmt.Errorf("helper registry is frozen, cannot register %q", name)
	}
	if name == "" {
		return fmt.Errorf("helper name cannot be empty")
	}
	r.helpers[name] = fn
	return nil
}

// Freeze marks the registry read-only. Idempotent.
func (r *HelperRegistry) Freeze() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.frozen = true
}

// FuncMap returns a copy of the registered helpers so callers cannot mutate
// the registry through the returned map.
func (r *HelperRegistry) FuncMap() template.FuncMap {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	funcs := make(template.FuncMap, len(r.helpers))
	for name, fn := range r.helpers {
		funcs[name] = fn
	}
	return funcs
}

// registerBuiltins installs the default helper set: the formatting helpers
// the e-commerce dashboards rely on.
func (r *HelperRegistry) registerBuiltins() {
	r.helpers["formatCurrency"] = func(value float64) string {
		formatted := fmt.Sprintf("%.2f", value)
		formatted = strings.ReplaceAll(formatted, ".", ",")
		return "R$ " + formatted
	}
	r.helpers["formatDate"] = func(t time.Time) string {
		return t.Format("02/01/2006")
	}
	r.helpers["upper"] = strings.ToUpper
	r.helpers["lower"] = strings.ToLower
	r.helpers["truncate"] = func(s string, max int) string {
		if max <= 0 || len(s) <= max {
			return s
		}
		runes := []rune(s)
		if len(runes) <= max {
			return s
		}
		return string(runes[:max]) + "…"
	}
	r.helpers["pluralize"] = func(count int, singular, plural string) string {
		if count == 1 {
			return singular
		}
		return plural
	}
}
