package ggscript

import (
	"fmt"
	"slices"
	"sync"
)

// SurfaceFactory creates a surface of the given size.
type SurfaceFactory func(width, height int) Surface

var (
	registryMu sync.RWMutex
	factories  = make(map[string]SurfaceFactory)
)

func init() {
	Register("raster", func(width, height int) Surface {
		return NewRasterSurface(width, height)
	})
}

// Register makes a surface factory available by name. Surface packages
// call it from init, in the style of database/sql drivers:
//
//	func init() {
//	    ggscript.Register("svg", func(w, h int) ggscript.Surface {
//	        return New(w, h)
//	    })
//	}
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory SurfaceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("ggscript: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("ggscript: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a surface factory. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// NewSurface creates a surface by registered name.
//
//	import _ "github.com/gogpu/ggscript/backends/svg"
//
//	s, err := ggscript.NewSurface("svg", 640, 480)
func NewSurface(name string, width, height int) (Surface, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("ggscript: unknown surface %q (forgotten import?)", name)
	}
	return factory(width, height), nil
}

// MustSurface is like NewSurface but panics on error.
func MustSurface(name string, width, height int) Surface {
	s, err := NewSurface(name, width, height)
	if err != nil {
		panic(err)
	}
	return s
}

// Surfaces returns the registered names in sorted order.
func Surfaces() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name has a registered factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
