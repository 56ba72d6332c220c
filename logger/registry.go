package logger

import "sync"

// components holds named loggers shared across a process. Libraries look up
// their component logger by name; applications decide what those names map to.
var components = componentSet{byName: make(map[string]*Logger)}

type componentSet struct {
	mu     sync.RWMutex
	byName map[string]*Logger
}

func (cs *componentSet) store(name string, l *Logger) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.byName[name] = l
}

func (cs *componentSet) lookup(name string) (*Logger, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	l, ok := cs.byName[name]
	return l, ok
}

// Register stores a named logger for later lookup via Get.
func Register(name string, l *Logger) {
	components.store(name, l)
}

// Get returns the logger registered under name. Unregistered names fall back
// to the global logger tagged with the requested component.
func Get(name string) *Logger {
	if l, ok := components.lookup(name); ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults seeds the registry with component-tagged children of the
// global logger. Call after Init so the children inherit its configuration.
func RegisterDefaults(names ...string) {
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
