package store

import "sync"

// MemoryPreferences is an in-process Preferences implementation, used when
// no Fyne app is around (tests, command-line tools).
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemoryPreferences returns an empty MemoryPreferences
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]any)}
}

func (p *MemoryPreferences) String(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, _ := p.values[key].(string)
	return v
}

func (p *MemoryPreferences) SetString(key string, value string) { p.set(key, value) }

func (p *MemoryPreferences) BoolWithFallback(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key].(bool); ok {
		return v
	}
	return fallback
}

func (p *MemoryPreferences) SetBool(key string, value bool) { p.set(key, value) }

func (p *MemoryPreferences) IntWithFallback(key string, fallback int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key].(int); ok {
		return v
	}
	return fallback
}

func (p *MemoryPreferences) SetInt(key string, value int) { p.set(key, value) }

func (p *MemoryPreferences) FloatWithFallback(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key].(float64); ok {
		return v
	}
	return fallback
}

func (p *MemoryPreferences) SetFloat(key string, value float64) { p.set(key, value) }

func (p *MemoryPreferences) set(key string, value any) {
	p.mu.Lock()
	p.values[key] = value
	p.mu.Unlock()
}
