package panel

import "github.com/zjrosen/quillkey/internal/feature"

// PanelState is the per-feature entry of the registry.
type PanelState struct {
	Active            bool
	LastProcessedText string
	HasLast           bool
}

// Registry tracks which feature panel is active and the text each panel
// last requested. At most one entry is active at a time.
type Registry struct {
	panels map[feature.Kind]PanelState
}

// NewRegistry returns a registry with every panel inactive.
func NewRegistry() *Registry {
	return &Registry{panels: make(map[feature.Kind]PanelState)}
}

// Active returns the active feature or feature.None.
func (r *Registry) Active() feature.Kind {
	for k, st := range r.panels {
		if st.Active {
			return k
		}
	}
	return feature.None
}

// State returns k's entry.
func (r *Registry) State(k feature.Kind) PanelState {
	return r.panels[k]
}

// SetActive marks k active and every other panel inactive.
func (r *Registry) SetActive(k feature.Kind) {
	for other, st := range r.panels {
		if st.Active && other != k {
			st.Active = false
			r.panels[other] = st
		}
	}
	st := r.panels[k]
	st.Active = true
	r.panels[k] = st
}

// Deactivate marks k inactive.
func (r *Registry) Deactivate(k feature.Kind) {
	st, ok := r.panels[k]
	if !ok {
		return
	}
	st.Active = false
	r.panels[k] = st
}

// Remember records text as the last text requested for k.
func (r *Registry) Remember(k feature.Kind, text string) {
	st := r.panels[k]
	st.LastProcessedText = text
	st.HasLast = true
	r.panels[k] = st
}

// Forget clears k's de-dup cache.
func (r *Registry) Forget(k feature.Kind) {
	st, ok := r.panels[k]
	if !ok {
		return
	}
	st.LastProcessedText = ""
	st.HasLast = false
	r.panels[k] = st
}

// Processed reports whether text was the last text requested for k.
func (r *Registry) Processed(k feature.Kind, text string) bool {
	st := r.panels[k]
	return st.HasLast && st.LastProcessedText == text
}

// ActiveCount returns the number of active entries.
func (r *Registry) ActiveCount() int {
	n := 0
	for _, st := range r.panels {
		if st.Active {
			n++
		}
	}
	return n
}

// Reset returns every panel to inactive with an empty cache.
func (r *Registry) Reset() {
	clear(r.panels)
}
