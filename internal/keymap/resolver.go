package keymap

// Resolver maps keys to actions within input contexts.
type Resolver struct {
	contexts map[string]map[string]Action // context -> key -> action
}

// NewResolver indexes bindings by context. When a key is bound twice in
// one context the first binding wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{contexts: make(map[string]map[string]Action)}
	for _, b := range bindings {
		keys, ok := r.contexts[b.Context]
		if !ok {
			keys = make(map[string]Action)
			r.contexts[b.Context] = keys
		}
		for _, k := range b.Keys {
			if _, taken := keys[k]; !taken {
				keys[k] = b.Action
			}
		}
	}
	return r
}

// Resolve returns the action key triggers in the first context of stack
// that binds it, or "" when none does.
func (r *Resolver) Resolve(key string, stack ...string) Action {
	for _, ctx := range stack {
		if a, ok := r.contexts[ctx][key]; ok {
			return a
		}
	}
	return ""
}
