package animation

// Library holds the clips imported with a model, addressed by name.
type Library struct {
	clips map[string]*Clip
	order []string
}

func NewLibrary(clips ...*Clip) *Library {
	l := &Library{clips: make(map[string]*Clip)}
	for _, c := range clips {
		l.Add(c)
	}
	return l
}

// Add registers c, replacing any clip with the same name.
func (l *Library) Add(c *Clip) {
	if c == nil {
		return
	}
	if _, ok := l.clips[c.Name]; !ok {
		l.order = append(l.order, c.Name)
	}
	l.clips[c.Name] = c
}

// Get returns the clip called name, or nil.
func (l *Library) Get(name string) *Clip {
	if l == nil {
		return nil
	}
	return l.clips[name]
}

// Each visits clips in insertion order.
func (l *Library) Each(fn func(*Clip)) {
	if l == nil {
		return
	}
	for _, name := range l.order {
		fn(l.clips[name])
	}
}

// Advance ticks every clip in the library.
func (l *Library) Advance(tps float64) {
	l.Each(func(c *Clip) { c.Advance(tps) })
}
