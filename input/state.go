package input

// Action is one of the four movement intents a key can be bound to.
type Action int

const (
	Forward Action = iota
	Backward
	RotateLeft
	RotateRight
)

var actionNames = [...]string{"forward", "backward", "rotate_left", "rotate_right"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Bindings maps each movement action to the key identifier that drives it.
type Bindings struct {
	Forward     string `yaml:"forward"`
	Backward    string `yaml:"backward"`
	RotateLeft  string `yaml:"rotate_left"`
	RotateRight string `yaml:"rotate_right"`
}

func DefaultBindings() Bindings {
	return Bindings{
		Forward:     "w",
		Backward:    "s",
		RotateLeft:  "a",
		RotateRight: "d",
	}
}

// Key returns the key bound to a.
func (b Bindings) Key(a Action) string {
	switch a {
	case Forward:
		return b.Forward
	case Backward:
		return b.Backward
	case RotateLeft:
		return b.RotateLeft
	case RotateRight:
		return b.RotateRight
	}
	return ""
}

// WithDefaults fills empty bindings from DefaultBindings.
func (b Bindings) WithDefaults() Bindings {
	d := DefaultBindings()
	if b.Forward == "" {
		b.Forward = d.Forward
	}
	if b.Backward == "" {
		b.Backward = d.Backward
	}
	if b.RotateLeft == "" {
		b.RotateLeft = d.RotateLeft
	}
	if b.RotateRight == "" {
		b.RotateRight = d.RotateRight
	}
	return b
}

// State is a live snapshot of the keyboard. Key identifiers are compared
// verbatim. anyMovement only considers the four bound movement keys.
type State struct {
	held        map[string]bool
	bindings    Bindings
	anyMovement bool
}

func NewState(b Bindings) *State {
	return &State{
		held:     make(map[string]bool),
		bindings: b.WithDefaults(),
	}
}

func (s *State) OnKeyDown(key string) {
	s.held[key] = true
	s.recompute()
}

func (s *State) OnKeyUp(key string) {
	s.held[key] = false
	s.recompute()
}

func (s *State) IsHeld(key string) bool {
	return s.held[key]
}

// Held reports whether the key bound to a is down.
func (s *State) Held(a Action) bool {
	return s.held[s.bindings.Key(a)]
}

func (s *State) AnyMovementKeyHeld() bool {
	return s.anyMovement
}

func (s *State) Bindings() Bindings {
	return s.bindings
}

// SetBindings rebinds the movement actions. Held keys are kept.
func (s *State) SetBindings(b Bindings) {
	s.bindings = b.WithDefaults()
	s.recompute()
}

// HeldKeys returns every key currently down, in no particular order.
func (s *State) HeldKeys() []string {
	keys := make([]string, 0, len(s.held))
	for k, down := range s.held {
		if down {
			keys = append(keys, k)
		}
	}
	return keys
}

// ReleaseAll lifts every held key, as if a key-up arrived for each.
func (s *State) ReleaseAll() {
	for k := range s.held {
		s.held[k] = false
	}
	s.recompute()
}

func (s *State) recompute() {
	s.anyMovement = s.Held(Forward) || s.Held(Backward) || s.Held(RotateLeft) || s.Held(RotateRight)
}
