package input

// KeySource delivers the key-down and key-up events that happened since the
// previous tick.
type KeySource interface {
	AppendPressed(keys []string) []string
	AppendReleased(keys []string) []string
}

// Apply feeds a source's pending events into s, downs before ups.
func Apply(src KeySource, s *State) {
	if src == nil || s == nil {
		return
	}
	for _, k := range src.AppendPressed(nil) {
		s.OnKeyDown(k)
	}
	for _, k := range src.AppendReleased(nil) {
		s.OnKeyUp(k)
	}
}

// Sources merges several key sources into one.
type Sources []KeySource

func (ss Sources) AppendPressed(keys []string) []string {
	for _, s := range ss {
		if s != nil {
			keys = s.AppendPressed(keys)
		}
	}
	return keys
}

func (ss Sources) AppendReleased(keys []string) []string {
	for _, s := range ss {
		if s != nil {
			keys = s.AppendReleased(keys)
		}
	}
	return keys
}
