package system

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/showroom/ecs"
	"github.com/milk9111/showroom/ecs/component"
	"github.com/milk9111/showroom/input"
)

// KeyName is the identifier an Ebitengine key is reported under, e.g. "w" or
// "arrowleft".
func KeyName(k ebiten.Key) string {
	return strings.ToLower(k.String())
}

// EbitenKeys reports the keys that went down or up during the current tick.
type EbitenKeys struct {
	buf []ebiten.Key
}

func (k *EbitenKeys) AppendPressed(keys []string) []string {
	k.buf = inpututil.AppendJustPressedKeys(k.buf[:0])
	for _, key := range k.buf {
		keys = append(keys, KeyName(key))
	}
	return keys
}

func (k *EbitenKeys) AppendReleased(keys []string) []string {
	k.buf = inpututil.AppendJustReleasedKeys(k.buf[:0])
	for _, key := range k.buf {
		keys = append(keys, KeyName(key))
	}
	return keys
}

// InputSystem feeds key events into every input state in the world before
// anything else reads them this tick.
type InputSystem struct {
	source input.KeySource
	// Paused drops incoming events, e.g. while the inspector has focus.
	Paused bool
}

func NewInputSystem(source input.KeySource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.source == nil {
		return
	}

	// Sources may advance when read, so read them once per tick.
	tick := capturedKeys{
		pressed:  i.source.AppendPressed(nil),
		released: i.source.AppendReleased(nil),
	}
	if i.Paused {
		return
	}

	seen := make(map[*input.State]struct{})
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		if in.State == nil {
			return
		}
		if _, ok := seen[in.State]; ok {
			return
		}
		seen[in.State] = struct{}{}
		input.Apply(tick, in.State)
	})
}

type capturedKeys struct {
	pressed  []string
	released []string
}

func (c capturedKeys) AppendPressed(keys []string) []string  { return append(keys, c.pressed...) }
func (c capturedKeys) AppendReleased(keys []string) []string { return append(keys, c.released...) }

// ChordPressed reports whether trigger went down this tick while every
// modifier is held.
func ChordPressed(trigger ebiten.Key, modifiers ...ebiten.Key) bool {
	if !inpututil.IsKeyJustPressed(trigger) {
		return false
	}
	for _, m := range modifiers {
		if !ebiten.IsKeyPressed(m) {
			return false
		}
	}
	return true
}
