package main

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/showroom/autopilot"
	"github.com/milk9111/showroom/input"
	"github.com/milk9111/showroom/scene"
	"gopkg.in/yaml.v3"
)

func TestParseChord(t *testing.T) {
	cases := []struct {
		name    string
		in      []string
		want    []ebiten.Key
		wantErr bool
	}{
		{"inspector", []string{"shift", "control", "alt", "i"}, []ebiten.Key{ebiten.KeyShift, ebiten.KeyControl, ebiten.KeyAlt, ebiten.KeyI}, false},
		{"case_insensitive", []string{"Shift", "F1"}, []ebiten.Key{ebiten.KeyShift, ebiten.KeyF1}, false},
		{"unknown", []string{"hyper"}, nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := parseChord(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if len(got) != len(c.want) {
				t.Fatalf("got %v, want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("got %v, want %v", got, c.want)
				}
			}
		})
	}
}

func buildScene(t *testing.T) (*scene.Scene, *input.State) {
	t.Helper()
	state := input.NewState(input.DefaultBindings())
	s, err := scene.Build(scene.DefaultSpec(), scene.Options{Input: state, TPS: 60})
	if err != nil {
		t.Fatal(err)
	}
	return s, state
}

func TestDescribeScene(t *testing.T) {
	if got := describeScene(nil, nil, false); got != "no scene" {
		t.Fatalf("describeScene(nil) = %q", got)
	}

	s, state := buildScene(t)
	state.OnKeyDown("w")
	state.OnKeyDown("a")
	got := describeScene(s, state, true)
	for _, want := range []string{
		"scene: showroom (kinematic)",
		"position: 0.000 -1.000 0.000",
		"walk: stopped frame 0",
		"held: [a w]",
		"entities: 6",
		"physics debug: true",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("describeScene() missing %q in:\n%s", want, got)
		}
	}
}

func TestDescribeEvents(t *testing.T) {
	s, _ := buildScene(t)
	if got := describeEvents(s); got != "no animation events" {
		t.Fatalf("describeEvents() = %q", got)
	}
}

func TestTransformYAMLIsSceneShaped(t *testing.T) {
	s, _ := buildScene(t)
	var doc struct {
		Position scene.VecSpec `yaml:"position"`
		Yaw      float64       `yaml:"yaw"`
	}
	if err := yaml.Unmarshal([]byte(transformYAML(s)), &doc); err != nil {
		t.Fatalf("transformYAML is not yaml: %v", err)
	}
	if doc.Position.Y != -1 || doc.Yaw != 0 {
		t.Fatalf("decoded %+v", doc)
	}
}

func TestSetSceneReleasesAutopilotKeys(t *testing.T) {
	old, err := autopilot.New("old", []byte(`keys := ["w"]`))
	if err != nil {
		t.Fatal(err)
	}
	next, err := autopilot.New("next", []byte(`keys := []`))
	if err != nil {
		t.Fatal(err)
	}

	s, state := buildScene(t)
	input.Apply(old, state)
	if !state.IsHeld("w") {
		t.Fatalf("old driver should hold w")
	}

	g := &Game{input: state, autopilot: old}
	g.setScene(loadResult{scene: s, autopilot: next})
	for i := 0; i < 5; i++ {
		input.Apply(next, state)
	}
	if state.IsHeld("w") || state.AnyMovementKeyHeld() {
		t.Fatalf("keys from the replaced driver are still held: %v", state.HeldKeys())
	}
	if g.autopilot != next {
		t.Fatalf("new driver was not installed")
	}
}
