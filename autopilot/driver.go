// Package autopilot drives the character from a tengo script instead of the
// keyboard. The script sees the tick number as frame and leaves the keys to
// hold in keys.
package autopilot

import (
	"errors"
	"fmt"
	"sort"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/showroom/logger"
)

var ErrNoKeys = errors.New("autopilot: script does not define keys")

// Driver is an input.KeySource. Each AppendPressed call runs the script for
// the next frame; the matching AppendReleased reports keys it let go.
type Driver struct {
	name     string
	compiled *tengo.Compiled
	frame    int
	held     map[string]bool
	released []string
	err      error
}

// New compiles src. name is only used in errors and logs.
func New(name string, src []byte) (*Driver, error) {
	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("autopilot: compile %s: %w", name, err)
	}
	if !declares(compiled, "keys") {
		return nil, fmt.Errorf("%w: %s", ErrNoKeys, name)
	}
	return &Driver{name: name, compiled: compiled, held: make(map[string]bool)}, nil
}

func (d *Driver) Name() string { return d.name }

// Frame is the number of frames run so far.
func (d *Driver) Frame() int { return d.frame }

// Err is the error that stopped the script, if any.
func (d *Driver) Err() error { return d.err }

func (d *Driver) AppendPressed(keys []string) []string {
	if d.err != nil {
		return keys
	}
	want, err := d.step()
	if err != nil {
		d.err = err
		logger.L().Error("autopilot stopped", "script", d.name, "frame", d.frame, "err", err)
		want = nil
	}

	d.released = d.released[:0]
	for k := range d.held {
		if !want[k] {
			d.released = append(d.released, k)
			delete(d.held, k)
		}
	}
	sort.Strings(d.released)

	var pressed []string
	for k := range want {
		if !d.held[k] {
			pressed = append(pressed, k)
			d.held[k] = true
		}
	}
	sort.Strings(pressed)
	return append(keys, pressed...)
}

// Held returns the keys the script is holding down, sorted.
func (d *Driver) Held() []string {
	keys := make([]string, 0, len(d.held))
	for k := range d.held {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d *Driver) AppendReleased(keys []string) []string {
	keys = append(keys, d.released...)
	d.released = d.released[:0]
	return keys
}

func (d *Driver) step() (map[string]bool, error) {
	if err := d.compiled.Set("frame", d.frame); err != nil {
		return nil, err
	}
	if err := d.compiled.Run(); err != nil {
		return nil, err
	}
	d.frame++

	want := make(map[string]bool)
	switch v := d.compiled.Get("keys").Value().(type) {
	case []interface{}:
		for _, item := range v {
			k, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("autopilot: keys must hold strings, got %T", item)
			}
			want[k] = true
		}
	case string:
		want[v] = true
	case nil:
	default:
		return nil, fmt.Errorf("autopilot: keys must be an array, got %T", v)
	}
	return want, nil
}

// declares reports whether the script has a global called name, whether or
// not it has run yet.
func declares(c *tengo.Compiled, name string) bool {
	for _, v := range c.GetAll() {
		if v.Name() == name {
			return true
		}
	}
	return false
}
