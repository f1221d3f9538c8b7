package animation

import "math"

// Clip is a named frame range that can be played looping or once. Frames are
// advanced by Advance once per tick.
type Clip struct {
	Name string
	FPS  float64

	from int
	to   int

	playing    bool
	loop       bool
	blend      bool
	speed      float64
	rangeFrom  int
	rangeTo    int
	frame      float64
	iterations int
}

func NewClip(name string, from, to int, fps float64) *Clip {
	if to < from {
		from, to = to, from
	}
	if fps <= 0 {
		fps = 60
	}
	return &Clip{
		Name:      name,
		FPS:       fps,
		from:      from,
		to:        to,
		speed:     1,
		rangeFrom: from,
		rangeTo:   to,
		frame:     float64(from),
	}
}

func (c *Clip) From() int { return c.from }
func (c *Clip) To() int   { return c.to }

// Start plays the clip between from and to. Starting a clip that is already
// playing is a no-op.
func (c *Clip) Start(loop bool, speed float64, from, to int, blend bool) {
	if c.playing {
		return
	}
	if to < from {
		from, to = to, from
	}
	c.playing = true
	c.loop = loop
	c.blend = blend
	c.speed = speed
	c.rangeFrom = from
	c.rangeTo = to
	c.frame = float64(from)
	c.iterations = 0
}

func (c *Clip) Stop() {
	c.playing = false
}

func (c *Clip) Playing() bool { return c.playing }
func (c *Clip) Looping() bool { return c.loop }
func (c *Clip) Speed() float64 {
	return c.speed
}

// Frame is the current whole frame inside the active range.
func (c *Clip) Frame() int {
	return int(math.Floor(c.frame))
}

// Iterations counts completed passes over the range since the last Start.
func (c *Clip) Iterations() int {
	return c.iterations
}

// Advance moves the playhead by one tick at the given tick rate.
func (c *Clip) Advance(tps float64) {
	if !c.playing || tps <= 0 {
		return
	}
	span := float64(c.rangeTo - c.rangeFrom)
	if span <= 0 {
		c.frame = float64(c.rangeFrom)
		if !c.loop {
			c.playing = false
		}
		return
	}

	c.frame += c.FPS * c.speed / tps
	end := float64(c.rangeTo)
	start := float64(c.rangeFrom)
	switch {
	case c.frame > end:
		if !c.loop {
			c.frame = end
			c.playing = false
			c.iterations++
			return
		}
		for c.frame > end {
			c.frame -= span
			c.iterations++
		}
	case c.frame < start:
		// negative speed plays backwards
		if !c.loop {
			c.frame = start
			c.playing = false
			c.iterations++
			return
		}
		for c.frame < start {
			c.frame += span
			c.iterations++
		}
	}
}
