package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const spinnerSpokes = 12

// loadingScreen covers the window while the scene builds in the background.
type loadingScreen struct {
	title  string
	frames int
	face   ebtext.Face
}

func newLoadingScreen(title string) *loadingScreen {
	return &loadingScreen{title: title, face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (l *loadingScreen) Update() {
	l.frames++
}

// Draw shows a spinner, or err when loading gave up.
func (l *loadingScreen) Draw(screen *ebiten.Image, err error) {
	screen.Fill(colornames.Black)
	b := screen.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2

	msg := "loading " + l.title
	clr := color.Color(colornames.White)
	if err != nil {
		msg = err.Error()
		clr = colornames.Tomato
	} else {
		l.drawSpinner(screen, cx, cy-30)
	}

	w, h := ebtext.Measure(msg, l.face, 0)
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(cx)-w/2, float64(cy)-h/2+10)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, msg, l.face, op)
}

func (l *loadingScreen) drawSpinner(screen *ebiten.Image, cx, cy float32) {
	const inner, outer = 8, 18
	head := (l.frames / 5) % spinnerSpokes
	for i := 0; i < spinnerSpokes; i++ {
		angle := 2 * math.Pi * float64(i) / spinnerSpokes
		sin, cos := math.Sincos(angle)
		fade := uint8(60 + 195*((i-head+spinnerSpokes)%spinnerSpokes)/(spinnerSpokes-1))
		vector.StrokeLine(screen,
			cx+float32(cos*inner), cy+float32(sin*inner),
			cx+float32(cos*outer), cy+float32(sin*outer),
			3, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: fade}, true)
	}
}
