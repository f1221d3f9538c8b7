package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/showroom/animation"
	"github.com/milk9111/showroom/scene"
	"golang.org/x/image/colornames"
)

const (
	viewW = 640
	viewH = 200
	tps   = 60
)

// viewer steps a scene's walk clip on a timeline so its frame range and rate
// can be checked without running the showroom.
type viewer struct {
	clip  *animation.Clip
	loop  bool
	speed float64
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if v.clip.Playing() {
			v.clip.Stop()
		} else {
			v.start()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		v.loop = !v.loop
		v.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.speed = -v.speed
		v.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		v.speed *= 2
		v.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		v.speed /= 2
		v.restart()
	}
	v.clip.Advance(tps)
	return nil
}

func (v *viewer) start() {
	v.clip.Start(v.loop, v.speed, v.clip.From(), v.clip.To(), false)
}

// restart applies changed playback settings; Start ignores them while the
// clip is already playing.
func (v *viewer) restart() {
	if !v.clip.Playing() {
		return
	}
	v.clip.Stop()
	v.start()
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})

	from, to := v.clip.From(), v.clip.To()
	span := to - from + 1
	const left, top, width, height = 20, 80, viewW - 40, 40
	cell := float32(width) / float32(span)

	for i := 0; i < span; i++ {
		x := float32(left) + float32(i)*cell
		vector.StrokeRect(screen, x, top, cell, height, 1, colornames.Dimgray, false)
	}
	current := v.clip.Frame() - from
	vector.FillRect(screen, float32(left)+float32(current)*cell, top, cell, height, colornames.Orange, false)

	state := "stopped"
	if v.clip.Playing() {
		state = "playing"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  frames %d..%d @ %.0f fps", v.clip.Name, from, to, v.clip.FPS), left, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  frame %d  loop %v  speed %.2f  laps %d", state, v.clip.Frame(), v.loop, v.speed, v.clip.Iterations()), left, 40)
	ebitenutil.DebugPrintAt(screen, "space play/stop  L loop  R reverse  up/down speed", left, viewH-30)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewW, viewH
}

func main() {
	sceneName := flag.String("scene", scene.DefaultScene, "scene file whose walk clip to play")
	flag.Parse()

	spec, err := scene.LoadSpec(*sceneName)
	if err != nil {
		log.Fatal(err)
	}
	walk := spec.Character.Walk
	v := &viewer{
		clip:  animation.NewClip(walk.Name, walk.From, walk.To, walk.FPS),
		loop:  true,
		speed: 1,
	}
	v.start()

	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(viewW, viewH)
	ebiten.SetWindowTitle("Clip Viewer: " + walk.Name)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
