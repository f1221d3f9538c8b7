package system

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/showroom/common"
	"github.com/milk9111/showroom/ecs"
	"github.com/milk9111/showroom/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	defaultCharacterRadius = 0.5
	skyBands               = 32
)

// View maps the ground plane onto the screen looking straight down. World X
// runs right and world Z runs up the screen.
type View struct {
	Focus  mgl64.Vec3
	Scale  float64
	Width  float64
	Height float64
}

func (v View) ToScreen(x, z float64) (float32, float32) {
	sx := v.Width/2 + (x-v.Focus.X())*v.Scale
	sy := v.Height/2 - (z-v.Focus.Z())*v.Scale
	return float32(sx), float32(sy)
}

// CameraView builds the view of the first camera in w.
func CameraView(w *ecs.World, screenW, screenH int) View {
	v := View{Scale: common.PixelsPerUnit, Width: float64(screenW), Height: float64(screenH)}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return v
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	v.Focus = cam.Focus
	if cam.Zoom > 0 {
		v.Scale *= cam.Zoom
	}
	return v
}

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	view := CameraView(w, b.Dx(), b.Dy())

	drawSky(w, screen)

	intensity := 1.0
	if e, ok := w.First(component.LightComponent.Kind()); ok {
		light, _ := ecs.Get(w, e, component.LightComponent.Kind())
		intensity = common.Clamp01(light.Intensity)
	}

	ecs.ForEach2(w, component.GroundComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, g *component.Ground, t *component.Transform) {
		x, y := view.ToScreen(t.Pos.X()-g.Width/2, t.Pos.Z()+g.Depth/2)
		wdt := float32(g.Width * view.Scale)
		hgt := float32(g.Depth * view.Scale)
		vector.FillRect(screen, x, y, wdt, hgt, shade(colornames.Darkslategray, intensity), false)
	})

	ecs.ForEach2(w, component.ShowroomComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, s *component.Showroom, t *component.Transform) {
		x, y := view.ToScreen(t.Pos.X()-s.Width/2, t.Pos.Z()+s.Depth/2)
		wdt := float32(s.Width * view.Scale)
		hgt := float32(s.Depth * view.Scale)
		vector.StrokeRect(screen, x, y, wdt, hgt, 3, shade(colornames.Lightsteelblue, intensity), true)
	})

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		radius := defaultCharacterRadius * t.Scale.X()
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			radius = pb.Body.Radius()
		}
		drawCharacter(screen, view, t, radius, walking(w, e), intensity)
	})
}

func drawCharacter(screen *ebiten.Image, view View, t *component.Transform, radius float64, walking bool, intensity float64) {
	cx, cy := view.ToScreen(t.Pos.X(), t.Pos.Z())
	r := float32(radius * view.Scale)

	body := colornames.Goldenrod
	if walking {
		body = colornames.Orange
	}
	vector.FillCircle(screen, cx, cy, r, shade(body, intensity), true)
	vector.StrokeCircle(screen, cx, cy, r, 2, colornames.White, true)

	tip := t.Pos.Add(t.Forward().Mul(radius * 1.5))
	tx, ty := view.ToScreen(tip.X(), tip.Z())
	vector.StrokeLine(screen, cx, cy, tx, ty, 3, colornames.White, true)
}

func walking(w *ecs.World, e ecs.Entity) bool {
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok || anim.Library == nil {
		return false
	}
	clip := anim.Library.Get(anim.Watched)
	return clip != nil && clip.Playing()
}

func drawSky(w *ecs.World, screen *ebiten.Image) {
	e, ok := w.First(component.SkyComponent.Kind())
	if !ok {
		screen.Fill(colornames.Black)
		return
	}
	sky, _ := ecs.Get(w, e, component.SkyComponent.Kind())
	b := screen.Bounds()
	band := float32(b.Dy()) / skyBands
	for i := 0; i < skyBands; i++ {
		t := float64(i) / (skyBands - 1)
		vector.FillRect(screen, 0, float32(i)*band, float32(b.Dx()), band+1, SkyColor(sky, t), false)
	}
}

// SkyColor blends the sky from zenith (t=0) to horizon (t=1).
func SkyColor(s *component.Sky, t float64) color.RGBA {
	t = common.Clamp01(t)
	mix := func(a, b uint8) uint8 {
		return uint8(common.Lerp(float64(a), float64(b), t) + 0.5)
	}
	return color.RGBA{
		R: mix(s.Zenith.R, s.Horizon.R),
		G: mix(s.Zenith.G, s.Horizon.G),
		B: mix(s.Zenith.B, s.Horizon.B),
		A: mix(s.Zenith.A, s.Horizon.A),
	}
}

func shade(c color.RGBA, intensity float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * intensity),
		G: uint8(float64(c.G) * intensity),
		B: uint8(float64(c.B) * intensity),
		A: c.A,
	}
}
