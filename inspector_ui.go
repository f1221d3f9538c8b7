package main

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/showroom/input"
	"github.com/milk9111/showroom/logger"
	"github.com/milk9111/showroom/scene"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// Inspector is the debug panel toggled by the inspector key chord.
type Inspector struct {
	ui      *ebitenui.UI
	visible bool

	status *widget.Text
	events *widget.Text

	clipboardReady bool
	game           *Game
}

func NewInspector(g *Game) *Inspector {
	in := &Inspector{game: g}
	if err := clipboard.Init(); err != nil {
		logger.L().Warn("clipboard unavailable", "err", err)
	} else {
		in.clipboardReady = true
	}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x14, B: 0x1c, A: 220})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	rowStart := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart, Stretch: true})

	title := widget.NewText(
		widget.TextOpts.Text("Inspector", &face, white),
		widget.TextOpts.WidgetOpts(rowStart),
	)
	in.status = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(rowStart),
	)
	in.events = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xb0, G: 0xc4, B: 0xde, A: 0xff}),
		widget.TextOpts.WidgetOpts(rowStart),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Top: 4, Bottom: 4, Left: 8, Right: 8}),
			widget.ButtonOpts.WidgetOpts(rowStart),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(280, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(in.status)
	panel.AddChild(in.events)
	panel.AddChild(button("Reset character", in.resetCharacter))
	panel.AddChild(button("Copy transform", in.copyTransform))
	panel.AddChild(button("Toggle physics debug", func() { g.debug = !g.debug }))
	panel.AddChild(button("Reload scene", g.ReloadScene))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 10, Right: 10}),
		)),
	)
	root.AddChild(panel)

	in.ui = &ebitenui.UI{Container: root}
	return in
}

func (in *Inspector) Visible() bool { return in.visible }

func (in *Inspector) SetVisible(v bool) { in.visible = v }

func (in *Inspector) Toggle() {
	in.visible = !in.visible
	logger.L().Debug("inspector toggled", "visible", in.visible)
}

func (in *Inspector) Update() {
	if !in.visible {
		return
	}
	s := in.game.scene
	in.status.Label = describeScene(s, in.game.input, in.game.debug)
	in.events.Label = describeEvents(s)
	in.ui.Update()
}

func (in *Inspector) Draw(screen *ebiten.Image) {
	if !in.visible {
		return
	}
	in.ui.Draw(screen)
}

func (in *Inspector) resetCharacter() {
	if in.game.scene == nil {
		return
	}
	in.game.scene.ResetCharacter()
	logger.L().Info("character reset")
}

func (in *Inspector) copyTransform() {
	if in.game.scene == nil {
		return
	}
	if !in.clipboardReady {
		logger.L().Warn("copy transform skipped: clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(transformYAML(in.game.scene)))
}

// describeScene is the inspector's status block.
func describeScene(s *scene.Scene, in *input.State, debug bool) string {
	if s == nil {
		return "no scene"
	}
	t := s.Transform
	held := in.HeldKeys()
	sort.Strings(held)

	var b strings.Builder
	fmt.Fprintf(&b, "scene: %s (%s)\n", s.Spec.Name, s.Spec.Movement.Style)
	fmt.Fprintf(&b, "position: %.3f %.3f %.3f\n", t.Pos.X(), t.Pos.Y(), t.Pos.Z())
	fmt.Fprintf(&b, "yaw: %.1f deg\n", t.Yaw()*180/math.Pi)
	if s.Body != nil && s.Body.Dynamic() {
		v := s.Body.LinearVelocity()
		fmt.Fprintf(&b, "velocity: %.3f %.3f\n", v.X(), v.Z())
	}
	fmt.Fprintf(&b, "walk: %s frame %d\n", playState(s.Walk.Playing()), s.Walk.Frame())
	fmt.Fprintf(&b, "held: [%s]\n", strings.Join(held, " "))
	fmt.Fprintf(&b, "entities: %d\n", s.World.Len())
	fmt.Fprintf(&b, "physics debug: %v", debug)
	return b.String()
}

func describeEvents(s *scene.Scene) string {
	if s == nil {
		return ""
	}
	events := s.RecentEvents()
	if len(events) == 0 {
		return "no animation events"
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("%s %s", e.Clip, e.Kind))
	}
	return strings.Join(lines, "\n")
}

// transformYAML renders the character pose in the scene file's format so it
// can be pasted back as a spawn point.
func transformYAML(s *scene.Scene) string {
	t := s.Transform
	return fmt.Sprintf("position: {x: %.3f, y: %.3f, z: %.3f}\nyaw: %.2f\n",
		t.Pos.X(), t.Pos.Y(), t.Pos.Z(), t.Yaw()*180/math.Pi)
}

func playState(playing bool) string {
	if playing {
		return "playing"
	}
	return "stopped"
}
