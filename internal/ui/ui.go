package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/nevisdale/pactic/internal/audio"
	"github.com/nevisdale/pactic/internal/pac"
)

// Space - coin/start trigger
// Arrows - simulated tilt
// M - mute

const screenScale = 2

// synthetic tilt magnitude, comfortably past the on-threshold
const keyTilt = 40

type UI struct {
	m    *pac.Machine
	disp *Display
	snd  *audio.Sink
}

func New(m *pac.Machine, disp *Display, snd *audio.Sink) *UI {
	return &UI{m: m, disp: disp, snd: snd}
}

// KeyTilt implements pac.TiltSource from the arrow keys, standing in
// for the motion sensor. Sign conventions match the sensor mounting:
// tilt toward the player is up.
type KeyTilt struct{}

func (KeyTilt) Tilt() (pitch, roll int8, ok bool) {
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		pitch = -keyTilt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		pitch = keyTilt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		roll = keyTilt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		roll = -keyTilt
	}
	return pitch, roll, true
}

func (ui *UI) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		ui.snd.ToggleMute()
	}

	ui.m.Trigger(ebiten.IsKeyPressed(ebiten.KeySpace))
	ui.m.Tick()
	return nil
}

func (ui *UI) Draw(screen *ebiten.Image) {
	img := ebiten.NewImageFromImage(ui.disp.Frame())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(screenScale, screenScale)

	// the power policy dims via the backlight level; scale it so the
	// active level shows at full brightness
	dim := float32(ui.disp.Backlight()) / 128
	if dim > 1 {
		dim = 1
	}
	op.ColorScale.Scale(dim, dim, dim, 1)

	screen.DrawImage(img, op)
}

func (ui *UI) Layout(_, _ int) (int, int) {
	return pac.DisplayWidth * screenScale, pac.DisplayHeight * screenScale
}

func RunUI(ui *UI) error {
	ebiten.SetWindowSize(pac.DisplayWidth*screenScale*2, pac.DisplayHeight*screenScale*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(ui)
}
