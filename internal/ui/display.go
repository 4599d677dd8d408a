package ui

import (
	"image"
	"image/color"

	"github.com/nevisdale/pactic/internal/pac"
)

// Display implements pac.DisplayTransport against an in-memory RGBA
// framebuffer. Writes are synchronous, so WaitDone has nothing to wait
// for; the machine's buffer discipline still holds.
type Display struct {
	fb *image.RGBA

	winX, winY, winW, winH int
	curX, curY             int

	backlight uint8
}

func NewDisplay() *Display {
	return &Display{
		fb:        image.NewRGBA(image.Rect(0, 0, pac.DisplayWidth, pac.DisplayHeight)),
		winW:      pac.DisplayWidth,
		winH:      pac.DisplayHeight,
		backlight: 255,
	}
}

func (d *Display) SetWindow(x, y, w, h int) {
	d.winX, d.winY, d.winW, d.winH = x, y, w, h
	d.curX, d.curY = 0, 0
}

func (d *Display) WritePreswapped(pix []uint16) {
	for _, p := range pix {
		// undo the panel byte swap, then unpack RGB565
		v := p>>8 | p<<8
		c := color.RGBA{
			R: uint8(v >> 11 << 3),
			G: uint8((v >> 5 & 0x3F) << 2),
			B: uint8((v & 0x1F) << 3),
			A: 255,
		}
		d.fb.SetRGBA(d.winX+d.curX, d.winY+d.curY, c)

		d.curX++
		if d.curX == d.winW {
			d.curX = 0
			d.curY++
			if d.curY == d.winH {
				d.curY = 0
			}
		}
	}
}

func (d *Display) WaitDone() {}

func (d *Display) Fill(col uint16) {
	c := color.RGBA{
		R: uint8(col >> 11 << 3),
		G: uint8((col >> 5 & 0x3F) << 2),
		B: uint8((col & 0x1F) << 3),
		A: 255,
	}
	b := d.fb.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d.fb.SetRGBA(x, y, c)
		}
	}
}

func (d *Display) SetBacklight(level uint8) {
	d.backlight = level
}

// Frame returns the current framebuffer for presentation.
func (d *Display) Frame() *image.RGBA { return d.fb }

// Backlight returns the last level set by the power policy.
func (d *Display) Backlight() uint8 { return d.backlight }
