package ui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

// swap mimics the panel byte order the renderer emits.
func swap(c uint16) uint16 { return c>>8 | c<<8 }

func Test_Display_WritePreswapped(t *testing.T) {
	t.Run("unpacks RGB565 at the window origin", func(t *testing.T) {
		d := NewDisplay()
		d.SetWindow(8, 0, 4, 2)

		d.WritePreswapped([]uint16{swap(0xF800), swap(0x07E0), swap(0x001F)})

		assert.Equal(t, color.RGBA{R: 0xF8, A: 255}, d.fb.RGBAAt(8, 0))
		assert.Equal(t, color.RGBA{G: 0xFC, A: 255}, d.fb.RGBAAt(9, 0))
		assert.Equal(t, color.RGBA{B: 0xF8, A: 255}, d.fb.RGBAAt(10, 0))
	})

	t.Run("cursor wraps at the window width", func(t *testing.T) {
		d := NewDisplay()
		d.SetWindow(0, 0, 2, 2)

		d.WritePreswapped([]uint16{swap(0xF800), swap(0xF800), swap(0x001F)})

		assert.Equal(t, color.RGBA{B: 0xF8, A: 255}, d.fb.RGBAAt(0, 1),
			"third pixel starts the second row")
	})

	t.Run("cursor wraps back to the window top", func(t *testing.T) {
		d := NewDisplay()
		d.SetWindow(0, 0, 1, 2)

		d.WritePreswapped([]uint16{swap(0xF800), swap(0xF800), swap(0x001F)})

		assert.Equal(t, color.RGBA{B: 0xF8, A: 255}, d.fb.RGBAAt(0, 0))
	})

	t.Run("SetWindow resets the cursor", func(t *testing.T) {
		d := NewDisplay()
		d.SetWindow(0, 0, 4, 4)
		d.WritePreswapped([]uint16{swap(0xF800), swap(0xF800)})

		d.SetWindow(0, 0, 4, 4)
		d.WritePreswapped([]uint16{swap(0x001F)})

		assert.Equal(t, color.RGBA{B: 0xF8, A: 255}, d.fb.RGBAAt(0, 0))
	})
}

func Test_Display_Fill(t *testing.T) {
	d := NewDisplay()
	d.Fill(0xF800)

	assert.Equal(t, color.RGBA{R: 0xF8, A: 255}, d.fb.RGBAAt(0, 0))
	b := d.fb.Bounds()
	assert.Equal(t, color.RGBA{R: 0xF8, A: 255}, d.fb.RGBAAt(b.Max.X-1, b.Max.Y-1))
}

func Test_Display_Backlight(t *testing.T) {
	d := NewDisplay()
	assert.EqualValues(t, 255, d.Backlight())
	d.SetBacklight(64)
	assert.EqualValues(t, 64, d.Backlight())
}
