package pac

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// encodeFrame produces one real JPEG frame for stream fixtures.
func encodeFrame(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0xFF, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, nil)
	assert.NoError(t, err)
	return buf.Bytes()
}

func Test_NextFrame(t *testing.T) {
	frame1 := []byte{0xFF, 0xD8, 0x01, 0x02, 0xFF, 0xD9}
	frame2 := []byte{0xFF, 0xD8, 0x03, 0xFF, 0xD9}
	stream := append([]byte{0x00, 0x11}, frame1...)
	stream = append(stream, 0x22, 0x33)
	stream = append(stream, frame2...)

	frame, next, ok := nextFrame(stream, 0)
	assert.True(t, ok)
	assert.Equal(t, frame1, frame)

	frame, next, ok = nextFrame(stream, next)
	assert.True(t, ok)
	assert.Equal(t, frame2, frame)

	_, _, ok = nextFrame(stream, next)
	assert.False(t, ok, "stream exhausted")

	t.Run("missing end marker", func(t *testing.T) {
		_, _, ok := nextFrame([]byte{0xFF, 0xD8, 0x01, 0x02}, 0)
		assert.False(t, ok)
	})

	t.Run("empty stream", func(t *testing.T) {
		_, _, ok := nextFrame(nil, 0)
		assert.False(t, ok)
	})
}

func Test_Cutscene_Play(t *testing.T) {
	t.Run("empty stream is a no-op", func(t *testing.T) {
		disp := &fakeDisplay{}
		assert.NoError(t, NewCutscene(nil, disp).Play())
		assert.Empty(t, disp.fills)
		assert.Empty(t, disp.windows)
	})

	t.Run("plays every frame when on schedule", func(t *testing.T) {
		stream := append(encodeFrame(t, 16, 8), encodeFrame(t, 16, 8)...)
		disp := &fakeDisplay{}
		c := NewCutscene(stream, disp)

		// frozen clock: never behind schedule
		c.now = func() time.Time { return time.Unix(0, 0) }
		slept := 0
		c.sleep = func(time.Duration) { slept++ }

		assert.NoError(t, c.Play())

		assert.Equal(t, []uint16{0x0000}, disp.fills, "screen cleared before playback")
		assert.Equal(t, [][4]int{{0, 0, 16, 8}, {0, 0, 16, 8}}, disp.windows)
		assert.Len(t, disp.writes, 2*8, "one write per scanline")
		assert.Len(t, disp.writes[0], 16)
		assert.Equal(t, 2, slept)
	})

	t.Run("oversized frames clamp to the panel", func(t *testing.T) {
		disp := &fakeDisplay{}
		c := NewCutscene(encodeFrame(t, DisplayWidth+32, DisplayHeight+32), disp)
		c.now = func() time.Time { return time.Unix(0, 0) }
		c.sleep = func(time.Duration) {}

		assert.NoError(t, c.Play())
		assert.Equal(t, [][4]int{{0, 0, DisplayWidth, DisplayHeight}}, disp.windows)
	})

	t.Run("frames behind schedule are dropped undecoded", func(t *testing.T) {
		stream := append(encodeFrame(t, 16, 8), encodeFrame(t, 16, 8)...)
		disp := &fakeDisplay{}
		c := NewCutscene(stream, disp)

		// a clock racing ahead leaves every frame over a period late
		clk := time.Unix(0, 0)
		c.now = func() time.Time {
			clk = clk.Add(time.Second)
			return clk
		}
		c.sleep = func(time.Duration) {}

		assert.NoError(t, c.Play())
		assert.Empty(t, disp.windows, "late frames never reach the display")
	})

	t.Run("corrupt frame aborts playback", func(t *testing.T) {
		stream := []byte{0xFF, 0xD8, 0x00, 0x01, 0x02, 0xFF, 0xD9}
		disp := &fakeDisplay{}
		c := NewCutscene(stream, disp)
		c.now = func() time.Time { return time.Unix(0, 0) }
		c.sleep = func(time.Duration) {}

		assert.Error(t, c.Play())
	})
}
