package pac

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"time"
)

// Cutscene plays a motion-JPEG stream full screen, decoupled from the
// tile renderer and the synthesizer. Playback paces itself at its own
// frame rate; a frame that is already more than one period behind
// schedule is skipped without decoding so the stream recovers sync
// instead of drifting.
type Cutscene struct {
	stream []byte
	disp   DisplayTransport
	fps    int

	now   func() time.Time
	sleep func(time.Duration)

	line []uint16
}

var jpegSOI = []byte{0xFF, 0xD8}
var jpegEOI = []byte{0xFF, 0xD9}

const cutsceneFPS = 24

func NewCutscene(stream []byte, disp DisplayTransport) *Cutscene {
	return &Cutscene{
		stream: stream,
		disp:   disp,
		fps:    cutsceneFPS,
		now:    time.Now,
		sleep:  time.Sleep,
		line:   make([]uint16, DisplayWidth),
	}
}

// nextFrame returns the next SOI..EOI slice at or after offset and the
// offset to resume scanning from.
func nextFrame(data []byte, offset int) (frame []byte, next int, ok bool) {
	if offset >= len(data) {
		return nil, offset, false
	}
	soi := bytes.Index(data[offset:], jpegSOI)
	if soi < 0 {
		return nil, len(data), false
	}
	start := offset + soi
	eoi := bytes.Index(data[start+2:], jpegEOI)
	if eoi < 0 {
		return nil, len(data), false
	}
	end := start + 2 + eoi + 2
	return data[start:end], end, true
}

func (c *Cutscene) drawFrame(frame []byte) error {
	img, err := jpeg.Decode(bytes.NewReader(frame))
	if err != nil {
		return fmt.Errorf("couldn't decode frame: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > DisplayWidth {
		w = DisplayWidth
	}
	if h > DisplayHeight {
		h = DisplayHeight
	}

	c.disp.SetWindow(0, 0, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			rgb565 := uint16(r>>8&0xF8)<<8 | uint16(g>>8&0xFC)<<3 | uint16(bl>>11)
			c.line[x] = rgb565>>8 | rgb565<<8
		}
		c.disp.WritePreswapped(c.line[:w])
	}
	c.disp.WaitDone()
	return nil
}

// Play runs the whole stream to completion, blocking the caller until
// the last frame; a decode error aborts the cutscene only.
func (c *Cutscene) Play() error {
	if len(c.stream) == 0 {
		return nil
	}

	period := time.Second / time.Duration(c.fps)
	start := c.now()

	c.disp.Fill(0x0000)

	count := 0
	for offset := 0; ; count++ {
		frame, next, ok := nextFrame(c.stream, offset)
		if !ok {
			break
		}
		offset = next

		deadline := start.Add(time.Duration(count) * period)
		late := c.now().Sub(deadline)
		if late > period {
			continue // too far behind, drop instead of decoding
		}

		if err := c.drawFrame(frame); err != nil {
			return err
		}

		if wait := deadline.Add(period).Sub(c.now()); wait > 0 {
			c.sleep(wait)
		}
	}
	return nil
}
