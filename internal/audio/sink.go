// Package audio implements the machine's audio transport over an oto
// playback context.
package audio

import (
	"fmt"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	// the WSG render rate; the synth constants are tuned for it
	SampleRate = 44100

	// queued PCM slices; deeper means more latency headroom before
	// the drop policy kicks in
	queueDepth = 8
)

// Sink plays unsigned 16-bit centered PCM through oto. Queue never
// blocks the frame loop: a full queue drops the slice, matching the
// fire-and-forget contract of the codec DMA on the original board.
type Sink struct {
	ctx    *oto.Context
	player *oto.Player

	queue   chan []byte
	pending []byte

	muted   atomic.Bool
	powered atomic.Bool
}

func NewSink() (*Sink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't create audio context: %w", err)
	}
	<-ready

	s := &Sink{
		ctx:   ctx,
		queue: make(chan []byte, queueDepth),
	}
	s.powered.Store(true)

	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// Queue converts and enqueues one slice of centered PCM. The slice is
// copied; the caller may reuse it immediately.
func (s *Sink) Queue(pcm []uint16) {
	if !s.powered.Load() || s.muted.Load() {
		return
	}

	buf := make([]byte, 2*len(pcm))
	for i, v := range pcm {
		sv := int16(int32(v) - 0x8000)
		buf[2*i] = byte(sv)
		buf[2*i+1] = byte(sv >> 8)
	}

	select {
	case s.queue <- buf:
	default:
		// queue full: drop this slice rather than stall the frame
	}
}

// Read feeds the oto player. Underruns fill with silence so playback
// never stops; runs on oto's own goroutine.
func (s *Sink) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			select {
			case s.pending = <-s.queue:
			default:
				for i := n; i < len(p); i++ {
					p[i] = 0
				}
				return len(p), nil
			}
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	return n, nil
}

func (s *Sink) SetVolume(volume uint8) {
	s.player.SetVolume(float64(volume) / 255)
}

// SetPowerState models the amplifier enable line: powering down pauses
// playback and discards anything still queued.
func (s *Sink) SetPowerState(on bool) {
	if on == s.powered.Load() {
		return
	}
	s.powered.Store(on)
	if on {
		s.player.Play()
		return
	}
	s.player.Pause()
	for {
		select {
		case <-s.queue:
		default:
			return
		}
	}
}

func (s *Sink) Muted() bool { return s.muted.Load() }

func (s *Sink) ToggleMute() { s.muted.Store(!s.muted.Load()) }

func (s *Sink) Close() error {
	return s.player.Close()
}
