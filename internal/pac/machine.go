package pac

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	// Z80 at 3.072 MHz, one display refresh at 60 Hz
	cyclesPerFrame = 51200
	framePeriod    = time.Second / 60

	// amplifier powers down after this many consecutive silent frames
	silenceFrames = 120
	// backlight dims after this many consecutive non-playing frames
	idleDimFrames = 1800

	backlightActive = 128
	backlightIdle   = 64

	// samples per audio refill slice at 44.1 kHz
	audioSliceSize = 64
)

// Config carries the load-time assets and the transport collaborators.
// Everything is supplied once before the first tick; no hot reload.
type Config struct {
	ROM       []uint8
	Tiles     []uint16
	Sprites   []uint32
	Palette   []uint16
	Wavetable []int8

	// optional MJPEG stream played on attract-mode entry
	Cutscene []byte

	Display DisplayTransport
	Audio   AudioTransport
	Tilt    TiltSource
	Perf    PerfController
}

// Machine composes the board: memory and I/O decode, renderer,
// synthesizer, input and the power/attract state machines, driven by a
// fixed-rate frame tick.
type Machine struct {
	cpu   CPU
	mem   *Memory
	video *Renderer
	snd   *WSG
	in    *Input
	state *GameState

	disp  DisplayTransport
	audio AudioTransport
	tilt  TiltSource
	perf  PerfController

	cutscene []byte

	trigger   bool
	sampleBuf []uint16

	silentFor    uint32
	idleFor      uint32
	audioPowered bool
	lowPower     bool
	brightness   uint8

	frameCount uint64
}

func NewMachine(cfg Config) (*Machine, error) {
	if len(cfg.ROM) == 0 {
		return nil, fmt.Errorf("no ROM image")
	}
	if cfg.Display == nil {
		return nil, fmt.Errorf("no display transport")
	}
	if cfg.Audio == nil {
		return nil, fmt.Errorf("no audio transport")
	}

	snd := NewWSG(cfg.Wavetable)
	in := NewInput()

	video, err := NewRenderer(cfg.Tiles, cfg.Sprites, cfg.Palette, cfg.Display)
	if err != nil {
		return nil, fmt.Errorf("couldn't create renderer: %w", err)
	}

	m := &Machine{
		mem:          NewMemory(cfg.ROM, snd, in),
		video:        video,
		snd:          snd,
		in:           in,
		state:        NewGameState(),
		disp:         cfg.Display,
		audio:        cfg.Audio,
		tilt:         cfg.Tilt,
		perf:         cfg.Perf,
		cutscene:     cfg.Cutscene,
		sampleBuf:    make([]uint16, audioSliceSize),
		audioPowered: true,
		brightness:   backlightActive,
	}
	m.disp.SetBacklight(m.brightness)
	return m, nil
}

// Bus returns the memory side of the CPU contract.
func (m *Machine) Bus() ReadWriter { return m.mem }

// Ports returns the I/O side of the CPU contract.
func (m *Machine) Ports() IOPorts { return m.mem }

// AttachCPU wires the instruction interpreter. Must be called before the
// first tick; the machine renders but executes nothing without one.
func (m *Machine) AttachCPU(cpu CPU) { m.cpu = cpu }

func (m *Machine) Reset() {
	m.mem.Reset()
	m.state.Reset()
	m.frameCount = 0
	m.silentFor = 0
	m.idleFor = 0
	if m.cpu != nil {
		m.cpu.Reset()
	}
}

// Trigger sets the state of the single coin/start control for the next
// tick.
func (m *Machine) Trigger(pressed bool) { m.trigger = pressed }

// Memory exposes the unified block for game-state inspection.
func (m *Machine) Memory() []uint8 { return m.mem.RAM() }

// Lives returns the remaining-lives counter from game RAM.
func (m *Machine) Lives() uint8 { return Lives(m.mem.RAM()) }

// GameMode returns the coarse machine-state byte from game RAM.
func (m *Machine) GameMode() uint8 { return GameMode(m.mem.RAM()) }

// ClearCredits zeroes the credit counters in game RAM.
func (m *Machine) ClearCredits() { ClearCredits(m.mem) }

func (m *Machine) refillAudio() {
	m.snd.Parse()
	m.snd.Render(m.sampleBuf)
	m.audio.Queue(m.sampleBuf)
}

// Tick runs one frame: a CPU cycle budget, the render pass with
// interleaved audio refills, input sampling, the power policies, the
// vblank interrupt and the attract detector. Pacing is the caller's
// concern; Run adds it.
func (m *Machine) Tick() {
	if m.cpu != nil {
		m.cpu.Execute(cyclesPerFrame)
	}

	ram := m.mem.RAM()

	m.video.RenderFrame(ram, m.refillAudio)
	m.refillAudio()

	m.in.Update(m.trigger, m.tilt)

	m.updatePower(ram)

	if m.mem.IRQEnabled() && m.cpu != nil {
		m.cpu.Interrupt(m.mem.IRQVector())
	}

	if m.state.CheckAttractStart(ram) {
		m.playCutscene()
		// leave no credits behind so attract runs its demo instead
		// of sitting on the "push start" screen
		ClearCredits(m.mem)
	}

	m.frameCount++
}

func (m *Machine) playCutscene() {
	if len(m.cutscene) == 0 {
		return
	}
	if m.perf != nil {
		m.perf.SetHighPerformance(true)
	}
	if err := NewCutscene(m.cutscene, m.disp).Play(); err != nil {
		log.Printf("cutscene aborted: %v", err)
	}
	if m.perf != nil {
		m.perf.SetHighPerformance(!m.lowPower)
	}
}

func (m *Machine) updatePower(ram []uint8) {
	playing := Playing(ram)

	// amplifier gating: mute wins, then consecutive silence
	switch {
	case m.audio.Muted():
		if m.audioPowered {
			m.audio.SetPowerState(false)
			m.audioPowered = false
		}
		m.silentFor = 0
	case m.snd.Silent():
		m.silentFor++
		if m.silentFor == silenceFrames && m.audioPowered {
			m.audio.SetPowerState(false)
			m.audioPowered = false
		}
	default:
		if !m.audioPowered {
			m.audio.SetPowerState(true)
			m.audioPowered = true
		}
		m.silentFor = 0
	}

	// compute throughput: high while playing, low in attract. Single
	// threshold, re-evaluated every tick.
	if m.perf != nil {
		if playing && m.lowPower {
			m.perf.SetHighPerformance(true)
			m.lowPower = false
		} else if !playing && !m.lowPower {
			m.perf.SetHighPerformance(false)
			m.lowPower = true
		}
	}

	// backlight dimming
	if playing {
		m.idleFor = 0
	} else {
		m.idleFor++
	}
	if m.idleFor >= idleDimFrames {
		if m.brightness != backlightIdle {
			m.brightness = backlightIdle
			m.disp.SetBacklight(m.brightness)
		}
	} else if m.brightness != backlightActive {
		m.brightness = backlightActive
		m.disp.SetBacklight(m.brightness)
	}
}

// Run ticks the machine at the display refresh rate until the context is
// cancelled. Front ends that pace frames themselves call Tick directly.
func (m *Machine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		m.Tick()

		if elapsed := time.Since(start); elapsed < framePeriod {
			time.Sleep(framePeriod - elapsed)
		}
	}
}
