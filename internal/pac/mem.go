package pac

// Memory map (Z80 view):
//
// $0000-$3FFF: Program ROM
//   Ms. Pac-Man boot sets carry 24KB; only the first 16KB sits here,
//   the rest is reached through the auxiliary window below.
//
// $4000-$43FF: Video RAM (tile indices, scrambled scan order)
// $4400-$47FF: Color RAM (6-bit palette index per tile)
// $4800-$4FEF: Work RAM
// $4FF0-$4FFF: Sprite attributes (code/flip + color, 8 slots)
//
// $5000-$50FF: I/O
//   $5000:        read IN0 (joystick + coin, active low)
//                 write interrupt enable (bit 0)
//   $5040:        read IN1 (start button, active low)
//   $5040-$505F:  write sound registers (low nibble stored)
//   $5060-$506F:  write sprite positions (second attribute window)
//   $5080:        read DIP switches
//
// $8000-$9FFF: Auxiliary ROM window, aliases rom[addr-$4000]
//   (Ms. Pac-Man patch code; open bus on a 16KB set)
//
// Everything else reads as $FF and drops writes: the original board has
// no fault logic, unclaimed addresses float high.
const (
	memSizeBytes = 0x2000

	memBase       = 0x4000
	cramOffset    = 0x0400
	spriteOffset  = 0x0FF0
	sprite2Offset = 0x1060

	ioBase    = 0x5000
	ioEnd     = 0x5100
	portIN0   = 0x5000
	portIN1   = 0x5040
	portDIP   = 0x5080
	irqEnAddr = 0x5000
	sndBase   = 0x5040
	sndEnd    = 0x5060
	spr2Base  = 0x5060
	spr2End   = 0x5070

	auxRomBase = 0x8000
	auxRomEnd  = 0xA000
	auxRomBias = 0x4000

	// 3 lives, bonus at 10000, upright cabinet.
	dipDefault = 0xC9

	openBus = 0xFF
)

// Memory is the sole arbiter between the CPU address space and storage.
// It owns the unified RAM block and the interrupt latches; sound-register
// writes are routed to the synthesizer, port reads to the input state.
type Memory struct {
	rom []uint8
	ram [memSizeBytes]uint8

	snd *WSG
	in  *Input

	irqEnable uint8
	irqVector uint8
}

func NewMemory(rom []uint8, snd *WSG, in *Input) *Memory {
	return &Memory{rom: rom, snd: snd, in: in}
}

func (m *Memory) Reset() {
	for i := range m.ram {
		m.ram[i] = 0
	}
	m.irqEnable = 0
	m.irqVector = 0
}

func (m *Memory) Read8(addr uint16) uint8 {
	switch {
	// program ROM, the overwhelmingly common case
	case addr < memBase:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return openBus
	// unified VRAM/CRAM/work RAM/sprite block
	case addr < ioBase:
		return m.ram[addr-memBase]
	// I/O ports
	case addr < ioEnd:
		switch addr {
		case portIN0:
			return m.in.ReadIN0()
		case portIN1:
			return m.in.ReadIN1()
		case portDIP:
			return dipDefault
		}
		return openBus
	// auxiliary ROM window
	case addr >= auxRomBase && addr < auxRomEnd:
		if off := int(addr) - auxRomBias; off < len(m.rom) {
			return m.rom[off]
		}
		return openBus
	}
	return openBus
}

func (m *Memory) Write8(addr uint16, data uint8) {
	addr &= 0x7FFF // A15 is not decoded

	switch {
	case addr >= memBase && addr < ioBase:
		m.ram[addr-memBase] = data
	case addr >= ioBase && addr < ioEnd:
		switch {
		// second sprite window (positions) lands in the unified block
		case addr >= spr2Base && addr < spr2End:
			m.ram[addr-memBase] = data
		case addr == irqEnAddr:
			m.irqEnable = data & 1
		case addr >= sndBase && addr < sndEnd:
			m.snd.WriteReg(uint8(addr-sndBase), data)
		}
		// remaining I/O writes (flip screen, lamps, coin counter) are
		// not wired on this board
	}
	// writes outside every window are dropped, no fault
}

// In implements the Z80 I/O-port read: nothing drives the data bus.
func (m *Memory) In(port uint16) uint8 {
	return openBus
}

// Out latches the vblank interrupt vector regardless of port number;
// the board decodes port 0 only but nothing else listens.
func (m *Memory) Out(port uint16, data uint8) {
	m.irqVector = data
}

// IRQEnabled reports the state of the interrupt-enable latch.
func (m *Memory) IRQEnabled() bool { return m.irqEnable == 1 }

// IRQVector returns the last value latched by an I/O write.
func (m *Memory) IRQVector() uint8 { return m.irqVector }

// RAM exposes the unified block read-only for the renderer and for game
// state inspection.
func (m *Memory) RAM() []uint8 { return m.ram[:] }

// WriteRAM stores directly into the unified block, bypassing the bus
// decode. Used by the credit-reset operation.
func (m *Memory) WriteRAM(offset uint16, data uint8) {
	m.ram[offset&(memSizeBytes-1)] = data
}
