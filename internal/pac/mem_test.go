package pac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestMemory(romSize int) *Memory {
	rom := make([]uint8, romSize)
	for i := range rom {
		rom[i] = uint8(i)
	}
	return NewMemory(rom, NewWSG(nil), NewInput())
}

func Test_MemoryRead(t *testing.T) {
	t.Run("program ROM window", func(t *testing.T) {
		m := newTestMemory(0x4000)
		assert.Equal(t, uint8(0x00), m.Read8(0x0000))
		assert.Equal(t, uint8(0x34), m.Read8(0x1234))
	})

	t.Run("unified block window", func(t *testing.T) {
		m := newTestMemory(0x4000)
		m.Write8(0x4800, 0xAB)
		assert.Equal(t, uint8(0xAB), m.Read8(0x4800))
	})

	t.Run("input and dip ports", func(t *testing.T) {
		m := newTestMemory(0x4000)
		assert.Equal(t, uint8(0xFF), m.Read8(0x5000), "IN0 idle is all ones")
		assert.Equal(t, uint8(0xFF), m.Read8(0x5040), "IN1 idle is all ones")
		assert.Equal(t, uint8(dipDefault), m.Read8(0x5080))
	})

	t.Run("unmapped addresses float high", func(t *testing.T) {
		m := newTestMemory(0x4000)
		assert.Equal(t, uint8(0xFF), m.Read8(0x5001))
		assert.Equal(t, uint8(0xFF), m.Read8(0x7000))
		assert.Equal(t, uint8(0xFF), m.Read8(0xFFFF))
	})

	t.Run("auxiliary window aliases the ROM image", func(t *testing.T) {
		m := newTestMemory(0x6000)
		assert.Equal(t, m.rom[0x4000], m.Read8(0x8000))
		assert.Equal(t, m.rom[0x5FFF], m.Read8(0x9FFF))
	})

	t.Run("auxiliary window on a short ROM floats high", func(t *testing.T) {
		m := newTestMemory(0x4000)
		assert.Equal(t, uint8(0xFF), m.Read8(0x8000))
	})
}

func Test_MemoryWrite(t *testing.T) {
	t.Run("top address line is ignored", func(t *testing.T) {
		m := newTestMemory(0x4000)
		m.Write8(0x4800|0x8000, 0x55)
		assert.Equal(t, uint8(0x55), m.Read8(0x4800),
			"base+0x8000 must store to the same masked location")
	})

	t.Run("sprite attribute window stores raw", func(t *testing.T) {
		m := newTestMemory(0x4000)
		m.Write8(0x4FF0, 0xC7)
		assert.Equal(t, uint8(0xC7), m.RAM()[spriteOffset])
	})

	t.Run("second sprite window stores raw", func(t *testing.T) {
		m := newTestMemory(0x4000)
		m.Write8(0x5060, 0x99)
		m.Write8(0x506F, 0x11)
		assert.Equal(t, uint8(0x99), m.RAM()[sprite2Offset])
		assert.Equal(t, uint8(0x11), m.RAM()[sprite2Offset+0x0F])
	})

	t.Run("interrupt enable keeps bit 0 only", func(t *testing.T) {
		m := newTestMemory(0x4000)
		m.Write8(0x5000, 0xFF)
		assert.True(t, m.IRQEnabled())
		m.Write8(0x5000, 0xFE)
		assert.False(t, m.IRQEnabled())
	})

	t.Run("sound registers keep the low nibble", func(t *testing.T) {
		m := newTestMemory(0x4000)
		m.Write8(0x5045, 0xAB)
		assert.Equal(t, uint8(0x0B), m.snd.Regs()[0x05])
	})

	t.Run("ROM and unmapped writes are dropped", func(t *testing.T) {
		m := newTestMemory(0x4000)
		m.Write8(0x0000, 0x12)
		m.Write8(0x5080, 0x12)
		m.Write8(0x7FFF, 0x12)
		assert.Equal(t, uint8(0x00), m.Read8(0x0000))
	})
}

func Test_MemoryPorts(t *testing.T) {
	m := newTestMemory(0x4000)

	assert.Equal(t, uint8(0xFF), m.In(0), "port reads float")

	m.Out(0, 0xFA)
	assert.Equal(t, uint8(0xFA), m.IRQVector())
}

func Test_MemoryReset(t *testing.T) {
	m := newTestMemory(0x4000)
	m.Write8(0x4800, 0x77)
	m.Write8(0x5000, 0x01)
	m.Out(0, 0x42)

	m.Reset()

	assert.Equal(t, uint8(0x00), m.Read8(0x4800))
	assert.False(t, m.IRQEnabled())
	assert.Equal(t, uint8(0x00), m.IRQVector())
}
