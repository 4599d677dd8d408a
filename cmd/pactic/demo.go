package main

import "github.com/nevisdale/pactic/internal/pac"

// demoCore is a stand-in pac.CPU: a scripted bus master that paints the
// tile set, bounces a sprite across the screen and sweeps a tone on
// voice 0. It exists so the board pipeline can be exercised end to end
// without an instruction interpreter attached.
type demoCore struct {
	bus   pac.ReadWriter
	frame int
}

func newDemoCore(bus pac.ReadWriter) *demoCore {
	return &demoCore{bus: bus}
}

func (c *demoCore) Reset() {
	c.frame = 0

	// tile index grid straight through VRAM; the scrambled scan order
	// turns it into a recognizable test pattern
	for i := 0; i < 0x400; i++ {
		c.bus.Write8(uint16(0x4000+i), uint8(i))
		c.bus.Write8(uint16(0x4400+i), uint8(i>>4)&63)
	}

	// sprite slot 0
	c.bus.Write8(0x4FF0, 0x00<<2) // code 0, no flips
	c.bus.Write8(0x4FF1, 1)       // color

	// mark attract mode so the power policy has something to watch
	c.bus.Write8(0x4E00, 0x01)
}

func (c *demoCore) Execute(cycles int) {
	c.frame++

	// bounce the sprite diagonally
	x := uint8(c.frame % 224)
	y := uint8((c.frame * 2) % 256)
	c.bus.Write8(0x5060, x)
	c.bus.Write8(0x5061, y)

	// voice 0: slow frequency sweep on waveform 2
	freq := uint32(0x800 + (c.frame%512)*16)
	c.bus.Write8(0x5045, 2) // waveform
	c.bus.Write8(0x5050, uint8(freq)&0x0F)
	c.bus.Write8(0x5051, uint8(freq>>4)&0x0F)
	c.bus.Write8(0x5052, uint8(freq>>8)&0x0F)
	c.bus.Write8(0x5053, uint8(freq>>12)&0x0F)
	c.bus.Write8(0x5054, uint8(freq>>16)&0x0F)
	c.bus.Write8(0x5055, 8) // volume
}

func (c *demoCore) Interrupt(vector uint8) {}
