package pac

// ReadWriter is the byte-granular bus a CPU core drives.
type ReadWriter interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, data uint8)
}

// CPU is the instruction interpreter collaborator. The machine does not
// implement one; any Z80 core that talks to the bus through ReadWriter
// and an IOPorts can be attached.
type CPU interface {
	Reset()
	// Execute runs until at least cycles machine cycles are consumed.
	Execute(cycles int)
	// Interrupt delivers a one-shot interrupt with the given bus vector.
	Interrupt(vector uint8)
}

// IOPorts is the Z80 I/O space. The board decodes a single port write as
// the interrupt-vector latch; reads float.
type IOPorts interface {
	In(port uint16) uint8
	Out(port uint16, data uint8)
}
