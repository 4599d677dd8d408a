package pac

// Namco WSG: 3-voice wavetable sound generator.
//
// Register layout (32 bytes, low nibbles only):
//   $05/$0A/$0F:        waveform select, voice 0/1/2
//   $10:                frequency[3:0], voice 0 only
//   $11-$14:            frequency[7:4]..[19:16], voice 0
//   $16-$19, $1B-$1E:   frequency nibbles, voices 1 and 2
//   $15/$1A/$1F:        volume, voice 0/1/2
//
// Voice 0 has 20 bits of frequency, the other two 16 (their low nibble
// is hardwired to zero).
const (
	numVoices = 3

	// samples per waveform and waveform count in the sound PROMs
	waveSize  = 32
	waveCount = 16

	soundRegCount = 32

	// empirically tuned on the reference hardware; the sum of three
	// voices at full volume is roughly +-512 before the gain
	mixGain = 48

	regWaveBase = 0x05
	regFreqBase = 0x10
	regVolBase  = 0x15
	regStride   = 5
)

var silentWave [waveSize]int8

type voice struct {
	cnt  uint32 // free-running phase accumulator
	freq uint32
	wave []int8
	vol  uint8
}

// WSG owns the sound register file and the per-voice state rebuilt from
// it on every render pass. Phase accumulators persist across parses.
type WSG struct {
	regs      [soundRegCount]uint8
	voices    [numVoices]voice
	wavetable []int8 // waveCount * waveSize signed samples
}

// NewWSG creates a synthesizer over the given wavetable. A nil or short
// wavetable leaves every voice on the silent waveform.
func NewWSG(wavetable []int8) *WSG {
	w := &WSG{wavetable: wavetable}
	for ch := range w.voices {
		w.voices[ch].wave = silentWave[:]
	}
	return w
}

// WriteReg stores the low nibble of data at reg, as the bus does.
func (w *WSG) WriteReg(reg, data uint8) {
	if reg < soundRegCount {
		w.regs[reg] = data & 0x0F
	}
}

// Regs exposes the register file for power-policy silence detection.
func (w *WSG) Regs() []uint8 { return w.regs[:] }

// Silent reports whether all three voice volumes are zero.
func (w *WSG) Silent() bool {
	for ch := 0; ch < numVoices; ch++ {
		if w.regs[ch*regStride+regVolBase]&0x0F != 0 {
			return false
		}
	}
	return true
}

// Parse rebuilds voice state from the register file. A zero volume
// silences the voice without looking at its frequency or waveform bits,
// which may hold stale garbage on real hardware.
func (w *WSG) Parse() {
	for ch := 0; ch < numVoices; ch++ {
		v := &w.voices[ch]
		v.vol = w.regs[ch*regStride+regVolBase] & 0x0F

		if v.vol == 0 {
			v.freq = 0
			v.wave = silentWave[:]
			continue
		}

		freq := uint32(0)
		if ch == 0 {
			freq = uint32(w.regs[regFreqBase] & 0x0F)
		}
		freq |= uint32(w.regs[ch*regStride+regFreqBase+1]&0x0F) << 4
		freq |= uint32(w.regs[ch*regStride+regFreqBase+2]&0x0F) << 8
		freq |= uint32(w.regs[ch*regStride+regFreqBase+3]&0x0F) << 12
		freq |= uint32(w.regs[ch*regStride+regFreqBase+4]&0x0F) << 16
		v.freq = freq

		waveIdx := int(w.regs[ch*regStride+regWaveBase] & 0x0F)
		if end := (waveIdx + 1) * waveSize; end <= len(w.wavetable) {
			v.wave = w.wavetable[waveIdx*waveSize : end]
		} else {
			v.wave = silentWave[:]
		}
	}
}

// Render mixes the three voices into buf as unsigned 16-bit PCM centered
// on $8000. The (cnt>>13)&$1F extraction maps the 20-bit frequency space
// onto the 32-entry waveform.
func (w *WSG) Render(buf []uint16) {
	v0, v1, v2 := &w.voices[0], &w.voices[1], &w.voices[2]

	for i := range buf {
		v := int32(0)
		if v0.vol != 0 {
			v += int32(v0.vol) * int32(v0.wave[(v0.cnt>>13)&0x1F])
		}
		if v1.vol != 0 {
			v += int32(v1.vol) * int32(v1.wave[(v1.cnt>>13)&0x1F])
		}
		if v2.vol != 0 {
			v += int32(v2.vol) * int32(v2.wave[(v2.cnt>>13)&0x1F])
		}

		v *= mixGain
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		buf[i] = uint16(0x8000 + v)

		v0.cnt += v0.freq
		v1.cnt += v1.freq
		v2.cnt += v2.freq
	}
}
