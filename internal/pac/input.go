package pac

import "time"

// Button bits as the orchestrator tracks them, before encoding into the
// active-low port images.
const (
	BtnUp uint8 = 1 << iota
	BtnDown
	BtnLeft
	BtnRight
	BtnCoin
)

// Tilt hysteresis band: a direction latches at the high threshold and
// releases only below the low one, so a value wobbling in between never
// chatters.
const (
	tiltThresholdOn  = 25
	tiltThresholdOff = 15
)

// Coin/start sequencer timing. One physical trigger emulates the two
// discrete signals the original cabinet wiring expects: a coin pulse,
// a pause for the game to register the credit, then a start press.
const (
	coinHoldTime     = 100 * time.Millisecond
	creditSettleTime = 500 * time.Millisecond
	startHoldTime    = 100 * time.Millisecond
)

type seqState uint8

const (
	seqIdle seqState = iota
	seqCoinAsserted
	seqCoinReleased
	seqStartAsserted
	seqAwaitRelease
)

// Input holds the per-frame input state: raw button mask, the coin/start
// sequencer and the four tilt latches. The orchestrator updates it once
// per tick.
type Input struct {
	buttons uint8

	seq      seqState
	seqSince time.Time

	tiltUp    bool
	tiltDown  bool
	tiltLeft  bool
	tiltRight bool

	// injectable clock so sequencer tests run on simulated time
	now func() time.Time
}

func NewInput() *Input {
	return &Input{now: time.Now}
}

// Update samples the trigger and the motion sensor and advances the
// sequencer by elapsed wall time, independent of the tick rate.
func (in *Input) Update(trigger bool, tilt TiltSource) {
	in.buttons = 0
	if trigger {
		in.buttons |= BtnCoin
	}

	if tilt != nil {
		if pitch, roll, ok := tilt.Tilt(); ok {
			in.updateTilt(pitch, roll)
		}
	}
	if in.tiltUp {
		in.buttons |= BtnUp
	}
	if in.tiltDown {
		in.buttons |= BtnDown
	}
	if in.tiltLeft {
		in.buttons |= BtnLeft
	}
	if in.tiltRight {
		in.buttons |= BtnRight
	}

	in.advanceSequencer()
}

func (in *Input) advanceSequencer() {
	now := in.now()
	switch in.seq {
	case seqIdle:
		if in.buttons&BtnCoin != 0 {
			in.seq = seqCoinAsserted
			in.seqSince = now
		}
	case seqCoinAsserted:
		if now.Sub(in.seqSince) > coinHoldTime {
			in.seq = seqCoinReleased
			in.seqSince = now
		}
	case seqCoinReleased:
		if now.Sub(in.seqSince) > creditSettleTime {
			in.seq = seqStartAsserted
			in.seqSince = now
		}
	case seqStartAsserted:
		if now.Sub(in.seqSince) > startHoldTime {
			in.seq = seqAwaitRelease
		}
	case seqAwaitRelease:
		if in.buttons&BtnCoin == 0 {
			in.seq = seqIdle
		}
	}
}

// updateTilt maps pitch to up/down and roll to left/right. The sensor is
// mounted so that tilting toward the player is up, hence the negations.
// Opposite directions on one axis are mutually exclusive.
func (in *Input) updateTilt(pitch, roll int8) {
	upDown := int(-pitch)

	if in.tiltUp {
		if upDown < tiltThresholdOff {
			in.tiltUp = false
		}
	} else if upDown >= tiltThresholdOn {
		in.tiltUp = true
		in.tiltDown = false
	}

	if in.tiltDown {
		if upDown > -tiltThresholdOff {
			in.tiltDown = false
		}
	} else if upDown <= -tiltThresholdOn {
		in.tiltDown = true
		in.tiltUp = false
	}

	leftRight := int(-roll)

	if in.tiltLeft {
		if leftRight > -tiltThresholdOff {
			in.tiltLeft = false
		}
	} else if leftRight <= -tiltThresholdOn {
		in.tiltLeft = true
		in.tiltRight = false
	}

	if in.tiltRight {
		if leftRight < tiltThresholdOff {
			in.tiltRight = false
		}
	} else if leftRight >= tiltThresholdOn {
		in.tiltRight = true
		in.tiltLeft = false
	}
}

// ReadIN0 returns the joystick/coin port image, active low:
// bit 0 up, bit 1 left, bit 2 right, bit 3 down, bit 5 coin.
func (in *Input) ReadIN0() uint8 {
	v := uint8(0xFF)
	if in.buttons&BtnUp != 0 {
		v &^= 0x01
	}
	if in.buttons&BtnLeft != 0 {
		v &^= 0x02
	}
	if in.buttons&BtnRight != 0 {
		v &^= 0x04
	}
	if in.buttons&BtnDown != 0 {
		v &^= 0x08
	}
	if in.seq == seqCoinAsserted {
		v &^= 0x20
	}
	return v
}

// ReadIN1 returns the start-button port image, active low: bit 5 is
// 1P START, held through the release-wait state.
func (in *Input) ReadIN1() uint8 {
	v := uint8(0xFF)
	if in.seq == seqStartAsserted || in.seq == seqAwaitRelease {
		v &^= 0x20
	}
	return v
}
