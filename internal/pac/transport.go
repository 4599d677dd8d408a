package pac

// DisplayTransport is the physical display the renderer draws into.
// Transfers may run asynchronously underneath; WaitDone blocks until the
// most recently enqueued transfer has been delivered.
type DisplayTransport interface {
	// SetWindow selects the target rectangle for subsequent writes.
	SetWindow(x, y, w, h int)
	// WritePreswapped enqueues pixels already in the panel's byte order.
	WritePreswapped(pix []uint16)
	WaitDone()
	Fill(color uint16)
	SetBacklight(level uint8)
}

// AudioTransport carries rendered PCM to a codec. Queue must not block:
// if the transport's internal buffer is full the slice is dropped.
type AudioTransport interface {
	Queue(pcm []uint16)
	SetVolume(volume uint8)
	SetPowerState(on bool)
	Muted() bool
}

// TiltSource samples the motion sensor. ok reports whether a sensor is
// present; without one the tilt latches stay released.
type TiltSource interface {
	Tilt() (pitch, roll int8, ok bool)
}

// PerfController switches the host between a high and a low performance
// mode. Embedded deployments map this to CPU frequency scaling.
type PerfController interface {
	SetHighPerformance(on bool)
}
