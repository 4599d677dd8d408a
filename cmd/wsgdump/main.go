// wsgdump renders the wavetable synthesizer offline and writes the
// result to a WAV file, for comparing against recordings of the real
// sound hardware.
package main

import (
	"flag"
	"log"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nevisdale/pactic/internal/pac"
	"github.com/nevisdale/pactic/internal/rom"
)

const sampleRate = 44100

func main() {
	romDir := flag.String("roms", "roms", "directory with the Pac-Man ROM set")
	out := flag.String("o", "wsg.wav", "output WAV file")
	seconds := flag.Float64("dur", 2, "seconds of audio to render")
	freq := flag.Uint("freq", 0x2000, "voice 0 frequency register (20 bit)")
	waveform := flag.Uint("wave", 2, "voice 0 waveform index (0-15)")
	volume := flag.Uint("vol", 15, "voice 0 volume (0-15)")
	flag.Parse()

	set, err := rom.LoadSet(*romDir)
	if err != nil {
		log.Fatalf("couldn't load ROM set: %s", err)
	}

	w := pac.NewWSG(set.Wavetable)
	w.WriteReg(0x05, uint8(*waveform))
	w.WriteReg(0x10, uint8(*freq))
	w.WriteReg(0x11, uint8(*freq>>4))
	w.WriteReg(0x12, uint8(*freq>>8))
	w.WriteReg(0x13, uint8(*freq>>12))
	w.WriteReg(0x14, uint8(*freq>>16))
	w.WriteReg(0x15, uint8(*volume))
	w.Parse()

	n := int(*seconds * sampleRate)
	pcm := make([]uint16, n)
	w.Render(pcm)

	data := make([]int, n)
	for i, v := range pcm {
		data[i] = int(v) - 0x8000
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("couldn't create %s: %s", *out, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		log.Fatalf("couldn't write samples: %s", err)
	}
	if err := enc.Close(); err != nil {
		log.Fatalf("couldn't finalize wav: %s", err)
	}

	log.Printf("wrote %d samples to %s", n, *out)
}
