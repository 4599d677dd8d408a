package main

import (
	"flag"
	"log"
	"os"

	"github.com/pkg/profile"

	"github.com/nevisdale/pactic/internal/audio"
	"github.com/nevisdale/pactic/internal/pac"
	"github.com/nevisdale/pactic/internal/rom"
	"github.com/nevisdale/pactic/internal/ui"
)

func main() {
	romDir := flag.String("roms", "roms", "directory with the Pac-Man ROM set")
	moviePath := flag.String("movie", "", "MJPEG stream played on attract-mode entry")
	mute := flag.Bool("mute", false, "start with audio muted")
	profileCPU := flag.Bool("profile", false, "write a CPU profile to the current directory")
	flag.Parse()

	if *profileCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	set, err := rom.LoadSet(*romDir)
	if err != nil {
		log.Fatalf("couldn't load ROM set: %s", err)
	}

	var movie []byte
	if *moviePath != "" {
		movie, err = os.ReadFile(*moviePath)
		if err != nil {
			log.Fatalf("couldn't read movie: %s", err)
		}
	}

	disp := ui.NewDisplay()
	snd, err := audio.NewSink()
	if err != nil {
		log.Fatalf("couldn't open audio: %s", err)
	}
	defer snd.Close()
	if *mute {
		snd.ToggleMute()
	}

	m, err := pac.NewMachine(pac.Config{
		ROM:       set.Program,
		Tiles:     set.Tiles,
		Sprites:   set.Sprites,
		Palette:   set.Palette,
		Wavetable: set.Wavetable,
		Cutscene:  movie,
		Display:   disp,
		Audio:     snd,
		Tilt:      ui.KeyTilt{},
	})
	if err != nil {
		log.Fatalf("couldn't create machine: %s", err)
	}

	// The instruction interpreter is a collaborator, not part of the
	// board core: any Z80 implementing pac.CPU plugs in here against
	// m.Bus() and m.Ports(). Until one is attached we run a scripted
	// core that exercises the video and sound paths.
	m.AttachCPU(newDemoCore(m.Bus()))
	m.Reset()

	if err := ui.RunUI(ui.New(m, disp, snd)); err != nil {
		log.Fatalf("ui stopped: %s", err)
	}
}
