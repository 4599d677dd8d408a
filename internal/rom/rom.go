// Package rom loads a MAME-style Pac-Man ROM set from disk and converts
// the raw images into the packed formats the emulation core consumes.
package rom

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	programBankSize = 0x1000
	tileROMSize     = 0x1000
	spriteROMSize   = 0x1000
	colorPROMSize   = 32
	palettePROMSize = 256
	soundPROMSize   = 256
)

// Set holds one fully converted ROM set, ready to hand to the machine.
type Set struct {
	Program   []uint8
	Tiles     []uint16 // 256 tiles x 8 packed 2bpp rows
	Sprites   []uint32 // 4 flip variants x 64 sprites x 16 packed rows
	Palette   []uint16 // 64 palettes x 4 RGB565 colors
	Wavetable []int8   // 16 waveforms x 32 signed samples
}

var pacmanProgram = []string{"pacman.6e", "pacman.6f", "pacman.6h", "pacman.6j"}
var mspacmanProgram = []string{"boot1", "boot2", "boot3", "boot4", "boot5", "boot6"}

func readROM(dir, name string, size int) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", name, err)
	}
	if len(data) < size {
		return nil, fmt.Errorf("%s is %d bytes, want %d", name, len(data), size)
	}
	return data[:size], nil
}

func readProgram(dir string, banks []string) ([]uint8, error) {
	program := make([]uint8, 0, len(banks)*programBankSize)
	for _, name := range banks {
		bank, err := readROM(dir, name, programBankSize)
		if err != nil {
			return nil, err
		}
		program = append(program, bank...)
	}
	return program, nil
}

// LoadSet reads a ROM set from dir. The Ms. Pac-Man boot-ROM set is
// detected by the presence of boot1; its extra 8KB of program is reached
// through the board's auxiliary address window.
func LoadSet(dir string) (*Set, error) {
	var program []uint8
	var err error

	if _, statErr := os.Stat(filepath.Join(dir, "boot1")); statErr == nil {
		program, err = readProgram(dir, mspacmanProgram)
	} else {
		program, err = readProgram(dir, pacmanProgram)
	}
	if err != nil {
		return nil, err
	}

	tileROM, err := readROM(dir, "pacman.5e", tileROMSize)
	if err != nil {
		return nil, err
	}
	spriteROM, err := readROM(dir, "pacman.5f", spriteROMSize)
	if err != nil {
		return nil, err
	}
	colorPROM, err := readROM(dir, "82s123.7f", colorPROMSize)
	if err != nil {
		return nil, err
	}
	palettePROM, err := readROM(dir, "82s126.4a", palettePROMSize)
	if err != nil {
		return nil, err
	}
	soundPROM1, err := readROM(dir, "82s126.1m", soundPROMSize)
	if err != nil {
		return nil, err
	}
	soundPROM2, err := readROM(dir, "82s126.3m", soundPROMSize)
	if err != nil {
		return nil, err
	}

	return &Set{
		Program:   program,
		Tiles:     DecodeTiles(tileROM),
		Sprites:   DecodeSprites(spriteROM),
		Palette:   DecodePalette(colorPROM, palettePROM),
		Wavetable: DecodeWavetable(soundPROM1, soundPROM2),
	}, nil
}
