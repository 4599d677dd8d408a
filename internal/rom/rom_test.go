package rom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeROM(t *testing.T, dir, name string, size int) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644)
	assert.NoError(t, err)
}

func writeCommonROMs(t *testing.T, dir string) {
	t.Helper()
	writeROM(t, dir, "pacman.5e", tileROMSize)
	writeROM(t, dir, "pacman.5f", spriteROMSize)
	writeROM(t, dir, "82s123.7f", colorPROMSize)
	writeROM(t, dir, "82s126.4a", palettePROMSize)
	writeROM(t, dir, "82s126.1m", soundPROMSize)
	writeROM(t, dir, "82s126.3m", soundPROMSize)
}

func Test_LoadSet(t *testing.T) {
	t.Run("pacman set", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range pacmanProgram {
			writeROM(t, dir, name, programBankSize)
		}
		writeCommonROMs(t, dir)

		set, err := LoadSet(dir)
		assert.NoError(t, err)
		assert.Len(t, set.Program, 4*programBankSize)
		assert.Len(t, set.Tiles, tileCount*8)
		assert.Len(t, set.Sprites, 4*spriteCount*16)
		assert.Len(t, set.Palette, 64*4)
		assert.Len(t, set.Wavetable, 16*32)
	})

	t.Run("ms pacman boot set detected by boot1", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range mspacmanProgram {
			writeROM(t, dir, name, programBankSize)
		}
		writeCommonROMs(t, dir)

		set, err := LoadSet(dir)
		assert.NoError(t, err)
		assert.Len(t, set.Program, 6*programBankSize)
	})

	t.Run("missing bank", func(t *testing.T) {
		dir := t.TempDir()
		writeROM(t, dir, "pacman.6e", programBankSize)
		writeCommonROMs(t, dir)

		_, err := LoadSet(dir)
		assert.ErrorContains(t, err, "pacman.6f")
	})

	t.Run("short image", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range pacmanProgram {
			writeROM(t, dir, name, programBankSize)
		}
		writeCommonROMs(t, dir)
		writeROM(t, dir, "pacman.5e", 16)

		_, err := LoadSet(dir)
		assert.ErrorContains(t, err, "pacman.5e")
	})
}
