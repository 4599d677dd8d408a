package rom

// The graphics ROMs store 2bpp planar data in the original chip's
// peculiar bit order. Decoding follows the board schematics: each pixel
// takes one bit from the low nibble and one from the high nibble of the
// addressed byte, selected by the scanline within a 4-line group.

const (
	tileCount   = 256
	tileBytes   = 16
	spriteCount = 64
	spriteBytes = 64
)

// tilePixel extracts the 2-bit pixel at (x,y) of a 16-byte tile image.
func tilePixel(data []byte, x, y int) uint8 {
	b := data[15-x-2*(y&4)]
	var p uint8
	if b&(0x08>>(y&3)) != 0 {
		p |= 1
	}
	if b&(0x80>>(y&3)) != 0 {
		p |= 2
	}
	return p
}

// DecodeTiles converts the tile ROM into 256 tiles of 8 packed rows,
// 2 bits per pixel, pixel 0 in the low bits.
func DecodeTiles(raw []byte) []uint16 {
	out := make([]uint16, 0, tileCount*8)
	for t := 0; t < tileCount; t++ {
		data := raw[t*tileBytes : (t+1)*tileBytes]
		for y := 0; y < 8; y++ {
			var row uint16
			for x := 0; x < 8; x++ {
				row = row>>2 | uint16(tilePixel(data, x, y))<<14
			}
			out = append(out, row)
		}
	}
	return out
}

// spritePixel extracts the 2-bit pixel at (x,y) of a 64-byte sprite
// image, before the row rotation.
func spritePixel(data []byte, x, y int) uint8 {
	idx := (y&8)<<1 + ((x&8)^8)<<2 + (7 - x&7) + 2*(y&4)
	if idx >= len(data) {
		return 0
	}
	var p uint8
	if data[idx]&(0x08>>(y&3)) != 0 {
		p |= 1
	}
	if data[idx]&(0x80>>(y&3)) != 0 {
		p |= 2
	}
	return p
}

// DecodeSprites converts the sprite ROM into packed 32-bit rows for all
// four flip variants, ordered none / flip-Y / flip-X / both to match the
// 2-bit flip field in the sprite attributes.
func DecodeSprites(raw []byte) []uint32 {
	// decode once into pixel form; the ROM stores the bottom four rows
	// first, so rotate them back to the top
	pixels := make([][16][16]uint8, spriteCount)
	for s := 0; s < spriteCount; s++ {
		data := raw[s*spriteBytes : (s+1)*spriteBytes]
		var img [16][16]uint8
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				img[y][x] = spritePixel(data, x, y)
			}
		}
		var rot [16][16]uint8
		copy(rot[:12], img[4:])
		copy(rot[12:], img[:4])
		pixels[s] = rot
	}

	out := make([]uint32, 0, 4*spriteCount*16)
	for mode := 0; mode < 4; mode++ {
		flipY := mode&1 != 0
		flipX := mode&2 != 0
		for s := 0; s < spriteCount; s++ {
			for r := 0; r < 16; r++ {
				y := r
				if flipY {
					y = 15 - r
				}
				var row uint32
				for x := 0; x < 16; x++ {
					p := uint32(pixels[s][y][x])
					if flipX {
						row = row<<2 | p
					} else {
						row = row>>2 | p<<30
					}
				}
				out = append(out, row)
			}
		}
	}
	return out
}

// DecodePalette resolves the two color PROMs into 64 palettes of 4
// RGB565 colors. The base colors use the board's resistor weighting;
// entry 0 of every palette is forced black since the renderer treats it
// as transparent.
func DecodePalette(colorPROM, palettePROM []byte) []uint16 {
	var base [32]uint16
	for i := range base {
		v := colorPROM[i]
		r := int(v>>0&1)*0x21 + int(v>>1&1)*0x47 + int(v>>2&1)*0x97
		g := int(v>>3&1)*0x21 + int(v>>4&1)*0x47 + int(v>>5&1)*0x97
		b := int(v>>6&1)*0x51 + int(v>>7&1)*0xAE
		base[i] = uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	}

	out := make([]uint16, 64*4)
	for pal := 0; pal < 64; pal++ {
		for c := 1; c < 4; c++ {
			ref := palettePROM[pal*4+c] & 0x1F
			out[pal*4+c] = base[ref]
		}
	}
	return out
}

// DecodeWavetable converts the two sound PROMs (8 waveforms of 32
// 4-bit samples each) into signed samples centered the way the original
// DAC was biased.
func DecodeWavetable(prom1, prom2 []byte) []int8 {
	out := make([]int8, 0, 16*32)
	for _, prom := range [][]byte{prom1, prom2} {
		for i := 0; i < 8*32; i++ {
			out = append(out, int8(prom[i]&0x0F)-7)
		}
	}
	return out
}
