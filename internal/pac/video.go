package pac

import "fmt"

// Native board geometry. The panel is 240x280, the board draws 224x288:
// the image is centered horizontally and the last tile row is cropped.
const (
	GameWidth  = 224
	GameHeight = 288

	DisplayWidth  = 240
	DisplayHeight = 280

	gameXOffset = (DisplayWidth - GameWidth) / 2

	tileWidth  = 8
	tileHeight = 8
	tilesX     = 28
	tilesY     = 36

	// bands actually rendered; 36 would overrun the panel by 8 lines
	renderRows = 35

	maxSprites  = 8
	spriteCodes = 64

	// audio refill cadence while streaming bands
	audioRefillRows = 12
)

type sprite struct {
	x, y  int
	code  uint8
	color uint8
	flags uint8 // bit 0: flip Y, bit 1: flip X
}

// Renderer reconstructs the raster image from the unified memory block
// and the immutable graphics tables, band by band.
type Renderer struct {
	tiles   []uint16 // 256 tiles x 8 packed 2bpp rows
	sprites []uint32 // 4 flip variants x 64 sprites x 16 packed rows
	colors  []uint16 // 64 palettes x 4, pre-swapped for the panel

	disp DisplayTransport

	// precomputed (row,col) -> VRAM offset for the scrambled scan order
	tileAddr [tilesY][tilesX]uint16

	band     [2][]uint16
	inflight [2]bool
	cur      int

	active [maxSprites]sprite
	numAct int
}

// NewRenderer validates table sizes, pre-swaps the palette for the panel
// byte order and builds the tile address table. The caller must not use
// the renderer if construction fails.
func NewRenderer(tiles []uint16, sprites []uint32, palette []uint16, disp DisplayTransport) (*Renderer, error) {
	if len(tiles) < 256*tileHeight {
		return nil, fmt.Errorf("tile table too short: %d words", len(tiles))
	}
	if len(sprites) < 4*spriteCodes*16 {
		return nil, fmt.Errorf("sprite table too short: %d words", len(sprites))
	}
	if len(palette) < 64*4 {
		return nil, fmt.Errorf("palette too short: %d entries", len(palette))
	}

	r := &Renderer{
		tiles:   tiles,
		sprites: sprites,
		colors:  make([]uint16, 64*4),
		disp:    disp,
	}
	for i, c := range palette[:64*4] {
		r.colors[i] = c>>8 | c<<8
	}
	r.band[0] = make([]uint16, GameWidth*tileHeight)
	r.band[1] = make([]uint16, GameWidth*tileHeight)

	r.initTileAddr()
	return r, nil
}

// initTileAddr reproduces the board's non-linear VRAM scan order. The
// screen is rotated: the main field runs column-major bottom-up, while
// the two score rows at the top and the two credit rows at the bottom
// keep a plain row order.
func (r *Renderer) initTileAddr() {
	for row := 0; row < tilesY; row++ {
		for col := 0; col < tilesX; col++ {
			var addr int
			switch {
			case row < 2:
				addr = 0x3DD + col - 32*row
			case row >= 34:
				addr = 0x01D + col - 32*(row-34)
			default:
				addr = 0x3A0 + (row - 2) - 32*col
			}
			r.tileAddr[row][col] = uint16(addr)
		}
	}
}

// prepareSprites rebuilds the active sprite list from the two attribute
// windows. Slots are walked in reverse so lower slots draw on top, and
// entries that are out of tile range or fully off screen are dropped.
func (r *Renderer) prepareSprites(ram []uint8) {
	r.numAct = 0
	for idx := 0; idx < maxSprites; idx++ {
		base := 2 * (maxSprites - 1 - idx)

		var spr sprite
		spr.code = ram[spriteOffset+base] >> 2
		spr.flags = ram[spriteOffset+base] & 3
		spr.color = ram[spriteOffset+base+1] & 63
		spr.x = 255 - 16 - int(ram[sprite2Offset+base])
		spr.y = 16 + 256 - int(ram[sprite2Offset+base+1])

		if spr.code < spriteCodes &&
			spr.y > -16 && spr.y < GameHeight &&
			spr.x > -16 && spr.x < GameWidth {
			r.active[r.numAct] = spr
			r.numAct++
		}
	}
}

func (r *Renderer) blitTile(buf []uint16, row, col int, ram []uint8) {
	addr := r.tileAddr[row][col]
	tileIdx := ram[addr]
	colorIdx := ram[cramOffset+addr] & 63

	tile := r.tiles[int(tileIdx)*tileHeight:]
	colors := r.colors[int(colorIdx)*4:]

	base := col * tileWidth
	for y := 0; y < tileHeight; y++ {
		pix := tile[y]
		out := buf[base+y*GameWidth:]
		for x := 0; x < tileWidth; x, pix = x+1, pix>>2 {
			// color 0 is transparent, the band stays black
			if p := pix & 3; p != 0 {
				out[x] = colors[p]
			}
		}
	}
}

func (r *Renderer) blitSprite(buf []uint16, row int, spr sprite) {
	gfx := r.sprites[(int(spr.flags)&3)*spriteCodes*16+int(spr.code)*16:]
	colors := r.colors[int(spr.color)*4:]

	// mask out columns past either screen edge
	mask := uint32(0xFFFFFFFF)
	if spr.x < 0 {
		mask <<= uint(-2 * spr.x)
	}
	if spr.x > GameWidth-16 {
		mask >>= uint(2 * (spr.x - (GameWidth - 16)))
	}

	yOffset := spr.y - tileHeight*row

	lines := tileHeight
	if yOffset < -tileHeight {
		lines = 16 + yOffset
	}
	startLine := 0
	if yOffset > 0 {
		startLine = yOffset
		lines = tileHeight - yOffset
	}
	gi := 0
	if yOffset < 0 {
		gi = -yOffset
	}

	for l := 0; l < lines; l++ {
		pix := gfx[gi+l] & mask
		rowBase := (startLine + l) * GameWidth
		for c := 0; c < 16; c, pix = c+1, pix>>2 {
			p := pix & 3
			if p == 0 {
				continue
			}
			x := spr.x + c
			if x < 0 || x >= GameWidth {
				continue
			}
			if col := colors[p]; col != 0 {
				buf[rowBase+x] = col
			}
		}
	}
}

// nextBand returns a band buffer that is not in flight, waiting for the
// transport if both have been handed off.
func (r *Renderer) nextBand() []uint16 {
	r.cur ^= 1
	if r.inflight[r.cur] {
		r.disp.WaitDone()
		r.inflight[0], r.inflight[1] = false, false
	}
	return r.band[r.cur]
}

func (r *Renderer) renderBand(buf []uint16, row int, ram []uint8) {
	for i := range buf {
		buf[i] = 0
	}
	for col := 0; col < tilesX; col++ {
		r.blitTile(buf, row, col, ram)
	}
	for s := 0; s < r.numAct; s++ {
		spr := r.active[s]
		if spr.y < tileHeight*(row+1) && spr.y+16 > tileHeight*row {
			r.blitSprite(buf, row, spr)
		}
	}
}

// RenderFrame draws every band top to bottom, streaming each one to the
// display and invoking refill at a fixed cadence so audio playback never
// starves on a long render. Returns after the final transfer completes.
func (r *Renderer) RenderFrame(ram []uint8, refill func()) {
	r.prepareSprites(ram)

	r.disp.SetWindow(gameXOffset, 0, GameWidth, DisplayHeight)

	for row := 0; row < renderRows; row++ {
		buf := r.nextBand()
		r.renderBand(buf, row, ram)

		r.disp.WritePreswapped(buf)
		r.inflight[r.cur] = true

		if row%audioRefillRows == 0 && refill != nil {
			refill()
		}
	}

	r.disp.WaitDone()
	r.inflight[0], r.inflight[1] = false, false
}
