package pac

// Game RAM locations tracked by the orchestrator, as offsets from $4000.
// The mode byte encodes the coarse machine state: $01 attract, $02 game
// starting, $03 and up actively playing.
const (
	addrGameMode = 0x4E00 - memBase
	addrLives    = 0x4E14 - memBase
	addrCredits  = 0x4E6E - memBase
	addrCoins    = 0x4E6D - memBase

	modeAttract  = 0x01
	modeStarting = 0x02

	// frames ignored after reset while the game ROM boots and settles
	startupGraceFrames = 180
)

// GameState watches two bytes of game RAM and fires a one-shot trigger
// when the machine drops into attract mode. The trigger re-arms only
// after a game is next seen starting, so one attract cycle plays the
// cutscene at most once.
type GameState struct {
	lastMode    uint8
	gameStarted bool
	played      bool
	frames      uint32
}

func NewGameState() *GameState {
	return &GameState{}
}

func (g *GameState) Reset() {
	*g = GameState{}
}

// CheckAttractStart advances the detector by one frame and reports
// whether the attract cutscene should play now.
func (g *GameState) CheckAttractStart(ram []uint8) bool {
	g.frames++
	if g.frames < startupGraceFrames {
		return false
	}

	mode := ram[addrGameMode]

	if !g.gameStarted && mode == modeStarting && g.lastMode == modeAttract {
		g.gameStarted = true
		g.played = false
	}

	if mode == modeAttract && g.lastMode != modeAttract && !g.played {
		g.played = true
		g.gameStarted = false
		g.lastMode = mode
		return true
	}

	g.lastMode = mode
	return false
}

// Lives reads the remaining-lives counter from game RAM.
func Lives(ram []uint8) uint8 {
	return ram[addrLives]
}

// GameMode reads the coarse machine-state byte from game RAM.
func GameMode(ram []uint8) uint8 {
	return ram[addrGameMode]
}

// Playing reports whether the mode byte indicates active gameplay rather
// than attract or boot.
func Playing(ram []uint8) bool {
	return ram[addrGameMode] >= modeStarting
}

// ClearCredits zeroes the credit and partial-coin counters so attract
// mode runs its demo instead of waiting on the start button.
func ClearCredits(m *Memory) {
	m.WriteRAM(addrCredits, 0)
	m.WriteRAM(addrCoins, 0)
}
