package game

import "time"

// Field and spawn geometry. Positions use a bottom-left origin with y up.
const (
	FieldWidth  = 640
	FieldHeight = 480
	SpawnY      = 600
	SpawnXMax   = 800
)

// Ship
const (
	ShipStartX = 30
	ShipY      = 30
	ShipMinX   = 0
	ShipMaxX   = 625
	ShipStep   = 4
	ShipWidth  = 36 // sprite width at 0.3 scale
)

// Asteroids and stars
const (
	AsteroidWidth  = 30
	AsteroidChance = 46 // one spawn roll in AsteroidChance per tick
	asteroidRoll   = 3
	StarEvery      = 8
)

// Scoring and difficulty
const (
	InitialSpeed = 5
	SpeedEvery   = 100
)

// Game-over overlay
const (
	FullOpacity = 255
	FadeStep    = 10
	ButtonHalfW = 50
	ButtonHalfH = 20
)

// Timing
const (
	TickInterval  = 5 * time.Millisecond
	FadeInterval  = 16 * time.Millisecond
	MusicInterval = 13800 * time.Millisecond
)

// Config holds the tunables of one game. DefaultConfig mirrors the constants
// above; tests and frontends adjust individual fields.
type Config struct {
	FieldWidth, FieldHeight float64
	SpawnY                  float64
	SpawnXMax               int

	ShipStartX, ShipY float64
	ShipMinX          float64
	ShipMaxX          float64
	ShipStep          float64
	ShipWidth         float64

	AsteroidWidth  float64
	AsteroidChance int
	StarEvery      int

	InitialSpeed int
	SpeedEvery   int

	FadeStep    int
	ButtonHalfW float64
	ButtonHalfH float64

	TickInterval  time.Duration
	FadeInterval  time.Duration
	MusicInterval time.Duration

	Seed int64 // 0 picks a time-based seed
}

// DefaultConfig returns the standard game configuration.
func DefaultConfig() Config {
	return Config{
		FieldWidth:  FieldWidth,
		FieldHeight: FieldHeight,
		SpawnY:      SpawnY,
		SpawnXMax:   SpawnXMax,

		ShipStartX: ShipStartX,
		ShipY:      ShipY,
		ShipMinX:   ShipMinX,
		ShipMaxX:   ShipMaxX,
		ShipStep:   ShipStep,
		ShipWidth:  ShipWidth,

		AsteroidWidth:  AsteroidWidth,
		AsteroidChance: AsteroidChance,
		StarEvery:      StarEvery,

		InitialSpeed: InitialSpeed,
		SpeedEvery:   SpeedEvery,

		FadeStep:    FadeStep,
		ButtonHalfW: ButtonHalfW,
		ButtonHalfH: ButtonHalfH,

		TickInterval:  TickInterval,
		FadeInterval:  FadeInterval,
		MusicInterval: MusicInterval,
	}
}

// ButtonCenter returns the center of the RESTART button.
func (c Config) ButtonCenter() (x, y float64) {
	return c.FieldWidth / 2, c.FieldHeight / 2
}

// FinalLabelPos returns the anchor of the "Game Over!" label, above the button.
func (c Config) FinalLabelPos() (x, y float64) {
	return c.FieldWidth / 2, c.FieldHeight/2 + 50
}

// ScoreLabelPos returns the bottom-left anchor of the HUD line.
func (c Config) ScoreLabelPos() (x, y float64) {
	return 10, 10
}

// RestartLabel is the text of the RESTART button.
const RestartLabel = "RESTART"
