package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/asteroid-racer/internal/game"
)

// controls is the per-tick input the game reads.
type controls interface {
	held() game.Input
	click() (x, y int, ok bool)
	restartPressed() bool
	quitPressed() bool
	debugPressed() bool
}

// ebitenControls reads the keyboard and mouse through ebiten.
type ebitenControls struct{}

func (ebitenControls) held() game.Input {
	return game.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}
}

func (ebitenControls) click() (int, int, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, 0, false
	}
	x, y := ebiten.CursorPosition()
	return x, y, true
}

func (ebitenControls) restartPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyR)
}

func (ebitenControls) quitPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

func (ebitenControls) debugPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF1)
}
