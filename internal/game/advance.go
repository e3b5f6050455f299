package game

import "github.com/tomz197/asteroid-racer/internal/physics"

// AdvanceStars spawns a star every StarEvery points and moves all stars down
// by the current speed, dropping the ones that left the field.
func (s *State) AdvanceStars() {
	if s.Config.StarEvery > 0 && s.Score%s.Config.StarEvery == 0 {
		s.Stars = append(s.Stars, Star{
			X: float64(s.rng.Intn(s.Config.SpawnXMax + 1)),
			Y: s.Config.SpawnY,
		})
	}

	speed := float64(s.Speed)
	kept := s.Stars[:0]
	for _, st := range s.Stars {
		st.Y -= speed
		if st.Y >= 0 {
			kept = append(kept, st)
		}
	}
	clear(s.Stars[len(kept):])
	s.Stars = kept
}

// AdvanceAsteroids rolls for a new asteroid, moves every asteroid down by the
// current speed, drops the ones below the field, and checks the survivors
// against the ship. It returns true on the tick the ship is hit; the state is
// then game over and FinalScore holds the score at impact.
func (s *State) AdvanceAsteroids() (collided bool) {
	if s.GameOver {
		return false
	}

	if s.Config.AsteroidChance > 0 && s.rng.Intn(s.Config.AsteroidChance) == asteroidRoll {
		s.Asteroids = append(s.Asteroids, Asteroid{
			X:     float64(s.rng.Intn(s.Config.SpawnXMax + 1)),
			Y:     s.Config.SpawnY,
			Width: s.Config.AsteroidWidth,
		})
	}

	speed := float64(s.Speed)
	kept := s.Asteroids[:0]
	for _, a := range s.Asteroids {
		a.Y -= speed
		if a.Y >= 0 {
			kept = append(kept, a)
		}
	}
	clear(s.Asteroids[len(kept):])
	s.Asteroids = kept

	for _, a := range s.Asteroids {
		if physics.SpritesCollide(s.Ship.X, s.Ship.Y, s.Ship.Width, a.X, a.Y, a.Width) {
			s.GameOver = true
			s.FinalScore = s.Score
			return true
		}
	}
	return false
}

// AdvanceShip moves the ship one step toward the held direction. Left is
// checked first but only applies away from the left edge, so holding both
// keys there moves the ship right.
func (s *State) AdvanceShip(in Input) {
	switch {
	case in.Left && s.Ship.X > s.Config.ShipMinX:
		s.Ship.X -= s.Config.ShipStep
	case in.Right && s.Ship.X < s.Config.ShipMaxX:
		s.Ship.X += s.Config.ShipStep
	default:
		return
	}
	s.Ship.X = min(max(s.Ship.X, s.Config.ShipMinX), s.Config.ShipMaxX)
}

// AdvanceScore adds one point, tracks the highscore, and speeds the game up
// every SpeedEvery points.
func (s *State) AdvanceScore() {
	s.Score++
	if s.Score > s.Highscore {
		s.Highscore = s.Score
	}
	if s.Config.SpeedEvery > 0 && s.Score%s.Config.SpeedEvery == 0 {
		s.Speed++
	}
}

// Tick runs one game tick. Nothing moves once the game is over. The
// colliding tick still moves the ship and scores; FinalScore keeps the score
// at impact.
func (s *State) Tick(in Input) (collided bool) {
	if s.GameOver {
		return false
	}
	s.AdvanceStars()
	collided = s.AdvanceAsteroids()
	s.AdvanceShip(in)
	s.AdvanceScore()
	return collided
}

// FadeOut lowers the overlay opacity by one step. It returns true once the
// overlay is fully transparent, without lowering it further.
func (s *State) FadeOut() (done bool) {
	if s.Opacity <= 0 {
		return true
	}
	s.Opacity -= s.Config.FadeStep
	return false
}

// Restart resets the round. The highscore and the ship's position carry over.
func (s *State) Restart() {
	clear(s.Asteroids)
	s.Asteroids = s.Asteroids[:0]
	clear(s.Stars)
	s.Stars = s.Stars[:0]
	s.Score = 0
	s.Speed = s.Config.InitialSpeed
	s.GameOver = false
	s.FinalScore = 0
	s.Opacity = FullOpacity
}

// InRestartButton reports whether field coordinates (x, y) hit the RESTART
// button.
func (s *State) InRestartButton(x, y float64) bool {
	bx, by := s.Config.ButtonCenter()
	return physics.WithinBox(x, y, bx, by, s.Config.ButtonHalfW, s.Config.ButtonHalfH)
}
