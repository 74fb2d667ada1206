package airplane

// checkCollisions tests obstacles first; the first overlapping one ends the
// round and nothing else is evaluated. Otherwise every overlapping visible
// pickup is collected.
func (e *Engine) checkCollisions() {
	plane := e.world.Airplane
	r := e.cfg.Collision.HalfExtent

	for _, o := range e.world.Obstacles {
		if o.Visible && o.Position.Near(plane, r) {
			e.world.GameOver = true
			if e.listener != nil {
				e.listener.OnGameOver()
			}
			return
		}
	}

	for i := range e.world.Fuels {
		f := &e.world.Fuels[i]
		if !f.Visible || !f.Position.Near(plane, r) {
			continue
		}
		e.world.Score += points(e.cfg.Scoring.FuelPoints, e.world.SpeedMultiplier)
		e.world.JustCollected = true
		f.Visible = false
		if e.listener != nil {
			e.listener.OnCollect()
		}
	}
}
