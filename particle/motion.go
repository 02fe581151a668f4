package particle

import "math"

// Margins beyond the surface edge used by the recycling rules.
const (
	cruiseMarginPad = 10.0 // birds: 2*size + pad
	fallExitPad     = 8.0  // falling kinds leave sideways past edge + size + pad
	fallEntryPad    = 2.0  // and re-enter this far past the opposite edge
	wispExitPad     = 50.0 // wisps leave once fully past edge + pad
	wispEntryPad    = 30.0 // wisps re-enter this far beyond the opposite edge
	glideFlapRate   = 0.25 // wing phase rate while gliding
	partForceFactor = 0.6  // parting push at full progress, fraction of width
)

// sample rolls every attribute except position from the config.
func (f *Field) sample(p *State) {
	c := &f.cfg
	rng := f.rng
	wraps := p.Wraps

	*p = State{Kind: c.Kind}
	p.Size = c.SizeRange.Sample(rng)
	p.SpeedX = c.SpeedXRange.Sample(rng)
	p.SpeedY = c.SpeedYRange.Sample(rng)
	p.WobbleAmp = c.WobbleAmpRange.Sample(rng)
	p.WobbleSpeed = c.WobbleSpeedRange.Sample(rng)
	p.WobblePhase = rng.Float64() * 2 * math.Pi
	p.RotationSpeed = c.RotationSpeedRange.Sample(rng)
	p.Rotation = rng.Float64() * 2 * math.Pi
	p.StretchX = c.StretchXRange.Sample(rng)
	p.StretchY = c.StretchYRange.Sample(rng)
	p.FlapSpeed = c.FlapSpeedRange.Sample(rng)
	p.FlapPhase = rng.Float64() * 2 * math.Pi
	p.FlipY = rng.Float64() > 0.5
	p.BaseOpacity = c.OpacityRange.Sample(rng)
	p.Opacity = p.BaseOpacity
	p.Color, p.paletteIndex = pickColor(c, rng)
	p.TargetColor = p.Color
	p.Wraps = wraps
}

// spawnInitial places a freshly sampled particle anywhere in the spawn region.
func (f *Field) spawnInitial(p *State) {
	f.sample(p)
	c := &f.cfg
	p.X = c.SpawnX.Sample(f.rng) * f.width
	switch {
	case c.Pattern.cruises():
		p.Baseline = c.SpawnY.Sample(f.rng) * f.height
		p.Y = p.Baseline + math.Sin(p.X*p.WobbleSpeed)*p.WobbleAmp
	default:
		p.Y = c.SpawnY.Sample(f.rng) * f.height
	}
	p.Side = f.sideOf(p.X)
}

// respawn re-samples p after it left the surface. The new position is at the
// leading edge of its travel; opacity resumes at the layer's current target
// so recycled particles do not pop.
func (f *Field) respawn(p *State) {
	oldX, oldY, oldSize := p.X, p.Y, p.Size
	p.Wraps++
	f.sample(p)
	p.Opacity = f.currentTarget(p)
	c := &f.cfg
	w, h := f.width, f.height

	switch {
	case c.Pattern.falls():
		switch {
		case oldY > h+oldSize:
			p.X = c.SpawnX.Sample(f.rng) * w
			p.Y = -p.Size - f.rng.Float64()*2*p.Size
		case oldX < 0:
			p.X = w + p.Size + fallEntryPad
			p.Y = oldY
		default:
			p.X = -p.Size - fallEntryPad
			p.Y = oldY
		}
	case c.Pattern.cruises():
		m := 2*p.Size + cruiseMarginPad
		if p.SpeedX >= 0 {
			p.X = -m - f.rng.Float64()*m
		} else {
			p.X = w + m + f.rng.Float64()*m
		}
		p.Baseline = c.SpawnY.Sample(f.rng) * h
		p.Y = p.Baseline + math.Sin(p.X*p.WobbleSpeed)*p.WobbleAmp
	default:
		e := p.Extent()
		if p.SpeedX >= 0 {
			p.X = -e - wispEntryPad
		} else {
			p.X = w + e + wispEntryPad
		}
		p.Y = c.SpawnY.Sample(f.rng) * h
	}
	p.Side = f.sideOf(p.X)
}

func (f *Field) sideOf(x float64) Side {
	switch {
	case x < f.width*0.4:
		return SideLeft
	case x > f.width*0.6:
		return SideRight
	default:
		return SideCenter
	}
}

// fall: Y drifts down, X wobbles on a sine plus wind, rotation spins.
func (f *Field) fall(p *State, step float64) {
	p.Y += p.SpeedY * step
	p.X += (math.Sin(p.WobblePhase)*p.WobbleAmp + f.wind*f.cfg.WindResponse) * step
	p.WobblePhase += p.WobbleSpeed * step
	p.Rotation += p.RotationSpeed * step
}

// cruise: X advances, Y rides a sine wave around the baseline and wings flap.
func (f *Field) cruise(p *State, step float64, glides bool) {
	p.X += p.SpeedX * step
	p.Y = p.Baseline + math.Sin(p.X*p.WobbleSpeed)*p.WobbleAmp

	if !glides {
		p.FlapPhase += p.FlapSpeed * step
		return
	}
	if p.GlideTicks > 0 {
		p.FlapPhase += p.FlapSpeed * glideFlapRate * step
		p.GlideTicks = math.Max(0, p.GlideTicks-step)
		return
	}
	p.FlapPhase += p.FlapSpeed * step
	if f.rng.Float64() < f.cfg.GlideChance*step {
		p.GlideTicks = f.cfg.GlideTicksRange.Sample(f.rng)
	}
}

// breathe: slow constant drift with a small vertical nudge.
func (f *Field) breathe(p *State, step float64) {
	p.X += p.SpeedX * step
	p.Y += math.Sin(p.WobblePhase) * p.WobbleAmp * step
	p.WobblePhase += p.WobbleSpeed * step
}

// ease moves opacity and colour exponentially toward their targets.
func (f *Field) ease(p *State, rate float64) {
	p.Opacity += (f.currentTarget(p) - p.Opacity) * rate
	if p.Color != p.TargetColor {
		p.Color = easeColor(p.Color, p.TargetColor, rate)
	}
}

// push applies the parting force as a draw-time lateral offset.
func (f *Field) push(p *State) {
	if f.part <= 0 {
		p.PartOffset = 0
		return
	}
	force := f.part * f.width * partForceFactor
	switch p.Side {
	case SideLeft:
		p.PartOffset = -force
	case SideRight:
		p.PartOffset = force
	default:
		if p.X > f.width/2 {
			p.PartOffset = force * 0.5
		} else {
			p.PartOffset = -force * 0.5
		}
	}
}

// exited reports whether p crossed the trailing edge of its travel.
func (f *Field) exited(p *State) bool {
	w, h := f.width, f.height
	switch {
	case f.cfg.Pattern.falls():
		// Entry sits inside the exit margin so a wobble back toward the
		// edge cannot bounce a fresh particle straight out again.
		m := p.Size + fallExitPad
		return p.Y > h+p.Size || p.X < -m || p.X > w+m
	case f.cfg.Pattern.cruises():
		m := 2*p.Size + cruiseMarginPad
		// Entry happens beyond the leading edge, so only the trailing side counts.
		if p.SpeedX >= 0 {
			return p.X > w+m
		}
		return p.X < -m
	default:
		e := p.Extent()
		return p.X-e > w+wispExitPad || p.X+e < -wispExitPad
	}
}

func (f *Field) recycle(p *State) {
	if f.exited(p) {
		f.respawn(p)
	}
}
