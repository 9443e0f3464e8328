package birch

import (
	"math"
	"math/rand/v2"
)

// Particle is a Sprite with per-particle simulation state. Particles are
// owned and recycled by their ParticleEmitter.
type Particle struct {
	Sprite

	life, currentLife float32

	xScale, xScaleDiff             float32
	yScale, yScaleDiff             float32
	rotation, rotationDiff         float32
	velocity, velocityDiff         float32
	angle, angleDiff               float32
	angleCos, angleSin             float32
	transparency, transparencyDiff float32
	wind, windDiff                 float32
	gravity, gravityDiff           float32
	tint                           [3]float32
	frame                          int
}

// Life returns the particle's total lifetime in seconds.
func (p *Particle) Life() float32 { return p.life }

// RemainingLife returns the seconds left before the particle dies.
func (p *Particle) RemainingLife() float32 { return p.currentLife }

// SpriteMode selects which of the emitter's sprites a particle shows.
type SpriteMode uint8

const (
	// SpriteSingle uses the first sprite.
	SpriteSingle SpriteMode = iota
	// SpriteRandom picks a sprite per particle.
	SpriteRandom
	// SpriteAnimated steps through the sprites over the particle's life.
	SpriteAnimated
)

// DefaultMaxParticles is used when EmitterConfig.MaxParticleCount is zero.
const DefaultMaxParticles = 128

// EmitterConfig describes an emitter. Times are in seconds, distances in
// pixels, angles in degrees clockwise from +x (the world is y-down) and
// velocities, wind and gravity per second.
type EmitterConfig struct {
	Name string

	// MinParticleCount particles are kept alive while emitting;
	// MaxParticleCount is the pool size.
	MinParticleCount int
	MaxParticleCount int

	Delay      RangedNumericValue
	LifeOffset ScaledNumericValue
	Duration   RangedNumericValue
	Life       ScaledNumericValue
	// Emission is in particles per second.
	Emission ScaledNumericValue

	XScale       ScaledNumericValue
	YScale       ScaledNumericValue
	Rotation     ScaledNumericValue
	Velocity     ScaledNumericValue
	Angle        ScaledNumericValue
	Wind         ScaledNumericValue
	Gravity      ScaledNumericValue
	Transparency ScaledNumericValue
	Tint         GradientColorValue

	XOffset     RangedNumericValue
	YOffset     RangedNumericValue
	SpawnShape  SpawnShapeValue
	SpawnWidth  ScaledNumericValue
	SpawnHeight ScaledNumericValue

	// Attached particles move with the emitter.
	Attached bool
	// Continuous emitters restart when their duration ends.
	Continuous bool
	// Aligned particles rotate to their direction of travel.
	Aligned bool
	// Behind is a hint for callers drawing an effect around other content.
	Behind bool
	// Additive particles blend with (SrcAlpha, One).
	Additive bool
	// PremultipliedAlpha sprites blend with (One, OneMinusSrcAlpha).
	PremultipliedAlpha bool
	// KeepBlendFunction leaves the batch's blend function as the emitter
	// set it instead of restoring (SrcAlpha, OneMinusSrcAlpha).
	KeepBlendFunction bool

	SpriteMode SpriteMode
	Sprites    []*Sprite
}

// angleVaries reports whether particle direction follows the angle curve
// over each particle's life rather than staying at its spawn value.
func (c *EmitterConfig) angleVaries() bool {
	return c.Angle.Active && len(c.Angle.Timeline) > 1
}

// DefaultEmitterConfig returns a small continuous fountain: one second
// lives, 20 particles a second, 32 pixel particles fading out.
func DefaultEmitterConfig() EmitterConfig {
	cfg := EmitterConfig{
		MaxParticleCount: DefaultMaxParticles,
		Continuous:       true,
	}
	cfg.Duration.SetLow(1)
	cfg.Life.SetHigh(1)
	cfg.Emission.SetHigh(20)
	cfg.XScale.SetHigh(32)
	cfg.Transparency.SetHigh(1)
	cfg.Transparency.Scaling = []float32{1, 0}
	cfg.Transparency.Timeline = []float32{0, 1}
	cfg.Velocity.Active = true
	cfg.Velocity.SetHigh(60)
	cfg.Angle.Active = true
	cfg.Angle.SetHighRange(-120, -60)
	return cfg
}

// ParticleEmitter simulates a pool of particles. Dead particles are
// swap-removed so the live ones stay packed at the front of the pool.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []*Particle
	alive     int

	x, y float32

	firstUpdate     bool
	allowCompletion bool

	delay, delayTimer            float32
	duration, durationTimer      float32
	emission, emissionDiff       float32
	emissionDelta                float32
	life, lifeDiff               float32
	lifeOffset, lifeOffsetDiff   float32
	spawnWidth, spawnWidthDiff   float32
	spawnHeight, spawnHeightDiff float32
}

// NewParticleEmitter creates an emitter with a preallocated pool. The
// emitter is started; call Update and Draw each frame.
func NewParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	if cfg.MaxParticleCount <= 0 {
		cfg.MaxParticleCount = DefaultMaxParticles
	}
	if cfg.MinParticleCount > cfg.MaxParticleCount {
		cfg.MinParticleCount = cfg.MaxParticleCount
	}
	e := &ParticleEmitter{
		config:    cfg,
		particles: make([]*Particle, cfg.MaxParticleCount),
	}
	e.Start()
	return e
}

// NewParticleEmitterFrom copies the configuration of src. Sprites are
// shared; particles are not.
func NewParticleEmitterFrom(src *ParticleEmitter) *ParticleEmitter {
	e := NewParticleEmitter(src.config)
	e.x, e.y = src.x, src.y
	return e
}

// Config returns the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig { return &e.config }

// Name returns the configured name.
func (e *ParticleEmitter) Name() string { return e.config.Name }

// SetPosition moves the emitter. Attached particles move with it.
func (e *ParticleEmitter) SetPosition(x, y float32) {
	if e.config.Attached {
		dx, dy := x-e.x, y-e.y
		for _, p := range e.particles[:e.alive] {
			p.Translate(dx, dy)
		}
	}
	e.x, e.y = x, y
}

// X returns the emitter's x position.
func (e *ParticleEmitter) X() float32 { return e.x }

// Y returns the emitter's y position.
func (e *ParticleEmitter) Y() float32 { return e.y }

// Start begins a new emission cycle.
func (e *ParticleEmitter) Start() {
	e.firstUpdate = true
	e.allowCompletion = false
	e.restart()
}

// Reset kills every particle and starts over.
func (e *ParticleEmitter) Reset() {
	e.emissionDelta = 0
	e.durationTimer = e.duration
	e.alive = 0
	e.Start()
}

// AllowCompletion lets a continuous emitter finish its current cycle and
// stop emitting.
func (e *ParticleEmitter) AllowCompletion() {
	e.allowCompletion = true
	e.durationTimer = e.duration
}

// IsComplete reports whether emission has ended and every particle died.
func (e *ParticleEmitter) IsComplete() bool {
	if e.config.Continuous && !e.allowCompletion {
		return false
	}
	if e.delayTimer < e.delay {
		return false
	}
	return e.durationTimer >= e.duration && e.alive == 0
}

// PercentComplete returns how far through the current cycle the emitter
// is, from 0 to 1.
func (e *ParticleEmitter) PercentComplete() float32 {
	if e.delayTimer < e.delay {
		return 0
	}
	if e.duration <= 0 {
		return 1
	}
	return min(1, e.durationTimer/e.duration)
}

// ActiveCount returns the number of live particles.
func (e *ParticleEmitter) ActiveCount() int { return e.alive }

// Particles returns the live particles. The slice is reused by Update.
func (e *ParticleEmitter) Particles() []*Particle { return e.particles[:e.alive] }

func (e *ParticleEmitter) restart() {
	c := &e.config
	e.delay = 0
	if c.Delay.Active {
		e.delay = c.Delay.NewLowValue()
	}
	e.delayTimer = 0

	e.durationTimer -= e.duration
	e.duration = c.Duration.NewLowValue()

	e.emission = c.Emission.NewLowValue()
	e.emissionDiff = c.Emission.NewHighValue()
	if !c.Emission.Relative {
		e.emissionDiff -= e.emission
	}

	e.life = c.Life.NewLowValue()
	e.lifeDiff = c.Life.NewHighValue()
	if !c.Life.Relative {
		e.lifeDiff -= e.life
	}

	e.lifeOffset, e.lifeOffsetDiff = 0, 0
	if c.LifeOffset.Active {
		e.lifeOffset = c.LifeOffset.NewLowValue()
		e.lifeOffsetDiff = c.LifeOffset.NewHighValue()
		if !c.LifeOffset.Relative {
			e.lifeOffsetDiff -= e.lifeOffset
		}
	}

	e.spawnWidth = c.SpawnWidth.NewLowValue()
	e.spawnWidthDiff = c.SpawnWidth.NewHighValue()
	if !c.SpawnWidth.Relative {
		e.spawnWidthDiff -= e.spawnWidth
	}
	e.spawnHeight = c.SpawnHeight.NewLowValue()
	e.spawnHeightDiff = c.SpawnHeight.NewHighValue()
	if !c.SpawnHeight.Relative {
		e.spawnHeightDiff -= e.spawnHeight
	}
}

// Update advances the simulation by delta seconds.
func (e *ParticleEmitter) Update(delta float32) {
	if delta <= 0 {
		return
	}

	if e.delayTimer < e.delay {
		e.delayTimer += delta
	} else {
		done := false
		if e.firstUpdate {
			e.firstUpdate = false
			e.addParticles(1)
		}

		if e.durationTimer < e.duration {
			e.durationTimer += delta
		} else if !e.config.Continuous || e.allowCompletion {
			done = true
		} else {
			e.restart()
		}

		if !done {
			e.emit(delta)
		}
	}

	i := 0
	for i < e.alive {
		p := e.particles[i]
		if !e.updateParticle(p, delta) {
			e.alive--
			e.particles[i], e.particles[e.alive] = e.particles[e.alive], p
			continue
		}
		i++
	}
}

func (e *ParticleEmitter) emit(delta float32) {
	e.emissionDelta += delta
	rate := e.emission + e.emissionDiff*e.config.Emission.Scale(e.PercentComplete())
	if rate > 0 {
		interval := 1 / rate
		if e.emissionDelta >= interval {
			count := int(e.emissionDelta / interval)
			count = min(count, e.config.MaxParticleCount-e.alive)
			e.emissionDelta -= float32(count) * interval
			e.emissionDelta = float32(math.Mod(float64(e.emissionDelta), float64(interval)))
			e.addParticles(count)
		}
	}
	if e.alive < e.config.MinParticleCount {
		e.addParticles(e.config.MinParticleCount - e.alive)
	}
}

func (e *ParticleEmitter) addParticles(count int) {
	count = min(count, len(e.particles)-e.alive)
	if count <= 0 || len(e.config.Sprites) == 0 {
		return
	}
	for ; count > 0; count-- {
		e.activateParticle(e.alive)
		e.alive++
	}
}

func (e *ParticleEmitter) pickSprite() *Sprite {
	sprites := e.config.Sprites
	if e.config.SpriteMode == SpriteRandom {
		return sprites[rand.IntN(len(sprites))]
	}
	return sprites[0]
}

func (e *ParticleEmitter) activateParticle(index int) {
	c := &e.config
	sprite := e.pickSprite()

	p := e.particles[index]
	if p == nil {
		p = &Particle{}
		e.particles[index] = p
	}
	p.Sprite.Set(sprite)
	p.frame = 0

	percent := e.PercentComplete()

	p.life = e.life + e.lifeDiff*c.Life.Scale(percent)
	p.currentLife = p.life

	if c.Velocity.Active {
		p.velocity = c.Velocity.NewLowValue()
		p.velocityDiff = c.Velocity.NewHighValue()
		if !c.Velocity.Relative {
			p.velocityDiff -= p.velocity
		}
	}

	p.angle = c.Angle.NewLowValue()
	p.angleDiff = c.Angle.NewHighValue()
	if !c.Angle.Relative {
		p.angleDiff -= p.angle
	}
	angle := float32(0)
	if c.Angle.Active {
		angle = p.angle + p.angleDiff*c.Angle.Scale(0)
	}
	if !c.angleVaries() {
		p.angle = angle
		p.angleSin, p.angleCos = sinCosDeg(angle)
	}

	spriteWidth := sprite.Width()
	spriteHeight := sprite.Height()

	p.xScale = c.XScale.NewLowValue() / spriteWidth
	p.xScaleDiff = c.XScale.NewHighValue() / spriteWidth
	if !c.XScale.Relative {
		p.xScaleDiff -= p.xScale
	}
	if c.YScale.Active {
		p.yScale = c.YScale.NewLowValue() / spriteHeight
		p.yScaleDiff = c.YScale.NewHighValue() / spriteHeight
		if !c.YScale.Relative {
			p.yScaleDiff -= p.yScale
		}
		p.SetScale(p.xScale+p.xScaleDiff*c.XScale.Scale(0), p.yScale+p.yScaleDiff*c.YScale.Scale(0))
	} else {
		p.SetUniformScale(p.xScale + p.xScaleDiff*c.XScale.Scale(0))
	}

	if c.Rotation.Active {
		p.rotation = c.Rotation.NewLowValue()
		p.rotationDiff = c.Rotation.NewHighValue()
		if !c.Rotation.Relative {
			p.rotationDiff -= p.rotation
		}
		rotation := p.rotation + p.rotationDiff*c.Rotation.Scale(0)
		if c.Aligned {
			rotation += angle
		}
		p.SetRotation(rotation)
	}

	if c.Wind.Active {
		p.wind = c.Wind.NewLowValue()
		p.windDiff = c.Wind.NewHighValue()
		if !c.Wind.Relative {
			p.windDiff -= p.wind
		}
	}
	if c.Gravity.Active {
		p.gravity = c.Gravity.NewLowValue()
		p.gravityDiff = c.Gravity.NewHighValue()
		if !c.Gravity.Relative {
			p.gravityDiff -= p.gravity
		}
	}

	p.tint = c.Tint.Color(0)

	p.transparency = c.Transparency.NewLowValue()
	p.transparencyDiff = c.Transparency.NewHighValue() - p.transparency

	x, y := e.x, e.y
	if c.XOffset.Active {
		x += c.XOffset.NewLowValue()
	}
	if c.YOffset.Active {
		y += c.YOffset.NewLowValue()
	}
	x, y = e.spawnOffset(p, x, y, percent)

	p.SetBounds(x-spriteWidth/2, y-spriteHeight/2, spriteWidth, spriteHeight)
	e.applyColor(p, 0)

	if c.LifeOffset.Active {
		offset := e.lifeOffset + e.lifeOffsetDiff*c.LifeOffset.Scale(percent)
		if offset > 0 {
			if offset >= p.currentLife {
				offset = p.currentLife * 0.999
			}
			e.updateParticle(p, offset)
		}
	}
}

func (e *ParticleEmitter) spawnOffset(p *Particle, x, y, percent float32) (float32, float32) {
	c := &e.config
	width := e.spawnWidth + e.spawnWidthDiff*c.SpawnWidth.Scale(percent)
	height := e.spawnHeight + e.spawnHeightDiff*c.SpawnHeight.Scale(percent)

	switch c.SpawnShape.Shape {
	case SpawnSquare:
		x += rand.Float32()*width - width/2
		y += rand.Float32()*height - height/2
	case SpawnEllipse:
		radiusX := width / 2
		radiusY := height / 2
		if radiusX == 0 || radiusY == 0 {
			break
		}
		scaleY := radiusX / radiusY
		if c.SpawnShape.Edges {
			var spawnAngle float32
			switch c.SpawnShape.Side {
			case SideTop:
				spawnAngle = -rand.Float32() * 179
			case SideBottom:
				spawnAngle = rand.Float32() * 179
			default:
				spawnAngle = rand.Float32() * 360
			}
			sin, cos := sinCosDeg(spawnAngle)
			x += cos * radiusX
			y += sin * radiusX / scaleY
			if !c.Angle.Active {
				p.angle = spawnAngle
				p.angleSin, p.angleCos = sin, cos
			}
		} else {
			radius2 := radiusX * radiusX
			for {
				px := rand.Float32()*width - radiusX
				py := rand.Float32()*width - radiusX
				if px*px+py*py <= radius2 {
					x += px
					y += py / scaleY
					break
				}
			}
		}
	case SpawnLine:
		if width != 0 {
			lineX := width * rand.Float32()
			x += lineX
			y += lineX * (height / width)
		} else {
			y += height * rand.Float32()
		}
	}
	return x, y
}

// updateParticle advances p by delta seconds and reports whether it is
// still alive.
func (e *ParticleEmitter) updateParticle(p *Particle, delta float32) bool {
	c := &e.config
	life := p.currentLife - delta
	if life <= 0 {
		return false
	}
	p.currentLife = life

	percent := 1 - p.currentLife/p.life

	if c.YScale.Active {
		p.SetScale(p.xScale+p.xScaleDiff*c.XScale.Scale(percent), p.yScale+p.yScaleDiff*c.YScale.Scale(percent))
	} else {
		p.SetUniformScale(p.xScale + p.xScaleDiff*c.XScale.Scale(percent))
	}

	if c.Velocity.Active {
		velocity := (p.velocity + p.velocityDiff*c.Velocity.Scale(percent)) * delta
		var vx, vy float32
		if c.angleVaries() {
			angle := p.angle + p.angleDiff*c.Angle.Scale(percent)
			sin, cos := sinCosDeg(angle)
			vx, vy = velocity*cos, velocity*sin
			if c.Rotation.Active {
				rotation := p.rotation + p.rotationDiff*c.Rotation.Scale(percent)
				if c.Aligned {
					rotation += angle
				}
				p.SetRotation(rotation)
			}
		} else {
			vx, vy = velocity*p.angleCos, velocity*p.angleSin
			if c.Aligned || c.Rotation.Active {
				rotation := p.rotation + p.rotationDiff*c.Rotation.Scale(percent)
				if c.Aligned {
					rotation += p.angle
				}
				p.SetRotation(rotation)
			}
		}
		if c.Wind.Active {
			vx += (p.wind + p.windDiff*c.Wind.Scale(percent)) * delta
		}
		if c.Gravity.Active {
			vy += (p.gravity + p.gravityDiff*c.Gravity.Scale(percent)) * delta
		}
		p.Translate(vx, vy)
	} else if c.Rotation.Active {
		p.SetRotation(p.rotation + p.rotationDiff*c.Rotation.Scale(percent))
	}

	e.applyColor(p, percent)

	if c.SpriteMode == SpriteAnimated {
		frames := len(c.Sprites)
		frame := min(int(percent*float32(frames)), frames-1)
		if frame != p.frame {
			sprite := c.Sprites[frame]
			prevWidth, prevHeight := p.Width(), p.Height()
			p.SetRegionFrom(&sprite.TextureRegion)
			p.SetSize(sprite.Width(), sprite.Height())
			p.SetOrigin(sprite.OriginX(), sprite.OriginY())
			p.Translate((prevWidth-sprite.Width())/2, (prevHeight-sprite.Height())/2)
			p.frame = frame
		}
	}
	return true
}

func (e *ParticleEmitter) applyColor(p *Particle, percent float32) {
	c := &e.config
	tint := p.tint
	if len(c.Tint.Timeline) > 1 {
		tint = c.Tint.Color(percent)
	}
	alpha := p.transparency + p.transparencyDiff*c.Transparency.Scale(percent)
	if c.PremultipliedAlpha {
		mult := float32(1)
		if c.Additive {
			mult = 0
		}
		p.SetColor(Color{R: tint[0] * alpha, G: tint[1] * alpha, B: tint[2] * alpha, A: alpha * mult})
		return
	}
	p.SetColor(Color{R: tint[0], G: tint[1], B: tint[2], A: alpha})
}

// Draw submits the live particles to b, setting the blend function the
// emitter needs.
func (e *ParticleEmitter) Draw(b Batch) {
	c := &e.config
	switch {
	case c.PremultipliedAlpha:
		b.SetBlendFunction(BlendOne, BlendOneMinusSrcAlpha)
	case c.Additive:
		b.SetBlendFunction(BlendSrcAlpha, BlendOne)
	default:
		b.SetBlendFunction(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	}
	for _, p := range e.particles[:e.alive] {
		p.Draw(b)
	}
	if !c.KeepBlendFunction && (c.Additive || c.PremultipliedAlpha) {
		b.SetBlendFunction(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	}
}

// scale multiplies every size-like value by s.
func (e *ParticleEmitter) scale(xs, ys, motion float32) {
	c := &e.config
	c.XScale.scale(xs)
	c.YScale.scale(ys)
	c.Velocity.scale(motion)
	c.Gravity.scale(motion)
	c.Wind.scale(motion)
	c.XOffset.scale(xs)
	c.YOffset.scale(ys)
	c.SpawnWidth.scale(xs)
	c.SpawnHeight.scale(ys)
}
