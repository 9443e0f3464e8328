package birch

// ParticleEffect groups emitters that start, move and finish together.
type ParticleEffect struct {
	Emitters []*ParticleEmitter
}

// NewParticleEffect returns an effect over emitters.
func NewParticleEffect(emitters ...*ParticleEmitter) *ParticleEffect {
	return &ParticleEffect{Emitters: emitters}
}

// NewParticleEffectFrom returns an effect with fresh copies of src's emitters.
func NewParticleEffectFrom(src *ParticleEffect) *ParticleEffect {
	e := &ParticleEffect{Emitters: make([]*ParticleEmitter, len(src.Emitters))}
	for i, em := range src.Emitters {
		e.Emitters[i] = NewParticleEmitterFrom(em)
	}
	return e
}

// Start restarts every emitter from the beginning of its duration.
func (e *ParticleEffect) Start() {
	for _, em := range e.Emitters {
		em.Start()
	}
}

// Reset kills all particles and restarts every emitter.
func (e *ParticleEffect) Reset() {
	for _, em := range e.Emitters {
		em.Reset()
	}
}

// Update advances every emitter by delta seconds.
func (e *ParticleEffect) Update(delta float32) {
	for _, em := range e.Emitters {
		em.Update(delta)
	}
}

// Draw draws every emitter in order.
func (e *ParticleEffect) Draw(b Batch) {
	for _, em := range e.Emitters {
		em.Draw(b)
	}
}

// DrawBehind draws only the emitters flagged Behind. Together with
// DrawFront it lets an effect wrap other content.
func (e *ParticleEffect) DrawBehind(b Batch) {
	for _, em := range e.Emitters {
		if em.config.Behind {
			em.Draw(b)
		}
	}
}

// DrawFront draws the emitters not flagged Behind.
func (e *ParticleEffect) DrawFront(b Batch) {
	for _, em := range e.Emitters {
		if !em.config.Behind {
			em.Draw(b)
		}
	}
}

// AllowCompletion lets continuous emitters finish.
func (e *ParticleEffect) AllowCompletion() {
	for _, em := range e.Emitters {
		em.AllowCompletion()
	}
}

// IsComplete reports whether every emitter is complete.
func (e *ParticleEffect) IsComplete() bool {
	for _, em := range e.Emitters {
		if !em.IsComplete() {
			return false
		}
	}
	return true
}

// SetPosition moves every emitter.
func (e *ParticleEffect) SetPosition(x, y float32) {
	for _, em := range e.Emitters {
		em.SetPosition(x, y)
	}
}

// FindEmitter returns the first emitter with the given name, or nil.
func (e *ParticleEffect) FindEmitter(name string) *ParticleEmitter {
	for _, em := range e.Emitters {
		if em.Name() == name {
			return em
		}
	}
	return nil
}

// ScaleEffect multiplies particle sizes, spawn areas and offsets by
// scale, and velocities, wind and gravity by motionScale.
func (e *ParticleEffect) ScaleEffect(scale, motionScale float32) {
	e.ScaleEffectXY(scale, scale, motionScale)
}

// ScaleEffectXY is ScaleEffect with separate x and y factors.
func (e *ParticleEffect) ScaleEffectXY(scaleX, scaleY, motionScale float32) {
	for _, em := range e.Emitters {
		em.scale(scaleX, scaleY, motionScale)
	}
}
