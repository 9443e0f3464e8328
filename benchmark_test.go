package birch

import (
	"testing"
)

// setupBenchSprites creates n 32x32 sprites on one texture laid out in a grid.
func setupBenchSprites(n int) []*Sprite {
	tex := newFakeTexture(256, 256)
	sprites := make([]*Sprite, n)
	for i := range sprites {
		s := NewSpriteXYWH(tex, (i%8)*32, 0, 32, 32)
		s.SetPosition(float32(i%100)*40, float32(i/100)*40)
		s.SetOriginCenter()
		sprites[i] = s
	}
	return sprites
}

func newBenchBatch(b *testing.B) (*SpriteBatch, *fakeBackend) {
	b.Helper()
	fb := newFakeBackend()
	batch, err := NewSpriteBatch(fb, BatchConfig{})
	if err != nil {
		b.Fatal(err)
	}
	return batch, fb
}

// --- Sprite Rendering Benchmarks ---

func BenchmarkDraw_10000Sprites_Static(b *testing.B) {
	sprites := setupBenchSprites(10000)
	batch, fb := newBenchBatch(b)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		batch.Begin()
		for _, s := range sprites {
			s.Draw(batch)
		}
		batch.End()
		fb.renders = fb.renders[:0]
	}
}

func BenchmarkDraw_10000Sprites_Rotating(b *testing.B) {
	sprites := setupBenchSprites(10000)
	batch, fb := newBenchBatch(b)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, s := range sprites {
			s.Rotate(1)
		}
		batch.Begin()
		for _, s := range sprites {
			s.Draw(batch)
		}
		batch.End()
		fb.renders = fb.renders[:0]
	}
}

func BenchmarkCpuBatch_TransformChanges(b *testing.B) {
	sprites := setupBenchSprites(1000)
	fb := newFakeBackend()
	batch, err := NewCpuSpriteBatch(fb, BatchConfig{})
	if err != nil {
		b.Fatal(err)
	}
	var a Affine2

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		batch.Begin()
		for j, s := range sprites {
			a.SetToTrnRotScl(float32(j), 0, float32(j%360), 1, 1)
			batch.SetTransformMatrix(a.Mat4())
			s.Draw(batch)
		}
		batch.End()
		fb.renders = fb.renders[:0]
	}
}

func BenchmarkParticleEffect_Update(b *testing.B) {
	cfg := testEmitterConfig()
	cfg.MaxParticleCount = 1000
	cfg.Continuous = true
	cfg.Emission.SetHigh(2000)
	e := NewParticleEmitter(cfg)
	e.Start()
	for i := 0; i < 60; i++ {
		e.Update(1.0 / 60)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Update(1.0 / 60)
	}
}
