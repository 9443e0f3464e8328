// Package birch is a 2D sprite batching runtime for [Ebitengine].
//
// Birch buffers textured quads into a shared vertex array and submits them
// in as few draw calls as possible. On top of the batch it provides texture
// regions, packed atlases with whitespace stripping and rotation, sprites,
// a CPU-adjusting batch for cheap transform changes, particle emitters,
// an orthographic camera and tweens (via [gween]).
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop and hands the app an [EbitenBackend] targeting the screen:
//
//	type game struct {
//		batch *birch.SpriteBatch
//		hero  *birch.Sprite
//	}
//
//	func (g *game) Update(dt float32) error { return nil }
//
//	func (g *game) Draw(backend *birch.EbitenBackend) {
//		if g.batch == nil {
//			g.batch, _ = birch.NewSpriteBatch(backend, birch.BatchConfig{})
//		}
//		g.batch.Begin()
//		g.hero.Draw(g.batch)
//		g.batch.End()
//	}
//
//	birch.Run(&game{...}, birch.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// # Coordinates
//
// The world is y-down with the origin at the top-left, and so are texture
// coordinates. Every quad stores its corners top-left, bottom-left,
// bottom-right, top-right, each as [x, y, packedColor, u, v]; the X1..V4
// constants index that layout. Rotations are in degrees and positive
// angles turn clockwise on screen.
//
// # Batching
//
// A [SpriteBatch] flushes when the texture changes, the buffer fills, the
// blend function, shader or matrices change, or [SpriteBatch.End] is
// called. [CpuSpriteBatch] instead applies transform changes to vertices
// on the CPU so that many differently transformed quads share one flush.
//
// Misuse (drawing outside Begin/End, a nil texture, a ragged vertex slice)
// panics with an error wrapping [ErrInvalidOperation] or
// [ErrInvalidArgument]. Construction and loading return errors instead.
//
// # Atlases
//
// [LoadAtlas] reads TexturePacker JSON (hash or array format). Regions
// keep their packing metadata so that [AtlasSprite] can draw them at the
// position and size of the original, untrimmed image.
//
// # Logging
//
// Birch logs through [log/slog] and is silent until [SetLogger] is called.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package birch
