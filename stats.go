package birch

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// BatchStats is a snapshot of a batch's draw-call counters.
type BatchStats struct {
	RenderCalls       int
	TotalRenderCalls  int
	MaxSpritesInBatch int
	// PendingSprites is the number of quads buffered but not yet flushed.
	PendingSprites int
	// Capacity is the number of quads the batch holds before flushing.
	Capacity int
}

// Stats returns the batch's current counters.
func (b *SpriteBatch) Stats() BatchStats {
	return BatchStats{
		RenderCalls:       b.RenderCalls,
		TotalRenderCalls:  b.TotalRenderCalls,
		MaxSpritesInBatch: b.MaxSpritesInBatch,
		PendingSprites:    b.idx / SpriteSize,
		Capacity:          len(b.vertices) / SpriteSize,
	}
}

// LogStats writes the batch's counters to the logger at debug level.
func (b *SpriteBatch) LogStats() {
	s := b.Stats()
	Logger().Debug("sprite batch stats",
		slog.Int("renderCalls", s.RenderCalls),
		slog.Int("totalRenderCalls", s.TotalRenderCalls),
		slog.Int("maxSpritesInBatch", s.MaxSpritesInBatch),
		slog.Int("pending", s.PendingSprites),
		slog.Int("capacity", s.Capacity))
}

// String formats the stats for an overlay.
func (s BatchStats) String() string {
	return fmt.Sprintf("calls: %d | total: %d | max/batch: %d/%d",
		s.RenderCalls, s.TotalRenderCalls, s.MaxSpritesInBatch, s.Capacity)
}

// statsOverlay is the backing image for DrawStats, reused across frames.
var statsOverlay *ebiten.Image

// DrawStats prints FPS, TPS and the batch stats in the top-left corner of
// screen over a translucent background.
func DrawStats(screen *ebiten.Image, stats BatchStats) {
	if statsOverlay == nil {
		statsOverlay = ebiten.NewImage(260, 48)
	}
	statsOverlay.Clear()
	statsOverlay.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(statsOverlay, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), stats))
	screen.DrawImage(statsOverlay, nil)
}
