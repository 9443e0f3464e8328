package birch

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureAtlas holds the page textures of a packed atlas and its regions.
// Regions are ordered by page and then by source name.
type TextureAtlas struct {
	// Pages contains the page textures indexed by page number.
	Pages   []Texture
	regions []*AtlasRegion
}

// NewTextureAtlas returns an empty atlas over pages. Regions are added with
// AddRegion.
func NewTextureAtlas(pages ...Texture) *TextureAtlas {
	return &TextureAtlas{Pages: pages}
}

// AddRegion adds an unpacked region of t named name. A trailing _<digits>
// in name becomes the region's Index.
func (a *TextureAtlas) AddRegion(name string, t Texture, x, y, width, height int) *AtlasRegion {
	r := NewAtlasRegion(t, x, y, width, height)
	r.Name, r.Index = splitRegionName(name)
	a.regions = append(a.regions, r)
	return r
}

// Regions returns all regions. The slice is shared with the atlas.
func (a *TextureAtlas) Regions() []*AtlasRegion {
	return a.regions
}

// FindRegion returns the first region named name, or nil.
func (a *TextureAtlas) FindRegion(name string) *AtlasRegion {
	for _, r := range a.regions {
		if r.Name == name {
			return r
		}
	}
	Logger().Warn("atlas region not found", slog.String("name", name))
	return nil
}

// FindRegionIndex returns the region named name with the given index, or
// nil.
func (a *TextureAtlas) FindRegionIndex(name string, index int) *AtlasRegion {
	for _, r := range a.regions {
		if r.Name == name && r.Index == index {
			return r
		}
	}
	Logger().Warn("atlas region not found", slog.String("name", name), slog.Int("index", index))
	return nil
}

// FindRegions returns every region named name, ordered by index. Use it to
// collect animation frames.
func (a *TextureAtlas) FindRegions(name string) []*AtlasRegion {
	var out []*AtlasRegion
	for _, r := range a.regions {
		if r.Name == name {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// CreateSprite returns a sprite for the first region named name, sized and
// positioned as the original unpacked image. A missing name logs a warning
// and yields a sprite showing a 1x1 magenta placeholder.
func (a *TextureAtlas) CreateSprite(name string) *AtlasSprite {
	for _, r := range a.regions {
		if r.Name == name {
			return NewAtlasSprite(r)
		}
	}
	Logger().Warn("atlas region not found, using placeholder", slog.String("name", name))
	return NewAtlasSprite(PlaceholderRegion())
}

// CreateSpriteIndex is CreateSprite for the region with the given index.
func (a *TextureAtlas) CreateSpriteIndex(name string, index int) *AtlasSprite {
	if r := a.FindRegionIndex(name, index); r != nil {
		return NewAtlasSprite(r)
	}
	return NewAtlasSprite(PlaceholderRegion())
}

// CreateSprites returns a sprite for every region named name, ordered by
// index.
func (a *TextureAtlas) CreateSprites(name string) []*AtlasSprite {
	regions := a.FindRegions(name)
	out := make([]*AtlasSprite, len(regions))
	for i, r := range regions {
		out[i] = NewAtlasSprite(r)
	}
	return out
}

// splitRegionName strips the file extension from name and splits off a
// trailing _<digits> frame index. Names without one get index -1.
func splitRegionName(name string) (string, int) {
	name = strings.TrimSuffix(name, path.Ext(name))
	i := strings.LastIndexByte(name, '_')
	if i < 0 || i == len(name)-1 {
		return name, -1
	}
	index, err := strconv.Atoi(name[i+1:])
	if err != nil || index < 0 || strings.ContainsAny(name[i+1:], "+-") {
		return name, -1
	}
	return name[:i], index
}

// magenta placeholder singleton (no sync.Once, batches are single-threaded)
var placeholderTexture *ImageTexture

// PlaceholderRegion returns a fresh region covering a shared 1x1 magenta
// texture.
func PlaceholderRegion() *AtlasRegion {
	if placeholderTexture == nil {
		img := ebiten.NewImage(1, 1)
		img.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
		placeholderTexture = NewImageTexture(img)
	}
	r := NewAtlasRegion(placeholderTexture, 0, 0, 1, 1)
	r.Name = "placeholder"
	return r
}

// LoadAtlas parses TexturePacker JSON data and binds regions to pages.
// Supports both the hash format (single "frames" object, page 0) and the
// array format ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []Texture) (*TextureAtlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("birch: parse atlas JSON: %w", err)
	}

	atlas := NewTextureAtlas(pages...)
	switch {
	case probe.Textures != nil:
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("birch: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect  `json:"frame"`
	Rotated          bool      `json:"rotated"`
	Trimmed          bool      `json:"trimmed"`
	SpriteSourceSize jsonRect  `json:"spriteSourceSize"`
	SourceSize       jsonSize  `json:"sourceSize"`
	Borders          *jsonRect `json:"borders"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, atlas *TextureAtlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("birch: parse atlas frames: %w", err)
	}
	return addFrames(frames, page, atlas)
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *TextureAtlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("birch: parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		if err := addFrames(tex.Frames, i, atlas); err != nil {
			return err
		}
	}
	return nil
}

func addFrames(frames map[string]jsonFrame, page int, atlas *TextureAtlas) error {
	if page >= len(atlas.Pages) || atlas.Pages[page] == nil {
		return fmt.Errorf("birch: atlas page %d has no texture (%d given)", page, len(atlas.Pages))
	}
	names := make([]string, 0, len(frames))
	for name := range frames {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		atlas.regions = append(atlas.regions, frameToRegion(name, frames[name], atlas.Pages[page]))
	}
	return nil
}

// frameToRegion converts a TexturePacker frame. Frame sizes are as
// displayed; a rotated frame occupies a height x width rect in the page.
func frameToRegion(name string, f jsonFrame, page Texture) *AtlasRegion {
	w, h := f.Frame.W, f.Frame.H
	storedW, storedH := w, h
	if f.Rotated {
		storedW, storedH = h, w
	}

	r := NewAtlasRegion(page, f.Frame.X, f.Frame.Y, storedW, storedH)
	r.Name, r.Index = splitRegionName(name)
	r.Rotate = f.Rotated
	if f.Rotated {
		r.Degrees = 90
	}
	r.OffsetX = float32(f.SpriteSourceSize.X)
	r.OffsetY = float32(f.SpriteSourceSize.Y)
	r.OriginalWidth, r.OriginalHeight = f.SourceSize.W, f.SourceSize.H
	if r.OriginalWidth == 0 || r.OriginalHeight == 0 {
		r.OriginalWidth, r.OriginalHeight = w, h
	}
	if b := f.Borders; b != nil {
		r.Names = append(r.Names, "split")
		r.Values = append(r.Values, []int{b.X, r.OriginalWidth - b.X - b.W, b.Y, r.OriginalHeight - b.Y - b.H})
	}
	return r
}
