package birch

// AtlasRegion is a TextureRegion packed into an atlas page, carrying the
// metadata needed to rebuild the image as it was before packing: the packer
// may strip transparent borders (whitespace) and rotate the image 90
// degrees.
type AtlasRegion struct {
	TextureRegion

	// Index is the animation frame number parsed from the source name, or
	// -1 if the name carried none.
	Index int
	// Name is the source image name without its index or extension.
	Name string
	// OffsetX and OffsetY are the distance from the top-left corner of the
	// original image to the top-left corner of the packed image.
	OffsetX, OffsetY float32
	// PackedWidth and PackedHeight are the size of the stripped image as
	// stored in the page. When Rotate is set they are swapped relative to
	// how the image is displayed; see RotatedPackedWidth.
	PackedWidth, PackedHeight int
	// OriginalWidth and OriginalHeight are the size before stripping.
	OriginalWidth, OriginalHeight int
	// Rotate is true if the image was stored rotated 90 degrees clockwise
	// in the page.
	Rotate bool
	// Degrees is the clockwise rotation of the stored image. Only 0 and 90
	// are handled by the UV logic.
	Degrees int
	// Names and Values hold arbitrary per-region integer metadata, for
	// example nine-patch "split" and "pad" values.
	Names  []string
	Values [][]int
}

// NewAtlasRegion returns an unpacked region of the texture: packed and
// original sizes both equal the pixel size.
func NewAtlasRegion(t Texture, x, y, width, height int) *AtlasRegion {
	r := &AtlasRegion{Index: -1}
	r.texture = t
	r.SetRegion(x, y, width, height)
	r.OriginalWidth, r.OriginalHeight = width, height
	r.PackedWidth, r.PackedHeight = width, height
	return r
}

// NewAtlasRegionFrom returns an independent copy of src. The metadata
// slices are copied too, so mutating one region never affects the other.
func NewAtlasRegionFrom(src *AtlasRegion) *AtlasRegion {
	r := *src
	r.Names = append([]string(nil), src.Names...)
	r.Values = make([][]int, len(src.Values))
	for i, v := range src.Values {
		r.Values[i] = append([]int(nil), v...)
	}
	return &r
}

// NewAtlasRegionFromRegion wraps a plain region; packed and original sizes
// are taken from its pixel size.
func NewAtlasRegionFromRegion(src *TextureRegion) *AtlasRegion {
	r := &AtlasRegion{Index: -1}
	r.SetRegionFrom(src)
	r.PackedWidth, r.PackedHeight = src.RegionWidth(), src.RegionHeight()
	r.OriginalWidth, r.OriginalHeight = r.PackedWidth, r.PackedHeight
	return r
}

// Flip flips the region's UVs and mirrors the whitespace offsets so they
// still describe the stripped margin on the flipped image.
func (r *AtlasRegion) Flip(x, y bool) {
	r.TextureRegion.Flip(x, y)
	if x {
		r.OffsetX = float32(r.OriginalWidth) - r.OffsetX - r.RotatedPackedWidth()
	}
	if y {
		r.OffsetY = float32(r.OriginalHeight) - r.OffsetY - r.RotatedPackedHeight()
	}
}

// RotatedPackedWidth returns the packed width as the image is displayed:
// PackedHeight when rotated.
func (r *AtlasRegion) RotatedPackedWidth() float32 {
	if r.Rotate {
		return float32(r.PackedHeight)
	}
	return float32(r.PackedWidth)
}

// RotatedPackedHeight returns the packed height as the image is displayed:
// PackedWidth when rotated.
func (r *AtlasRegion) RotatedPackedHeight() float32 {
	if r.Rotate {
		return float32(r.PackedWidth)
	}
	return float32(r.PackedHeight)
}

// FindValue returns the metadata values stored under name, or nil.
func (r *AtlasRegion) FindValue(name string) []int {
	for i, n := range r.Names {
		if n == name {
			return r.Values[i]
		}
	}
	return nil
}
