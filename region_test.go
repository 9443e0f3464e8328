package birch

import "testing"

func TestRegionSetRegionPixels(t *testing.T) {
	tex := newFakeTexture(256, 256)
	r := NewTextureRegionXYWH(tex, 0, 0, 128, 64)

	assertVertexNear(t, "U", r.U(), 0)
	assertVertexNear(t, "V", r.V(), 0)
	assertVertexNear(t, "U2", r.U2(), 0.5)
	assertVertexNear(t, "V2", r.V2(), 0.25)
	if r.RegionWidth() != 128 || r.RegionHeight() != 64 {
		t.Errorf("size = %dx%d, want 128x64", r.RegionWidth(), r.RegionHeight())
	}
	if r.RegionX() != 0 || r.RegionY() != 0 {
		t.Errorf("origin = (%d,%d), want (0,0)", r.RegionX(), r.RegionY())
	}
}

func TestRegionPixelUVInvariant(t *testing.T) {
	tex := newFakeTexture(300, 170)
	r := NewTextureRegion(tex)
	rects := [][4]int{
		{0, 0, 300, 170},
		{13, 7, 41, 99},
		{100, 50, -30, 20},
		{5, 120, 17, -40},
		{299, 169, 1, 1},
	}
	for _, rc := range rects {
		r.SetRegion(rc[0], rc[1], rc[2], rc[3])
		wantW := roundF(abs32(r.U2()-r.U()) * 300)
		wantH := roundF(abs32(r.V2()-r.V()) * 170)
		if rc[2] == 1 && rc[3] == 1 {
			// The quarter-texel nudge shrinks the span to half a texel.
			wantW, wantH = 1, 1
		}
		if r.RegionWidth() != wantW || r.RegionHeight() != wantH {
			t.Errorf("SetRegion%v: size = %dx%d, want %dx%d", rc, r.RegionWidth(), r.RegionHeight(), wantW, wantH)
		}
		if r.RegionWidth() != absInt(rc[2]) || r.RegionHeight() != absInt(rc[3]) {
			t.Errorf("SetRegion%v: size = %dx%d, want |w|x|h|", rc, r.RegionWidth(), r.RegionHeight())
		}
	}
}

func TestRegionNegativeSizeFlips(t *testing.T) {
	r := NewTextureRegionXYWH(newFakeTexture(100, 100), 50, 50, -20, 10)
	if !r.IsFlipX() {
		t.Error("IsFlipX = false, want true")
	}
	if r.IsFlipY() {
		t.Error("IsFlipY = true, want false")
	}
	if r.RegionWidth() != 20 {
		t.Errorf("RegionWidth = %d, want 20", r.RegionWidth())
	}
}

func TestRegionSingleTexelNudge(t *testing.T) {
	r := NewTextureRegionXYWH(newFakeTexture(4, 4), 1, 2, 1, 1)
	assertVertexNear(t, "U", r.U(), (1+0.25)/4)
	assertVertexNear(t, "U2", r.U2(), (2-0.25)/4)
	assertVertexNear(t, "V", r.V(), (2+0.25)/4)
	assertVertexNear(t, "V2", r.V2(), (3-0.25)/4)
	if r.RegionWidth() != 1 || r.RegionHeight() != 1 {
		t.Errorf("size = %dx%d, want 1x1", r.RegionWidth(), r.RegionHeight())
	}
}

func TestRegionFlipIdempotent(t *testing.T) {
	r := NewTextureRegionXYWH(newFakeTexture(64, 64), 8, 16, 24, 32)
	u, v, u2, v2 := r.U(), r.V(), r.U2(), r.V2()
	for _, f := range [][2]bool{{true, false}, {false, true}, {true, true}} {
		r.Flip(f[0], f[1])
		r.Flip(f[0], f[1])
		if r.U() != u || r.V() != v || r.U2() != u2 || r.V2() != v2 {
			t.Errorf("Flip%v twice: UVs = (%v,%v,%v,%v), want (%v,%v,%v,%v)",
				f, r.U(), r.V(), r.U2(), r.V2(), u, v, u2, v2)
		}
	}
}

func TestRegionSetRegionWidthFlipped(t *testing.T) {
	tex := newFakeTexture(100, 100)
	r := NewTextureRegionXYWH(tex, 10, 0, 20, 10)
	r.SetRegionWidth(40)
	assertVertexNear(t, "U", r.U(), 0.1)
	assertVertexNear(t, "U2", r.U2(), 0.5)

	r.Flip(true, false)
	r.SetRegionWidth(10)
	// Flipped: U2 (the left edge) stays, U moves.
	assertVertexNear(t, "U2", r.U2(), 0.1)
	assertVertexNear(t, "U", r.U(), 0.2)
	if r.RegionWidth() != 10 {
		t.Errorf("RegionWidth = %d, want 10", r.RegionWidth())
	}
}

func TestRegionSetU2KeepsWidthInSync(t *testing.T) {
	r := NewTextureRegionXYWH(newFakeTexture(200, 100), 0, 0, 50, 50)
	r.SetU2(0.75)
	if r.RegionWidth() != 150 {
		t.Errorf("RegionWidth = %d, want 150", r.RegionWidth())
	}
	r.SetV(0.25)
	if r.RegionHeight() != 25 {
		t.Errorf("RegionHeight = %d, want 25", r.RegionHeight())
	}
}

func TestRegionScrollWraps(t *testing.T) {
	r := NewTextureRegionXYWH(newFakeTexture(100, 100), 80, 0, 40, 100)
	r.Scroll(0.5, 0)
	assertVertexNear(t, "U", r.U(), 0.3)
	assertVertexNear(t, "U2", r.U2(), 0.7)
	if r.RegionWidth() != 40 {
		t.Errorf("RegionWidth = %d, want 40", r.RegionWidth())
	}
}

func TestRegionSplit(t *testing.T) {
	tex := newFakeTexture(100, 70)
	tiles := SplitTexture(tex, 32, 16)
	if len(tiles) != 70/16 {
		t.Fatalf("rows = %d, want %d", len(tiles), 70/16)
	}
	for row, cols := range tiles {
		if len(cols) != 100/32 {
			t.Fatalf("row %d: cols = %d, want %d", row, len(cols), 100/32)
		}
		for col, tile := range cols {
			if tile.RegionX() != col*32 || tile.RegionY() != row*16 {
				t.Errorf("tile[%d][%d] at (%d,%d), want (%d,%d)", row, col, tile.RegionX(), tile.RegionY(), col*32, row*16)
			}
			if tile.RegionWidth() != 32 || tile.RegionHeight() != 16 {
				t.Errorf("tile[%d][%d] size %dx%d, want 32x16", row, col, tile.RegionWidth(), tile.RegionHeight())
			}
		}
	}
}

func TestRegionSplitInvalidTileSize(t *testing.T) {
	tex := newFakeTexture(64, 64)
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-4, 8}} {
		expectPanic(t, ErrInvalidArgument, func() { SplitTexture(tex, size[0], size[1]) })
	}
}

func TestRegionSplitSubRegion(t *testing.T) {
	r := NewTextureRegionXYWH(newFakeTexture(128, 128), 64, 32, 40, 20)
	tiles := r.Split(16, 16)
	if len(tiles) != 1 || len(tiles[0]) != 2 {
		t.Fatalf("grid = %dx%d, want 1x2", len(tiles), len(tiles[0]))
	}
	if tiles[0][1].RegionX() != 80 || tiles[0][1].RegionY() != 32 {
		t.Errorf("tile[0][1] at (%d,%d), want (80,32)", tiles[0][1].RegionX(), tiles[0][1].RegionY())
	}
}

func TestRegionWithin(t *testing.T) {
	tex := newFakeTexture(128, 128)
	parent := NewTextureRegionXYWH(tex, 32, 32, 64, 64)
	child := NewTextureRegionWithin(parent, 8, 4, 16, 16)
	if child.RegionX() != 40 || child.RegionY() != 36 {
		t.Errorf("child at (%d,%d), want (40,36)", child.RegionX(), child.RegionY())
	}
	if child.Texture() != tex {
		t.Error("child texture differs from parent")
	}
}

func TestRegionTextureUnsetPanics(t *testing.T) {
	var r TextureRegion
	expectPanic(t, ErrTextureUnset, func() { r.SetRegion(0, 0, 1, 1) })
}
