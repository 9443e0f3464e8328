package birch

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	if cam.Zoom != 1 {
		t.Errorf("Zoom = %v, want 1", cam.Zoom)
	}
	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("position = (%v,%v), want (400,300)", cam.X, cam.Y)
	}
	// World and screen coincide until the camera moves.
	sx, sy := cam.Project(123, 45)
	assertVertexNear(t, "sx", sx, 123)
	assertVertexNear(t, "sy", sy, 45)
}

func TestCameraCombinedMapsCenterToOrigin(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	cam.X, cam.Y = 1000, -200
	cam.Zoom = 3
	cam.Rotation = 25
	cam.UpdateMatrices()

	x, y := transformPoint(cam.Combined(), 1000, -200)
	assertVertexNear(t, "ndc x", x, 0)
	assertVertexNear(t, "ndc y", y, 0)

	x, y = transformPoint(cam.Projection(), 0, 0)
	assertVertexNear(t, "projection x", x, -1)
	assertVertexNear(t, "projection y", y, 1)
}

func TestCameraTranslation(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	cam.Translate(100, 0)
	cam.UpdateMatrices()
	sx, _ := cam.Project(500, 300)
	assertVertexNear(t, "sx", sx, 400)
}

func TestCameraZoom(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	cam.Zoom = 2
	cam.UpdateMatrices()
	a, _ := cam.Project(400, 300)
	b, _ := cam.Project(401, 300)
	assertVertexNear(t, "one world unit", b-a, 2)
}

func TestCameraRotation90(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	cam.Rotation = 90
	cam.UpdateMatrices()
	// Turning the camera clockwise turns the world counter-clockwise.
	sx, sy := cam.Project(cam.X+1, cam.Y)
	assertVertexNear(t, "sx", sx, 400)
	assertVertexNear(t, "sy", sy, 299)
}

func TestCameraUnprojectRoundTrip(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	cam.X, cam.Y = 42, -17
	cam.Zoom = 1.5
	cam.Rotation = 17
	cam.UpdateMatrices()

	sx, sy := cam.Project(123, -456)
	wx, wy := cam.Unproject(sx, sy)
	if abs32(wx-123) > 1e-3 {
		t.Errorf("wx = %v, want 123", wx)
	}
	if abs32(wy+456) > 1e-3 {
		t.Errorf("wy = %v, want -456", wy)
	}
}

func TestCameraZeroZoomKeepsLastInverse(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	cam.Zoom = 0
	cam.UpdateMatrices()
	wx, wy := cam.Unproject(400, 300)
	assertVertexNear(t, "wx", wx, 400)
	assertVertexNear(t, "wy", wy, 300)
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	b := cam.VisibleBounds()
	if abs32(b.X) > 1e-3 || abs32(b.Y) > 1e-3 || abs32(b.Width-800) > 1e-3 || abs32(b.Height-600) > 1e-3 {
		t.Errorf("VisibleBounds = %+v, want (0,0,800,600)", b)
	}

	cam.Zoom = 2
	cam.UpdateMatrices()
	b = cam.VisibleBounds()
	if abs32(b.X-200) > 1e-3 || abs32(b.Width-400) > 1e-3 || abs32(b.Height-300) > 1e-3 {
		t.Errorf("VisibleBounds at zoom 2 = %+v, want (200,150,400,300)", b)
	}
}

func TestCameraFollow(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	target := NewSprite(newFakeTexture(10, 10))
	target.SetPosition(95, 95)

	cam.Follow(target, 0, 0, 1)
	cam.Update(1.0 / 60)
	assertVertexNear(t, "X", cam.X, 100)
	assertVertexNear(t, "Y", cam.Y, 100)

	cam.Unfollow()
	target.SetPosition(500, 500)
	cam.Update(1.0 / 60)
	assertVertexNear(t, "X after Unfollow", cam.X, 100)
}

func TestCameraFollowLerpAndOffset(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	target := NewSprite(newFakeTexture(10, 10))
	target.SetPosition(95, 95)

	cam.Follow(target, 10, -20, 0.5)
	cam.Update(1.0 / 60)
	assertVertexNear(t, "X", cam.X, 400+(110-400)*0.5)
	assertVertexNear(t, "Y", cam.Y, 300+(80-300)*0.5)
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	cam.ScrollTo(100, 200, 1, ease.Linear)
	if !cam.IsScrolling() {
		t.Fatal("IsScrolling = false after ScrollTo")
	}

	cam.Update(0.5)
	assertVertexNear(t, "X halfway", cam.X, 250)
	assertVertexNear(t, "Y halfway", cam.Y, 250)

	cam.Update(0.5)
	assertVertexNear(t, "X", cam.X, 100)
	assertVertexNear(t, "Y", cam.Y, 200)
	if cam.IsScrolling() {
		t.Error("IsScrolling = true after the scroll finished")
	}
}

func TestCameraBounds(t *testing.T) {
	cam := NewOrthographicCamera(100, 100)
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 1000, Height: 1000})

	cam.X, cam.Y = 0, 0
	cam.Update(0)
	if cam.X != 50 || cam.Y != 50 {
		t.Errorf("clamped min = (%v,%v), want (50,50)", cam.X, cam.Y)
	}

	cam.X, cam.Y = 999, 999
	cam.Update(0)
	if cam.X != 950 || cam.Y != 950 {
		t.Errorf("clamped max = (%v,%v), want (950,950)", cam.X, cam.Y)
	}

	cam.Zoom = 2
	cam.X = 0
	cam.Update(0)
	if cam.X != 25 {
		t.Errorf("clamped at zoom 2 = %v, want 25", cam.X)
	}

	cam.ClearBounds()
	cam.X, cam.Y = -999, -999
	cam.Update(0)
	if cam.X != -999 || cam.Y != -999 {
		t.Errorf("after ClearBounds = (%v,%v), want (-999,-999)", cam.X, cam.Y)
	}
}

func TestCameraBoundsSmallWorld(t *testing.T) {
	cam := NewOrthographicCamera(800, 600)
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.X, cam.Y = 0, 0
	cam.Update(0)
	if cam.X != 50 || cam.Y != 50 {
		t.Errorf("small world = (%v,%v), want centered (50,50)", cam.X, cam.Y)
	}
}

func TestCameraDrivesBatch(t *testing.T) {
	cam := NewOrthographicCamera(640, 480)
	cam.X, cam.Y = 1000, 1000
	cam.UpdateMatrices()

	b, fb := newTestBatch(t, 4)
	b.SetProjectionMatrix(cam.Combined())
	b.Begin()
	b.Draw(newFakeTexture(8, 8), 1000, 1000)
	b.End()

	x, y := transformPoint(fb.renders[0].projTrans, 1000, 1000)
	assertVertexNear(t, "ndc x", x, 0)
	assertVertexNear(t, "ndc y", y, 0)
}
