package birch

import "github.com/go-gl/mathgl/mgl32"

// Sprite vertex layout: four corners of [x, y, packedColor, u, v].
// Corner order is top-left, bottom-left, bottom-right, top-right.
const (
	VertexSize = 2 + 1 + 2
	SpriteSize = 4 * VertexSize

	X1 = 0
	Y1 = 1
	C1 = 2
	U1 = 3
	V1 = 4
	X2 = 5
	Y2 = 6
	C2 = 7
	U2 = 8
	V2 = 9
	X3 = 10
	Y3 = 11
	C3 = 12
	U3 = 13
	V3 = 14
	X4 = 15
	Y4 = 16
	C4 = 17
	U4 = 18
	V4 = 19
)

// Uniform names set by SpriteBatch on its shader.
const (
	UniformProjTrans = "u_projTrans"
	UniformTexture   = "u_texture"
)

// Texture is a GPU image a batch can sample from. Textures are borrowed by
// regions and batches; their lifetime is managed by the caller.
type Texture interface {
	Width() int
	Height() int
	// Bind makes the texture active for subsequent draws.
	Bind()
}

// AttributeUsage identifies the role of a vertex attribute.
type AttributeUsage uint8

const (
	UsagePosition    AttributeUsage = iota // x, y
	UsageColorPacked                       // ABGR8888 packed into one float
	UsageTexCoords                         // u, v
)

// VertexAttribute describes one attribute of an interleaved vertex.
type VertexAttribute struct {
	Usage      AttributeUsage
	Components int
	Alias      string
}

// SpriteAttributes is the vertex layout written by SpriteBatch.
var SpriteAttributes = []VertexAttribute{
	{Usage: UsagePosition, Components: 2, Alias: "a_position"},
	{Usage: UsageColorPacked, Components: 1, Alias: "a_color"},
	{Usage: UsageTexCoords, Components: 2, Alias: "a_texCoord0"},
}

// Primitive selects how indices are assembled.
type Primitive uint8

const (
	PrimitiveTriangles Primitive = iota
)

// Mesh is a vertex and index buffer pair owned by a batch.
type Mesh interface {
	// SetVertices uploads count floats from vertices starting at offset.
	SetVertices(vertices []float32, offset, count int)
	SetIndices(indices []uint16)
	// Render draws count indices starting at offset with the given shader.
	Render(shader ShaderProgram, primitive Primitive, offset, count int)
	Dispose()
}

// ShaderProgram is a compiled GPU program.
type ShaderProgram interface {
	Bind()
	IsCompiled() bool
	Log() string
	SetUniformMatrix(name string, m mgl32.Mat4)
	SetUniformi(name string, v int)
	Dispose()
}

// BlendFactor is a blend equation factor.
type BlendFactor int8

const (
	// BlendUnset leaves the backend's current blend function untouched.
	BlendUnset BlendFactor = iota - 1
	BlendZero
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendDstColor
	BlendOneMinusDstColor
)

// Backend creates GPU resources and owns fixed-function state.
type Backend interface {
	NewMesh(maxVertices, maxIndices int, attributes []VertexAttribute) Mesh
	NewDefaultShader() (ShaderProgram, error)
	// Size returns the drawable size in pixels.
	Size() (width, height int)
	EnableBlending()
	DisableBlending()
	SetBlendFunc(srcColor, dstColor, srcAlpha, dstAlpha BlendFactor)
}
