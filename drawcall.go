package glbatch

// DrawMode is the primitive topology a draw call renders with.
// Values match the OpenGL primitive enums so a GL-backed Device can
// pass them straight through.
type DrawMode int

const (
	// DrawLines renders vertices in pairs as line segments.
	DrawLines DrawMode = 0x0001
	// DrawTriangles renders vertices in groups of three.
	DrawTriangles DrawMode = 0x0004
	// DrawQuads renders vertices in groups of four through the shared
	// quad index buffer (two triangles per quad).
	DrawQuads DrawMode = 0x0007
)

// String returns the mode name for logs.
func (m DrawMode) String() string {
	switch m {
	case DrawLines:
		return "lines"
	case DrawTriangles:
		return "triangles"
	case DrawQuads:
		return "quads"
	default:
		return "unknown"
	}
}

// groupSize returns the number of vertices forming one complete
// primitive in this mode. Primitives must never be split across a
// batch flush.
func (m DrawMode) groupSize() int {
	switch m {
	case DrawLines:
		return 2
	case DrawTriangles:
		return 3
	default:
		return 4
	}
}

// DrawCall is one pending draw submission: a contiguous run of batch
// vertices sharing a primitive mode and a texture.
type DrawCall struct {
	Mode        DrawMode
	VertexCount int

	// VertexAlignment is the number of padding vertices appended after
	// this call so the next call starts on a multiple of 4. The shared
	// quad index buffer assumes every 4 vertices form a quad, so quad
	// calls that follow lines or triangles must stay 4-aligned. Padding
	// vertices are never drawn, they only offset the next call.
	VertexAlignment int

	Texture TextureID
}

// quadAlignment returns the padding needed after a call of the given
// mode and vertex count so the following vertices start 4-aligned.
// Quads are already 4-aligned by construction.
func quadAlignment(mode DrawMode, vertexCount int) int {
	switch mode {
	case DrawLines:
		if vertexCount < 4 {
			return vertexCount
		}
		return vertexCount % 4
	case DrawTriangles:
		if vertexCount < 4 {
			return 1
		}
		return 4 - vertexCount%4
	default:
		return 0
	}
}

// drawQueue is the bounded FIFO of draw calls for one render batch.
// Slot count-1 is always the open call that new vertices append to;
// flushing submits calls [0, count) in order.
type drawQueue struct {
	calls []DrawCall
	count int
}

func newDrawQueue(limit int, defaultTexture TextureID) drawQueue {
	q := drawQueue{calls: make([]DrawCall, limit)}
	q.reset(defaultTexture)
	return q
}

// last returns the open draw call.
func (q *drawQueue) last() *DrawCall {
	return &q.calls[q.count-1]
}

// reset re-seeds the queue with a single empty quad call bound to the
// default texture.
func (q *drawQueue) reset(defaultTexture TextureID) {
	for i := range q.calls {
		q.calls[i] = DrawCall{Mode: DrawQuads, Texture: defaultTexture}
	}
	q.count = 1
}
