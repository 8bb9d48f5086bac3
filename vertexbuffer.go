package glbatch

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// indexByteSize is the byte width of one element-buffer index (uint32).
const indexByteSize = 4

// VertexBuffer holds the CPU-side vertex arrays for one batch buffer
// and the GPU objects mirroring them. Attributes live in separate
// tightly packed arrays: positions (3 floats), texcoords (2 floats) and
// colors (4 bytes) per vertex.
//
// elementCount is measured in quads; the buffer stores elementCount*4
// vertices and a static index buffer with 6 indices per quad.
type VertexBuffer struct {
	elementCount int

	vertices  []float32
	texcoords []float32
	colors    []byte

	vao       VertexArrayID
	positions BufferID
	uvs       BufferID
	cols      BufferID
	indices   BufferID

	// change detector: hash of the live range last uploaded to the GPU
	// mirror of this buffer. A flush with identical data skips the
	// upload.
	lastHash  uint64
	hashValid bool
	scratch   []byte
}

// newVertexBuffer allocates CPU arrays for elementCount quads, creates
// the GPU mirrors and records the attribute layout into a VAO when the
// device supports one.
func newVertexBuffer(dev Device, caps Capabilities, elementCount int, locs ShaderLocations) *VertexBuffer {
	b := &VertexBuffer{
		elementCount: elementCount,
		vertices:     make([]float32, elementCount*4*3),
		texcoords:    make([]float32, elementCount*4*2),
		colors:       make([]byte, elementCount*4*4),
	}

	// Shared quad index pattern: two triangles per quad.
	idx := make([]uint32, elementCount*6)
	for i, k := 0, uint32(0); i < len(idx); i, k = i+6, k+4 {
		idx[i] = k
		idx[i+1] = k + 1
		idx[i+2] = k + 2
		idx[i+3] = k
		idx[i+4] = k + 2
		idx[i+5] = k + 3
	}

	if caps.VertexArrayObjects {
		b.vao = dev.CreateVertexArray()
		dev.BindVertexArray(b.vao)
	}

	b.positions = dev.CreateArrayBuffer(len(b.vertices) * 4)
	dev.SetVertexAttrib(locs.Position, b.positions, 3, AttribFloat32, false)

	b.uvs = dev.CreateArrayBuffer(len(b.texcoords) * 4)
	dev.SetVertexAttrib(locs.TexCoord, b.uvs, 2, AttribFloat32, false)

	b.cols = dev.CreateArrayBuffer(len(b.colors))
	dev.SetVertexAttrib(locs.Color, b.cols, 4, AttribUint8, true)

	b.indices = dev.CreateElementBuffer(idx)
	dev.BindElementBuffer(b.indices)

	if caps.VertexArrayObjects {
		dev.BindVertexArray(InvalidID)
	}

	return b
}

// vertexCapacity returns the number of vertices the buffer can hold.
func (b *VertexBuffer) vertexCapacity() int { return b.elementCount * 4 }

// upload pushes the live range [0, count) of every attribute array to
// the GPU mirrors. The upload is skipped when the live range hashes
// identical to what this buffer already holds on the GPU. Reports
// whether an upload happened.
func (b *VertexBuffer) upload(dev Device, count int) bool {
	if count == 0 {
		return false
	}

	h := b.liveHash(count)
	if b.hashValid && h == b.lastHash {
		return false
	}

	dev.UploadFloats(b.positions, 0, b.vertices[:count*3])
	dev.UploadFloats(b.uvs, 0, b.texcoords[:count*2])
	dev.UploadBytes(b.cols, 0, b.colors[:count*4])

	b.lastHash = h
	b.hashValid = true
	return true
}

// liveHash hashes the live vertex range plus its length, so a shorter
// prefix of previously uploaded data still counts as a change.
func (b *VertexBuffer) liveHash(count int) uint64 {
	d := xxhash.New()

	b.scratch = b.scratch[:0]
	for _, f := range b.vertices[:count*3] {
		b.scratch = binary.LittleEndian.AppendUint32(b.scratch, math.Float32bits(f))
	}
	_, _ = d.Write(b.scratch)

	b.scratch = b.scratch[:0]
	for _, f := range b.texcoords[:count*2] {
		b.scratch = binary.LittleEndian.AppendUint32(b.scratch, math.Float32bits(f))
	}
	_, _ = d.Write(b.scratch)

	_, _ = d.Write(b.colors[:count*4])

	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(count))
	_, _ = d.Write(n[:])

	return d.Sum64()
}

// bind makes this buffer's attributes current for drawing. With VAO
// support that is a single bind; otherwise every attribute and the
// element buffer are rebound manually.
func (b *VertexBuffer) bind(dev Device, caps Capabilities, locs ShaderLocations) {
	if caps.VertexArrayObjects {
		dev.BindVertexArray(b.vao)
		return
	}

	dev.SetVertexAttrib(locs.Position, b.positions, 3, AttribFloat32, false)
	dev.SetVertexAttrib(locs.TexCoord, b.uvs, 2, AttribFloat32, false)
	dev.SetVertexAttrib(locs.Color, b.cols, 4, AttribUint8, true)
	dev.BindElementBuffer(b.indices)
}

// release deletes the GPU mirrors.
func (b *VertexBuffer) release(dev Device, caps Capabilities) {
	dev.DeleteBuffer(b.positions)
	dev.DeleteBuffer(b.uvs)
	dev.DeleteBuffer(b.cols)
	dev.DeleteBuffer(b.indices)
	if caps.VertexArrayObjects {
		dev.DeleteVertexArray(b.vao)
	}
}
