// Package glbatch provides an immediate-mode vertex batching engine for Go.
//
// # Overview
//
// glbatch turns a stream of per-vertex calls (Begin, Vertex, TexCoord,
// Color, End) into a minimal sequence of coalesced draw submissions to an
// underlying graphics device, the way classic OpenGL 1.1 immediate mode
// behaved, but batched. Vertices accumulate in CPU-side buffers; a new
// draw call is opened only when the primitive mode or the bound texture
// changes, and the whole batch is uploaded and submitted in one flush.
//
// # Quick Start
//
//	import "github.com/gogpu/glbatch"
//
//	ctx, err := glbatch.NewContext(device, 800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	ctx.Begin(glbatch.DrawQuads)
//	ctx.Color4ub(255, 0, 0, 255)
//	ctx.Vertex2f(0, 0)
//	ctx.Vertex2f(0, 100)
//	ctx.Vertex2f(100, 100)
//	ctx.Vertex2f(100, 0)
//	ctx.End()
//
//	ctx.Flush() // upload + submit everything accumulated so far
//
// # Architecture
//
// The library is organized around four pieces:
//   - Context: the accumulator state machine (current color/texcoord,
//     matrix stack, active texture and shader, active batch)
//   - RenderBatch: N vertex buffers (multi-buffering) plus an ordered
//     draw-call queue, flushed together
//   - VertexBuffer: parallel position/texcoord/color arrays mirrored by
//     GPU buffer objects, with a fixed quad index pattern
//   - Device: the narrow interface to the actual graphics backend
//
// glbatch receives the device from the host; it never creates one. Any
// backend that can upload buffer sub-ranges and issue array or indexed
// draws can implement Device. NullDevice is provided for headless use.
//
// # Concurrency
//
// A Context is single-threaded by design. CPU/GPU overlap comes from
// multi-buffering (the device reads buffer k while the accumulator fills
// buffer k+1), not from goroutines. Callers sharing a Context across
// goroutines must synchronize externally.
package glbatch

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
