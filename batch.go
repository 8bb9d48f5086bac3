package glbatch

// Batch defaults. Element counts are in quads (4 vertices each).
const (
	// DefaultBufferElements is the per-buffer quad capacity.
	DefaultBufferElements = 8192
	// DefaultBufferCount is the number of rotating vertex buffers.
	DefaultBufferCount = 1
	// DefaultDrawCallLimit is the draw-call queue capacity per batch.
	DefaultDrawCallLimit = 256
	// DefaultExtraTextureUnits is the number of sampler slots beyond
	// texture0 available through SetUniformSampler.
	DefaultExtraTextureUnits = 4
	// DefaultMatrixStackDepth is the modelview/projection stack depth.
	DefaultMatrixStackDepth = 32
)

// depthStep is added to the implicit z after every End, so primitives
// submitted later win depth testing against earlier ones. Tuned for a
// [-1, 1] depth range over roughly 20k draw levels per frame.
const depthStep = 1.0 / 20000.0

// RenderBatch accumulates vertices and draw calls between flushes.
// It owns bufferCount vertex buffers used round-robin so the device can
// still be reading one buffer while the next frame fills another.
type RenderBatch struct {
	dev  Device
	caps Capabilities

	buffers []*VertexBuffer
	queue   drawQueue

	current       int // index of the buffer being filled
	vertexCounter int // vertices accumulated in the current buffer
	currentDepth  float32

	drawCallLimit int
	released      bool
}

// NewRenderBatch creates a render batch compatible with this context.
// The returned batch is not active; pass it to SetActiveBatch.
func (c *Context) NewRenderBatch(opts ...BatchOption) (*RenderBatch, error) {
	if c.closed {
		return nil, ErrBatchReleased
	}

	o := defaultBatchOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &RenderBatch{
		dev:           c.dev,
		caps:          c.caps,
		buffers:       make([]*VertexBuffer, o.bufferCount),
		queue:         newDrawQueue(o.drawCallLimit, c.defaultTexture),
		currentDepth:  -1,
		drawCallLimit: o.drawCallLimit,
	}
	for i := range b.buffers {
		b.buffers[i] = newVertexBuffer(c.dev, c.caps, o.elementCount, c.defaultLocs)
	}

	c.log.Info("render batch buffers loaded",
		"buffers", o.bufferCount,
		"elements", o.elementCount,
		"drawCallLimit", o.drawCallLimit)

	return b, nil
}

// elementCount returns the quad capacity of the buffer being filled.
func (b *RenderBatch) elementCount() int {
	return b.buffers[b.current].elementCount
}

// vertexCapacity returns the vertex capacity of the buffer being filled.
func (b *RenderBatch) vertexCapacity() int {
	return b.buffers[b.current].vertexCapacity()
}

// VertexCount returns the number of vertices accumulated since the
// last flush, including alignment padding.
func (b *RenderBatch) VertexCount() int { return b.vertexCounter }

// DrawCallCount returns the number of pending draw calls, including
// the open one.
func (b *RenderBatch) DrawCallCount() int { return b.queue.count }

// Release frees the batch's GPU buffers. The batch must not be active.
func (b *RenderBatch) Release() error {
	if b.released {
		return ErrBatchReleased
	}
	for _, buf := range b.buffers {
		buf.release(b.dev, b.caps)
	}
	b.released = true
	return nil
}

// flush uploads the live vertex range, replays the draw-call queue
// (once per eye when stereo rendering is enabled) and resets the batch
// for the next accumulation cycle, rotating to the next buffer.
func (b *RenderBatch) flush(c *Context) {
	buf := b.buffers[b.current]

	if b.vertexCounter > 0 {
		if buf.upload(c.dev, b.vertexCounter) {
			c.log.Debug("batch vertex data uploaded",
				"buffer", b.current,
				"vertices", b.vertexCounter,
				"drawCalls", b.queue.count)
		} else {
			c.log.Debug("batch vertex data unchanged, upload skipped",
				"buffer", b.current,
				"vertices", b.vertexCounter)
		}
	}

	matProjection := c.projection
	matModelView := c.modelview

	eyeCount := 1
	if c.stereoRender {
		eyeCount = 2
	}

	for eye := 0; eye < eyeCount; eye++ {
		if eyeCount == 2 {
			// Each eye renders to its half of the framebuffer with its
			// own projection and view offset.
			c.dev.Viewport(eye*c.fbWidth/2, 0, c.fbWidth/2, c.fbHeight)
			c.modelview = matModelView.Mul(c.viewOffsetStereo[eye])
			c.projection = c.projectionStereo[eye]
		}

		if b.vertexCounter > 0 {
			c.dev.UseShader(c.currentShader)

			mvp := c.modelview.Mul(c.projection)
			c.dev.SetUniformMat4(c.shaderLocs.MVP, mvp)

			buf.bind(c.dev, b.caps, c.shaderLocs)

			c.dev.SetUniformVec4(c.shaderLocs.ColorDiffuse, 1, 1, 1, 1)
			c.dev.SetUniformInt(c.shaderLocs.Texture0, 0)

			// Additional samplers activated through SetUniformSampler
			// are shared by every draw call in the batch.
			for i, id := range c.activeTextures {
				if id != InvalidID {
					c.dev.ActiveTextureSlot(1 + i)
					c.dev.BindTexture(id)
				}
			}
			c.dev.ActiveTextureSlot(0)

			vertexOffset := 0
			for i := 0; i < b.queue.count; i++ {
				call := &b.queue.calls[i]
				c.dev.BindTexture(call.Texture)

				if call.Mode == DrawLines || call.Mode == DrawTriangles {
					c.dev.DrawArrays(call.Mode, vertexOffset, call.VertexCount)
				} else {
					// Quads are drawn as indexed triangles through the
					// shared index pattern; the byte offset addresses
					// the first index of the call's first quad.
					c.dev.DrawElements(DrawTriangles,
						call.VertexCount/4*6,
						vertexOffset/4*6*indexByteSize)
				}

				vertexOffset += call.VertexCount + call.VertexAlignment
			}

			if !b.caps.VertexArrayObjects {
				c.dev.BindElementBuffer(InvalidID)
			}
			c.dev.BindTexture(InvalidID)
		}

		if b.caps.VertexArrayObjects {
			c.dev.BindVertexArray(InvalidID)
		}

		c.dev.UseShader(InvalidID)
	}

	if eyeCount == 2 {
		c.dev.Viewport(0, 0, c.fbWidth, c.fbHeight)
	}

	// Reset for the next accumulation cycle.
	b.currentDepth = -1

	c.projection = matProjection
	c.modelview = matModelView

	b.queue.reset(c.defaultTexture)
	b.vertexCounter = 0

	b.current++
	if b.current >= len(b.buffers) {
		b.current = 0
	}
}
