package glbatch

import (
	"fmt"
	"log/slog"
)

// Context is the immediate-mode accumulator. It owns the broadcast
// vertex attributes (current texcoord, normal and color), the matrix
// stack, the stereo state and the active render batch, and it drives
// the device at flush time.
//
// A Context is not safe for concurrent use.
type Context struct {
	dev  Device
	caps Capabilities
	log  *slog.Logger

	batch        *RenderBatch
	defaultBatch *RenderBatch

	// Broadcast attributes: captured per vertex at Vertex time.
	texcoordX, texcoordY        float32
	normalX, normalY, normalZ   float32
	colorR, colorG, colorB, colorA byte

	// Matrix state.
	matrixMode        MatrixTarget
	selector          matrixSelector
	modelview         Mat4
	projection        Mat4
	transform         Mat4
	transformRequired bool
	stack             []Mat4
	stackDepth        int

	// Stereo rendering: index 0 is the right eye, 1 the left.
	stereoRender     bool
	projectionStereo [2]Mat4
	viewOffsetStereo [2]Mat4

	// Texture and shader state.
	defaultTexture TextureID
	activeTextures []TextureID // extra sampler slots, unit 1+i
	defaultShader  ShaderID
	defaultLocs    ShaderLocations
	currentShader  ShaderID
	shaderLocs     ShaderLocations

	fbWidth, fbHeight int

	closed bool
}

// NewContext creates an accumulator over the given device with a
// framebuffer of the given pixel size. It creates the default white
// texture, compiles the default shader and allocates the default render
// batch.
func NewContext(dev Device, width, height int, opts ...ContextOption) (*Context, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}

	o := defaultContextOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := Logger()
	propagateLogger(dev, log)

	caps := dev.Capabilities()

	// Slot 0 always carries texture0, so the extra sampler slots may
	// not exceed what the device reports beyond it.
	units := o.textureUnits
	if limit := caps.MaxTextureUnits - 1; units > limit {
		if limit < 0 {
			limit = 0
		}
		log.Warn("extra texture units clamped to device limit",
			"requested", units, "units", limit)
		units = limit
	}

	c := &Context{
		dev:        dev,
		caps:       caps,
		log:        log,
		modelview:  Mat4Identity(),
		projection: Mat4Identity(),
		transform:  Mat4Identity(),
		stack:      make([]Mat4, o.stackDepth),
		projectionStereo: [2]Mat4{Mat4Identity(), Mat4Identity()},
		viewOffsetStereo: [2]Mat4{Mat4Identity(), Mat4Identity()},
		activeTextures:   make([]TextureID, units),
		colorR:           255,
		colorG:           255,
		colorB:           255,
		colorA:           255,
		fbWidth:          width,
		fbHeight:         height,
	}

	c.defaultTexture = loadTextureDefault(dev)
	if c.defaultTexture == InvalidID {
		return nil, fmt.Errorf("glbatch: creating default texture: device returned null handle")
	}
	log.Info("default texture loaded", "id", c.defaultTexture)

	var err error
	c.defaultShader, c.defaultLocs, err = loadShaderDefault(dev)
	if err != nil {
		dev.DeleteTexture(c.defaultTexture)
		return nil, err
	}
	c.currentShader = c.defaultShader
	c.shaderLocs = c.defaultLocs
	log.Info("default shader loaded", "id", c.defaultShader)

	c.defaultBatch, err = c.NewRenderBatch(
		BatchBufferCount(o.bufferCount),
		BatchBufferElements(o.elementCount),
		BatchDrawCallLimit(o.drawCallLimit))
	if err != nil {
		dev.DeleteShader(c.defaultShader)
		dev.DeleteTexture(c.defaultTexture)
		return nil, err
	}
	c.batch = c.defaultBatch

	return c, nil
}

// Close flushes pending work and releases the default batch, texture
// and shader. The context must not be used afterwards.
func (c *Context) Close() error {
	if c.closed {
		return ErrBatchReleased
	}
	c.Flush()

	err := c.defaultBatch.Release()
	c.dev.DeleteShader(c.defaultShader)
	c.dev.DeleteTexture(c.defaultTexture)
	c.closed = true
	return err
}

// Begin starts accumulating vertices with the given primitive mode.
// Consecutive Begins with the same mode extend the open draw call; a
// mode change closes it, padding lines and triangles runs to the next
// multiple of 4 so quad indexing stays aligned.
func (c *Context) Begin(mode DrawMode) {
	d := c.batch.queue.last()
	if d.Mode == mode {
		return
	}

	if d.VertexCount > 0 {
		d.VertexAlignment = quadAlignment(d.Mode, d.VertexCount)

		if !c.CheckRenderBatchLimit(d.VertexAlignment) {
			c.batch.vertexCounter += d.VertexAlignment

			// The queue is bounded. When no slot is free for the next
			// call the batch is flushed instead.
			if c.batch.queue.count < c.batch.drawCallLimit {
				c.batch.queue.count++
			}
			if c.batch.queue.count >= c.batch.drawCallLimit {
				c.Flush()
			}
		}
	}

	d = c.batch.queue.last()
	d.Mode = mode
	d.VertexCount = 0
	d.Texture = c.defaultTexture
}

// End finishes the current primitive run. The only per-End effect is a
// tiny increment of the implicit z used by Vertex2f/Vertex2i, so later
// 2D primitives draw over earlier ones under depth testing. Vertices
// keep accumulating; nothing is submitted until a flush.
func (c *Context) End() {
	c.batch.currentDepth += depthStep
}

// Vertex3f appends one vertex, capturing the current texcoord and
// color. When the buffer cannot fit one more whole primitive the batch
// is flushed first, at a primitive boundary only, so primitives are
// never split across flushes.
func (c *Context) Vertex3f(x, y, z float32) {
	tx, ty, tz := x, y, z
	if c.transformRequired {
		tx, ty, tz = c.transform.TransformPoint(x, y, z)
	}

	b := c.batch
	buf := b.buffers[b.current]
	d := b.queue.last()

	if b.vertexCounter > buf.vertexCapacity()-4 {
		if d.VertexCount%d.Mode.groupSize() == 0 {
			// One group plus one vertex of headroom.
			c.CheckRenderBatchLimit(d.Mode.groupSize() + 1)

			buf = b.buffers[b.current]
			d = b.queue.last()
		}
	}

	n := b.vertexCounter
	buf.vertices[n*3] = tx
	buf.vertices[n*3+1] = ty
	buf.vertices[n*3+2] = tz

	buf.texcoords[n*2] = c.texcoordX
	buf.texcoords[n*2+1] = c.texcoordY

	buf.colors[n*4] = c.colorR
	buf.colors[n*4+1] = c.colorG
	buf.colors[n*4+2] = c.colorB
	buf.colors[n*4+3] = c.colorA

	b.vertexCounter++
	d.VertexCount++
}

// Vertex2f appends one vertex at the current accumulated depth.
func (c *Context) Vertex2f(x, y float32) {
	c.Vertex3f(x, y, c.batch.currentDepth)
}

// Vertex2i appends one vertex at the current accumulated depth.
func (c *Context) Vertex2i(x, y int) {
	c.Vertex3f(float32(x), float32(y), c.batch.currentDepth)
}

// TexCoord2f sets the texture coordinate captured by subsequent
// vertices.
func (c *Context) TexCoord2f(x, y float32) {
	c.texcoordX = x
	c.texcoordY = y
}

// Normal3f sets the current normal. The batch vertex layout carries no
// normals, so the value is held for callers that read it back but is
// not written per vertex.
func (c *Context) Normal3f(x, y, z float32) {
	c.normalX = x
	c.normalY = y
	c.normalZ = z
}

// Color4ub sets the color captured by subsequent vertices.
func (c *Context) Color4ub(r, g, b, a byte) {
	c.colorR = r
	c.colorG = g
	c.colorB = b
	c.colorA = a
}

// Color4f sets the current color from [0, 1] components.
func (c *Context) Color4f(r, g, b, a float32) {
	c.Color4ub(byte(r*255), byte(g*255), byte(b*255), byte(a*255))
}

// Color3f sets the current color from [0, 1] components with full
// alpha.
func (c *Context) Color3f(r, g, b float32) {
	c.Color4ub(byte(r*255), byte(g*255), byte(b*255), 255)
}

// SetTexture selects the texture for subsequent vertices. Consecutive
// runs with the same texture share a draw call; a change closes the
// open call with quad-alignment padding. SetTexture(InvalidID) resets
// nothing but force-flushes a completely full buffer.
func (c *Context) SetTexture(id TextureID) {
	if id == InvalidID {
		if c.batch.vertexCounter >= c.batch.vertexCapacity() {
			c.Flush()
		}
		return
	}

	d := c.batch.queue.last()
	if d.Texture == id {
		return
	}
	mode := d.Mode

	if d.VertexCount > 0 {
		d.VertexAlignment = quadAlignment(d.Mode, d.VertexCount)

		if !c.CheckRenderBatchLimit(d.VertexAlignment) {
			c.batch.vertexCounter += d.VertexAlignment

			// The queue is bounded. When no slot is free for the next
			// call the batch is flushed instead.
			if c.batch.queue.count < c.batch.drawCallLimit {
				c.batch.queue.count++
			}
			if c.batch.queue.count >= c.batch.drawCallLimit {
				c.Flush()
			}
		}
	}

	// The fresh call keeps the current primitive mode; only the
	// texture key changes.
	d = c.batch.queue.last()
	d.Mode = mode
	d.Texture = id
	d.VertexCount = 0
}

// CheckRenderBatchLimit flushes the active batch if vCount more
// vertices would overflow it, carrying the open call's mode and texture
// over to the fresh queue so accumulation continues seamlessly.
// Reports whether a flush happened.
func (c *Context) CheckRenderBatchLimit(vCount int) bool {
	b := c.batch
	if b.vertexCounter+vCount < b.vertexCapacity() {
		return false
	}

	d := b.queue.last()
	mode, texture := d.Mode, d.Texture

	c.Flush()

	d = b.queue.last()
	d.Mode = mode
	d.Texture = texture

	return true
}

// Flush uploads and submits everything accumulated in the active batch,
// then resets it: the draw queue re-seeds, the implicit depth rewinds
// and the next vertex buffer in the rotation becomes current. Extra
// sampler slots activated through SetUniformSampler are cleared.
func (c *Context) Flush() {
	c.batch.flush(c)

	for i := range c.activeTextures {
		c.activeTextures[i] = InvalidID
	}
}

// SetActiveBatch flushes the active batch and switches accumulation to
// b. Passing nil flushes, restores the default batch and returns
// ErrNilBatch.
func (c *Context) SetActiveBatch(b *RenderBatch) error {
	c.Flush()
	c.batch = c.defaultBatch

	if b == nil {
		return ErrNilBatch
	}
	if b.released {
		return ErrBatchReleased
	}

	c.batch = b
	return nil
}

// ActiveBatch returns the batch currently accumulating vertices.
func (c *Context) ActiveBatch() *RenderBatch { return c.batch }

// EnableStereoRender makes subsequent flushes replay the draw queue
// once per eye, with per-eye projection and view-offset matrices and
// half-width viewports.
func (c *Context) EnableStereoRender() { c.stereoRender = true }

// DisableStereoRender restores single-eye flushing.
func (c *Context) DisableStereoRender() { c.stereoRender = false }

// IsStereoRenderEnabled reports whether stereo flushing is enabled.
func (c *Context) IsStereoRenderEnabled() bool { return c.stereoRender }

// SetStereoProjection sets the per-eye projection matrices.
func (c *Context) SetStereoProjection(right, left Mat4) {
	c.projectionStereo[0] = right
	c.projectionStereo[1] = left
}

// SetStereoViewOffset sets the per-eye view offset matrices composed
// onto the modelview at flush time.
func (c *Context) SetStereoViewOffset(right, left Mat4) {
	c.viewOffsetStereo[0] = right
	c.viewOffsetStereo[1] = left
}

// SetUniformSampler activates tex on the first free extra sampler slot
// and points the given sampler uniform at it. Slots persist until the
// next flush and are shared by every draw call of the batch. A texture
// already activated keeps its slot; with no free slot the call is
// ignored.
func (c *Context) SetUniformSampler(location int, tex TextureID) {
	for _, id := range c.activeTextures {
		if id == tex {
			return
		}
	}

	for i, id := range c.activeTextures {
		if id == InvalidID {
			c.dev.SetUniformInt(location, 1+i)
			c.activeTextures[i] = tex
			return
		}
	}

	c.log.Warn("no free sampler slot for texture", "texture", tex)
}

// Viewport forwards a viewport change to the device.
func (c *Context) Viewport(x, y, width, height int) {
	c.dev.Viewport(x, y, width, height)
}

// SetFramebufferSize updates the framebuffer dimensions used for the
// per-eye viewports of stereo rendering.
func (c *Context) SetFramebufferSize(width, height int) {
	c.fbWidth = width
	c.fbHeight = height
}

// FramebufferWidth returns the framebuffer width in pixels.
func (c *Context) FramebufferWidth() int { return c.fbWidth }

// FramebufferHeight returns the framebuffer height in pixels.
func (c *Context) FramebufferHeight() int { return c.fbHeight }

// Device returns the underlying graphics device.
func (c *Context) Device() Device { return c.dev }
