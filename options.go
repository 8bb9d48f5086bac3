package glbatch

// ContextOption configures a Context during creation.
//
// Example:
//
//	// Defaults: one 8192-quad buffer, 256 draw calls
//	ctx, err := glbatch.NewContext(dev, 800, 600)
//
//	// Triple-buffered accumulation for CPU/GPU overlap
//	ctx, err := glbatch.NewContext(dev, 800, 600,
//	    glbatch.WithBufferCount(3))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	bufferCount   int
	elementCount  int
	drawCallLimit int
	stackDepth    int
	textureUnits  int
}

// defaultContextOptions returns the default context options.
func defaultContextOptions() contextOptions {
	return contextOptions{
		bufferCount:   DefaultBufferCount,
		elementCount:  DefaultBufferElements,
		drawCallLimit: DefaultDrawCallLimit,
		stackDepth:    DefaultMatrixStackDepth,
		textureUnits:  DefaultExtraTextureUnits,
	}
}

// WithBufferCount sets how many vertex buffers the default batch
// rotates through. Values below 1 are ignored.
func WithBufferCount(n int) ContextOption {
	return func(o *contextOptions) {
		if n >= 1 {
			o.bufferCount = n
		}
	}
}

// WithBufferElements sets the per-buffer capacity in quads (4 vertices
// each). Values below 1 are ignored.
func WithBufferElements(n int) ContextOption {
	return func(o *contextOptions) {
		if n >= 1 {
			o.elementCount = n
		}
	}
}

// WithDrawCallLimit sets the draw-call queue capacity of the default
// batch. Values below 1 are ignored.
func WithDrawCallLimit(n int) ContextOption {
	return func(o *contextOptions) {
		if n >= 1 {
			o.drawCallLimit = n
		}
	}
}

// WithMatrixStackDepth sets the matrix stack capacity. Values below 1
// are ignored.
func WithMatrixStackDepth(n int) ContextOption {
	return func(o *contextOptions) {
		if n >= 1 {
			o.stackDepth = n
		}
	}
}

// WithTextureUnits sets how many sampler slots beyond texture0 are
// available to SetUniformSampler. Values below 0 are ignored.
func WithTextureUnits(n int) ContextOption {
	return func(o *contextOptions) {
		if n >= 0 {
			o.textureUnits = n
		}
	}
}

// BatchOption configures a RenderBatch created with
// Context.NewRenderBatch.
type BatchOption func(*batchOptions)

type batchOptions struct {
	bufferCount   int
	elementCount  int
	drawCallLimit int
}

func defaultBatchOptions() batchOptions {
	return batchOptions{
		bufferCount:   DefaultBufferCount,
		elementCount:  DefaultBufferElements,
		drawCallLimit: DefaultDrawCallLimit,
	}
}

// BatchBufferCount sets how many vertex buffers the batch rotates
// through. Values below 1 are ignored.
func BatchBufferCount(n int) BatchOption {
	return func(o *batchOptions) {
		if n >= 1 {
			o.bufferCount = n
		}
	}
}

// BatchBufferElements sets the per-buffer capacity in quads. Values
// below 1 are ignored.
func BatchBufferElements(n int) BatchOption {
	return func(o *batchOptions) {
		if n >= 1 {
			o.elementCount = n
		}
	}
}

// BatchDrawCallLimit sets the draw-call queue capacity. Values below 1
// are ignored.
func BatchDrawCallLimit(n int) BatchOption {
	return func(o *batchOptions) {
		if n >= 1 {
			o.drawCallLimit = n
		}
	}
}
