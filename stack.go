package glbatch

// MatrixTarget selects which matrix the matrix operations modify.
type MatrixTarget int

const (
	// MatrixModelview targets the modelview matrix.
	MatrixModelview MatrixTarget = iota
	// MatrixProjection targets the projection matrix.
	MatrixProjection
)

// matrixSelector is the internal current-matrix selector. While a
// modelview push is active, operations are redirected to the transform
// accumulator that Vertex applies to incoming positions, so pushed
// transforms affect only vertices, not the uploaded modelview.
type matrixSelector int

const (
	selectModelview matrixSelector = iota
	selectProjection
	selectTransform
)

// currentMatrix resolves the selector to the matrix it names.
func (c *Context) currentMatrix() *Mat4 {
	switch c.selector {
	case selectProjection:
		return &c.projection
	case selectTransform:
		return &c.transform
	default:
		return &c.modelview
	}
}

// MatrixMode selects the target for subsequent matrix operations.
func (c *Context) MatrixMode(target MatrixTarget) {
	switch target {
	case MatrixProjection:
		c.selector = selectProjection
	case MatrixModelview:
		c.selector = selectModelview
	}
	c.matrixMode = target
}

// PushMatrix saves the current matrix on the stack. In modelview mode
// the current matrix becomes the vertex transform accumulator until the
// matching PopMatrix. A push past the configured stack depth is logged
// and ignored.
func (c *Context) PushMatrix() {
	if c.stackDepth >= len(c.stack) {
		c.log.Error("matrix stack overflow, push ignored", "depth", len(c.stack))
		return
	}

	if c.matrixMode == MatrixModelview {
		c.transformRequired = true
		c.selector = selectTransform
	}

	c.stack[c.stackDepth] = *c.currentMatrix()
	c.stackDepth++
}

// PopMatrix restores the most recently pushed matrix. Popping the last
// modelview entry re-targets operations at the modelview matrix and
// stops transforming incoming vertices. Popping an empty stack is a
// no-op apart from that restoration.
func (c *Context) PopMatrix() {
	if c.stackDepth > 0 {
		*c.currentMatrix() = c.stack[c.stackDepth-1]
		c.stackDepth--
	}

	if c.stackDepth == 0 && c.matrixMode == MatrixModelview {
		c.selector = selectModelview
		c.transformRequired = false
	}
}

// LoadIdentity replaces the current matrix with the identity.
func (c *Context) LoadIdentity() {
	*c.currentMatrix() = Mat4Identity()
}

// Translatef composes a translation onto the current matrix.
func (c *Context) Translatef(x, y, z float32) {
	cur := c.currentMatrix()
	*cur = Mat4Translate(x, y, z).Mul(*cur)
}

// Rotatef composes a rotation of angleDeg degrees around the given axis
// onto the current matrix.
func (c *Context) Rotatef(angleDeg, x, y, z float32) {
	cur := c.currentMatrix()
	*cur = Mat4Rotate(angleDeg, x, y, z).Mul(*cur)
}

// Scalef composes a scale onto the current matrix.
func (c *Context) Scalef(x, y, z float32) {
	cur := c.currentMatrix()
	*cur = Mat4Scale(x, y, z).Mul(*cur)
}

// MultMatrix multiplies the current matrix by m.
func (c *Context) MultMatrix(m Mat4) {
	cur := c.currentMatrix()
	*cur = cur.Mul(m)
}

// Ortho multiplies the current matrix by an orthographic projection.
func (c *Context) Ortho(left, right, bottom, top, znear, zfar float32) {
	cur := c.currentMatrix()
	*cur = cur.Mul(Mat4Ortho(left, right, bottom, top, znear, zfar))
}

// Frustum multiplies the current matrix by a perspective projection.
func (c *Context) Frustum(left, right, bottom, top, znear, zfar float32) {
	cur := c.currentMatrix()
	*cur = cur.Mul(Mat4Frustum(left, right, bottom, top, znear, zfar))
}

// MatrixModelviewValue returns the modelview matrix.
func (c *Context) MatrixModelviewValue() Mat4 { return c.modelview }

// MatrixProjectionValue returns the projection matrix.
func (c *Context) MatrixProjectionValue() Mat4 { return c.projection }

// SetMatrixModelview replaces the modelview matrix.
func (c *Context) SetMatrixModelview(m Mat4) { c.modelview = m }

// SetMatrixProjection replaces the projection matrix.
func (c *Context) SetMatrixProjection(m Mat4) { c.projection = m }

// Transform returns the vertex transform accumulator.
func (c *Context) Transform() Mat4 { return c.transform }
