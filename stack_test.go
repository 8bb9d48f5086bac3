package glbatch

import "testing"

func TestMatrixModeTargets(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.MatrixMode(MatrixProjection)
	ctx.Translatef(1, 2, 3)
	if ctx.MatrixModelviewValue() != Mat4Identity() {
		t.Error("projection-mode translate modified modelview")
	}
	if ctx.MatrixProjectionValue() == Mat4Identity() {
		t.Error("projection-mode translate did not modify projection")
	}

	ctx.LoadIdentity()
	if ctx.MatrixProjectionValue() != Mat4Identity() {
		t.Error("LoadIdentity did not reset projection")
	}

	ctx.MatrixMode(MatrixModelview)
	ctx.Translatef(4, 5, 6)
	if ctx.MatrixModelviewValue() == Mat4Identity() {
		t.Error("modelview-mode translate did not modify modelview")
	}
}

func TestPushRedirectsToTransform(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.MatrixMode(MatrixModelview)
	ctx.PushMatrix()
	ctx.Translatef(10, 20, 0)

	if ctx.MatrixModelviewValue() != Mat4Identity() {
		t.Error("translate after push modified modelview")
	}
	if ctx.Transform() == Mat4Identity() {
		t.Error("translate after push did not modify transform")
	}

	// Pushed transforms apply to incoming vertices.
	ctx.Begin(DrawQuads)
	ctx.Vertex3f(1, 2, 3)
	buf := ctx.batch.buffers[ctx.batch.current]
	if buf.vertices[0] != 11 || buf.vertices[1] != 22 || buf.vertices[2] != 3 {
		t.Errorf("transformed vertex = (%v,%v,%v), want (11,22,3)",
			buf.vertices[0], buf.vertices[1], buf.vertices[2])
	}

	ctx.PopMatrix()
	if ctx.Transform() != Mat4Identity() {
		t.Error("pop did not restore transform")
	}
	if ctx.transformRequired {
		t.Error("transformRequired still set after final pop")
	}

	// Vertices pass through untransformed again.
	ctx.Vertex3f(1, 2, 3)
	if buf.vertices[3] != 1 || buf.vertices[4] != 2 {
		t.Errorf("post-pop vertex = (%v,%v), want (1,2)", buf.vertices[3], buf.vertices[4])
	}
}

func TestNestedPushPop(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.MatrixMode(MatrixModelview)
	ctx.PushMatrix()
	ctx.Translatef(1, 0, 0)
	outer := ctx.Transform()

	ctx.PushMatrix()
	ctx.Translatef(0, 1, 0)
	if ctx.Transform() == outer {
		t.Error("inner translate did not change transform")
	}

	ctx.PopMatrix()
	if ctx.Transform() != outer {
		t.Error("inner pop did not restore outer transform")
	}
	if !ctx.transformRequired {
		t.Error("transformRequired cleared while a push is still active")
	}

	ctx.PopMatrix()
	if ctx.transformRequired {
		t.Error("transformRequired set after all pops")
	}
}

func TestPushOverflowIgnored(t *testing.T) {
	ctx, _ := newTestContext(t, WithMatrixStackDepth(2))

	ctx.MatrixMode(MatrixModelview)
	ctx.PushMatrix()
	ctx.Translatef(1, 0, 0)
	ctx.PushMatrix()
	ctx.Translatef(1, 0, 0)
	saved := ctx.Transform()

	// Third push exceeds the configured depth and must change nothing.
	ctx.PushMatrix()
	if ctx.stackDepth != 2 {
		t.Errorf("stackDepth after overflow push = %d, want 2", ctx.stackDepth)
	}
	if ctx.Transform() != saved {
		t.Error("overflow push modified the transform")
	}

	// The two real pushes still unwind correctly.
	ctx.PopMatrix()
	ctx.PopMatrix()
	if ctx.transformRequired {
		t.Error("transformRequired set after unwinding")
	}
}

func TestPopEmptyStack(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.MatrixMode(MatrixModelview)
	ctx.Translatef(5, 0, 0)
	before := ctx.MatrixModelviewValue()

	ctx.PopMatrix()
	if ctx.MatrixModelviewValue() != before {
		t.Error("pop on empty stack modified modelview")
	}
	if ctx.transformRequired {
		t.Error("transformRequired set after empty pop")
	}
}

func TestMultMatrixAndProjectionOps(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.MatrixMode(MatrixProjection)
	ctx.Ortho(0, 800, 600, 0, -1, 1)
	want := Mat4Identity().Mul(Mat4Ortho(0, 800, 600, 0, -1, 1))
	if ctx.MatrixProjectionValue() != want {
		t.Error("Ortho composition mismatch")
	}

	ctx.LoadIdentity()
	ctx.Frustum(-1, 1, -1, 1, 1, 10)
	if ctx.MatrixProjectionValue() != Mat4Identity().Mul(Mat4Frustum(-1, 1, -1, 1, 1, 10)) {
		t.Error("Frustum composition mismatch")
	}

	ctx.MatrixMode(MatrixModelview)
	m := Mat4Translate(3, 4, 5)
	ctx.MultMatrix(m)
	if ctx.MatrixModelviewValue() != Mat4Identity().Mul(m) {
		t.Error("MultMatrix composition mismatch")
	}
}

func TestRotateScaleCompose(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.MatrixMode(MatrixModelview)
	ctx.Scalef(2, 2, 2)
	ctx.Rotatef(90, 0, 0, 1)

	got := ctx.MatrixModelviewValue()
	want := Mat4Rotate(90, 0, 0, 1).Mul(Mat4Scale(2, 2, 2).Mul(Mat4Identity()))
	if !mat4Near(got, want) {
		t.Errorf("composed modelview = %v, want %v", got, want)
	}
}
