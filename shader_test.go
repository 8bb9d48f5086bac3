package glbatch

import (
	"errors"
	"testing"
)

func TestLoadShaderSuccess(t *testing.T) {
	ctx, _ := newTestContext(t)

	id, locs := ctx.LoadShader("vertex src", "fragment src")
	def, _ := ctx.DefaultShader()
	if id == InvalidID || id == def {
		t.Errorf("LoadShader id = %d, want a fresh program", id)
	}
	if locs.Position != 0 || locs.Color != 3 || locs.MVP != 0 {
		t.Errorf("locations = %+v", locs)
	}
}

func TestLoadShaderFallsBackToDefault(t *testing.T) {
	ctx, dev := newTestContext(t)
	dev.shaderErr = errors.New("syntax error")

	id, locs := ctx.LoadShader("bad", "bad")
	def, defLocs := ctx.DefaultShader()
	if id != def {
		t.Errorf("LoadShader id = %d, want default %d", id, def)
	}
	if locs != defLocs {
		t.Errorf("locations = %+v, want default %+v", locs, defLocs)
	}
}

func TestSetShaderFlushesOnChange(t *testing.T) {
	ctx, dev := newTestContext(t)

	custom, locs := ctx.LoadShader("v", "f")

	emitQuad(ctx, 0, 0, 10)
	ctx.SetShader(custom, locs)
	if len(dev.draws) != 1 {
		t.Fatalf("draws after shader change = %d, want 1 (flush)", len(dev.draws))
	}
	// The pending quad was drawn with the previous program.
	def, _ := ctx.DefaultShader()
	if dev.draws[0].shader != def {
		t.Errorf("flushed draw shader = %d, want default %d", dev.draws[0].shader, def)
	}

	// Setting the same program again is a no-op.
	emitQuad(ctx, 0, 0, 10)
	ctx.SetShader(custom, locs)
	if len(dev.draws) != 1 {
		t.Errorf("draws after redundant SetShader = %d, want 1", len(dev.draws))
	}

	// The next flush uses the new program.
	ctx.Flush()
	if got := dev.draws[len(dev.draws)-1].shader; got != custom {
		t.Errorf("draw shader = %d, want custom %d", got, custom)
	}
}

func TestUnloadShader(t *testing.T) {
	ctx, dev := newTestContext(t)

	custom, locs := ctx.LoadShader("v", "f")
	ctx.SetShader(custom, locs)

	// Unloading the current program restores the default first.
	ctx.UnloadShader(custom)
	if ctx.currentShader != ctx.defaultShader {
		t.Error("current shader not restored to default")
	}
	if dev.currentShader == custom {
		t.Error("deleted shader still in use on the device")
	}

	// The default shader is protected until Close.
	def, _ := ctx.DefaultShader()
	ctx.UnloadShader(def)
	emitQuad(ctx, 0, 0, 10)
	ctx.Flush()
	if got := dev.draws[len(dev.draws)-1].shader; got != def {
		t.Errorf("draw shader = %d, want default %d after protected unload", got, def)
	}
}
