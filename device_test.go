package glbatch

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

// drawRecord captures one draw submission with the state bound at the
// time of the call.
type drawRecord struct {
	indexed bool
	mode    DrawMode
	first   int // vertex offset (arrays) or byte offset (indexed)
	count   int
	texture TextureID
	shader  ShaderID
}

type uploadRecord struct {
	buf    BufferID
	offset int
	bytes  int
}

type viewportRecord struct {
	x, y, w, h int
}

// recordingDevice is a Device that records every call relevant to the
// tests. It embeds NullDevice for ID allocation and overrides the
// methods under test.
type recordingDevice struct {
	NullDevice

	caps Capabilities

	uploads   []uploadRecord
	draws     []drawRecord
	viewports []viewportRecord

	boundTexture  TextureID
	activeSlot    int
	currentShader ShaderID

	// sampler slot -> texture bound there at any point
	slotBinds map[int]TextureID
	// uniform assignments in call order
	intUniforms  []int
	mat4Uniforms []Mat4

	indexData []uint32 // last element buffer uploaded

	shaderErr      error
	shadersCreated int
	texturesCreated int
	texturesDeleted []TextureID
	buffersDeleted  []BufferID
	createTextureFails bool
}

func newRecordingDevice() *recordingDevice {
	return &recordingDevice{
		caps: Capabilities{
			VertexArrayObjects: true,
			MaxTextureUnits:    16,
			MaxAnisotropy:      1,
		},
		slotBinds: make(map[int]TextureID),
	}
}

func (d *recordingDevice) Capabilities() Capabilities { return d.caps }

func (d *recordingDevice) CreateElementBuffer(indices []uint32) BufferID {
	d.indexData = append([]uint32(nil), indices...)
	return BufferID(d.id())
}

func (d *recordingDevice) UploadFloats(buf BufferID, offset int, data []float32) {
	d.uploads = append(d.uploads, uploadRecord{buf, offset, len(data) * 4})
}

func (d *recordingDevice) UploadBytes(buf BufferID, offset int, data []byte) {
	d.uploads = append(d.uploads, uploadRecord{buf, offset, len(data)})
}

func (d *recordingDevice) DeleteBuffer(buf BufferID) {
	d.buffersDeleted = append(d.buffersDeleted, buf)
}

func (d *recordingDevice) CreateTexture(data []byte, width, height int, format gputypes.TextureFormat, mipmaps int) TextureID {
	if d.createTextureFails {
		return InvalidID
	}
	d.texturesCreated++
	return TextureID(d.id())
}

func (d *recordingDevice) DeleteTexture(tex TextureID) {
	d.texturesDeleted = append(d.texturesDeleted, tex)
}

func (d *recordingDevice) BindTexture(tex TextureID) {
	d.boundTexture = tex
	if d.activeSlot != 0 {
		d.slotBinds[d.activeSlot] = tex
	}
}

func (d *recordingDevice) ActiveTextureSlot(slot int) { d.activeSlot = slot }

func (d *recordingDevice) CreateShader(vertexSrc, fragmentSrc string) (ShaderID, error) {
	if d.shaderErr != nil {
		return InvalidID, d.shaderErr
	}
	d.shadersCreated++
	return ShaderID(d.id()), nil
}

func (d *recordingDevice) UseShader(s ShaderID) { d.currentShader = s }

func (d *recordingDevice) SetUniformInt(location, v int) {
	d.intUniforms = append(d.intUniforms, v)
}

func (d *recordingDevice) SetUniformMat4(location int, m Mat4) {
	d.mat4Uniforms = append(d.mat4Uniforms, m)
}

func (d *recordingDevice) DrawArrays(mode DrawMode, first, count int) {
	d.draws = append(d.draws, drawRecord{
		mode: mode, first: first, count: count,
		texture: d.boundTexture, shader: d.currentShader,
	})
}

func (d *recordingDevice) DrawElements(mode DrawMode, count, byteOffset int) {
	d.draws = append(d.draws, drawRecord{
		indexed: true, mode: mode, first: byteOffset, count: count,
		texture: d.boundTexture, shader: d.currentShader,
	})
}

func (d *recordingDevice) Viewport(x, y, w, h int) {
	d.viewports = append(d.viewports, viewportRecord{x, y, w, h})
}

// newTestContext builds a context over a fresh recording device.
func newTestContext(t *testing.T, opts ...ContextOption) (*Context, *recordingDevice) {
	t.Helper()
	dev := newRecordingDevice()
	ctx, err := NewContext(dev, 800, 600, opts...)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx, dev
}

func TestNewContextNilDevice(t *testing.T) {
	_, err := NewContext(nil, 800, 600)
	if !errors.Is(err, ErrNilDevice) {
		t.Fatalf("NewContext(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestNewContextDefaultResources(t *testing.T) {
	ctx, dev := newTestContext(t)

	if ctx.DefaultTexture() == InvalidID {
		t.Error("default texture not created")
	}
	id, locs := ctx.DefaultShader()
	if id == InvalidID {
		t.Error("default shader not created")
	}
	if locs.Position != 0 || locs.TexCoord != 1 || locs.Color != 3 {
		t.Errorf("default attribute locations = %+v", locs)
	}
	if dev.texturesCreated != 1 {
		t.Errorf("texturesCreated = %d, want 1", dev.texturesCreated)
	}
	if dev.shadersCreated != 1 {
		t.Errorf("shadersCreated = %d, want 1", dev.shadersCreated)
	}
}

func TestNewContextShaderFailure(t *testing.T) {
	dev := newRecordingDevice()
	dev.shaderErr = errors.New("compile error")

	_, err := NewContext(dev, 800, 600)
	if err == nil {
		t.Fatal("NewContext with failing shader compile: want error")
	}
	// The default texture created before the failure must be released.
	if len(dev.texturesDeleted) != 1 {
		t.Errorf("texturesDeleted = %d, want 1", len(dev.texturesDeleted))
	}
}

func TestTextureUnitsClampedToDeviceLimit(t *testing.T) {
	dev := newRecordingDevice()
	dev.caps.MaxTextureUnits = 3

	ctx, err := NewContext(dev, 800, 600, WithTextureUnits(8))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	// Slot 0 carries texture0, leaving two extra sampler slots.
	if got := len(ctx.activeTextures); got != 2 {
		t.Fatalf("extra texture units = %d, want 2", got)
	}

	for i := 0; i < 3; i++ {
		ctx.SetUniformSampler(5+i, TextureID(100+i))
	}
	emitQuad(ctx, 0, 0, 10)
	ctx.Flush()

	for slot := range dev.slotBinds {
		if slot >= dev.caps.MaxTextureUnits {
			t.Errorf("texture bound on slot %d, device reports %d units",
				slot, dev.caps.MaxTextureUnits)
		}
	}
}

func TestContextClose(t *testing.T) {
	ctx, dev := newTestContext(t)

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := ctx.Close(); !errors.Is(err, ErrBatchReleased) {
		t.Errorf("second Close error = %v, want ErrBatchReleased", err)
	}
	if len(dev.buffersDeleted) == 0 {
		t.Error("Close released no buffers")
	}
	if len(dev.texturesDeleted) != 1 {
		t.Errorf("texturesDeleted = %d, want 1", len(dev.texturesDeleted))
	}
}

func TestNullDeviceLocations(t *testing.T) {
	d := NewNullDevice()

	tests := []struct {
		name string
		want int
	}{
		{ShaderAttribPosition, 0},
		{ShaderAttribTexCoord, 1},
		{ShaderAttribNormal, 2},
		{ShaderAttribColor, 3},
		{"bogus", -1},
	}
	for _, tt := range tests {
		if got := d.AttribLocation(1, tt.name); got != tt.want {
			t.Errorf("AttribLocation(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}

	if got := d.UniformLocation(1, ShaderUniformMVP); got != 0 {
		t.Errorf("UniformLocation(mvp) = %d, want 0", got)
	}
	if got := d.UniformLocation(1, "bogus"); got != -1 {
		t.Errorf("UniformLocation(bogus) = %d, want -1", got)
	}
}
