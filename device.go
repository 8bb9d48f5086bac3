package glbatch

import "github.com/gogpu/gputypes"

// Opaque GPU resource handles. IDs are allocated by the Device; the
// zero value is never a valid resource.
type (
	// BufferID identifies a GPU vertex or index buffer.
	BufferID uint64
	// TextureID identifies a GPU texture.
	TextureID uint64
	// ShaderID identifies a compiled and linked shader program.
	ShaderID uint64
	// VertexArrayID identifies a vertex array object.
	VertexArrayID uint64
)

// InvalidID is the zero resource handle. Binding it unbinds the
// corresponding resource slot.
const InvalidID = 0

// AttribType is the component type of a vertex attribute.
type AttribType int

const (
	// AttribFloat32 declares float32 attribute components.
	AttribFloat32 AttribType = iota
	// AttribUint8 declares uint8 attribute components, usually
	// normalized to [0, 1].
	AttribUint8
)

// Capabilities reports what the device supports. Queried once at
// context creation; the batch chooses its binding strategy from it.
type Capabilities struct {
	// VertexArrayObjects indicates vertex attribute layouts can be
	// recorded once into a VAO. Without it attributes are rebound on
	// every flush.
	VertexArrayObjects bool

	// MaxTextureUnits is the number of simultaneously bound texture
	// slots, including slot 0.
	MaxTextureUnits int

	// Instancing indicates support for instanced draws.
	Instancing bool

	// MaxAnisotropy is the maximum anisotropic filtering level,
	// 1 when unsupported.
	MaxAnisotropy float32
}

// Device is the narrow interface glbatch needs from a graphics backend.
// The engine receives a Device from the host, it never creates one, and
// it never touches frame timing, swap chains or window state.
//
// All methods are called from the goroutine that owns the Context.
// Uploads may be deferred by the implementation as long as they are
// ordered before subsequent draws.
type Device interface {
	// Capabilities reports device features. Called once per context.
	Capabilities() Capabilities

	// CreateArrayBuffer allocates a dynamic vertex buffer of the given
	// byte size with undefined contents.
	CreateArrayBuffer(size int) BufferID
	// CreateElementBuffer allocates a static index buffer and uploads
	// the given indices.
	CreateElementBuffer(indices []uint32) BufferID
	// UploadFloats writes data into buf starting at the given byte offset.
	UploadFloats(buf BufferID, offset int, data []float32)
	// UploadBytes writes data into buf starting at the given byte offset.
	UploadBytes(buf BufferID, offset int, data []byte)
	// DeleteBuffer releases a buffer.
	DeleteBuffer(buf BufferID)

	// CreateVertexArray allocates a vertex array object.
	CreateVertexArray() VertexArrayID
	// BindVertexArray makes a VAO current; InvalidID unbinds.
	BindVertexArray(vao VertexArrayID)
	// DeleteVertexArray releases a VAO.
	DeleteVertexArray(vao VertexArrayID)
	// SetVertexAttrib points an enabled shader attribute at a buffer of
	// tightly packed components.
	SetVertexAttrib(location int, buf BufferID, components int, typ AttribType, normalized bool)
	// BindElementBuffer makes an index buffer current (recorded into the
	// bound VAO when one is active); InvalidID unbinds.
	BindElementBuffer(buf BufferID)

	// CreateTexture uploads pixel data and returns a texture handle,
	// InvalidID on failure.
	CreateTexture(data []byte, width, height int, format gputypes.TextureFormat, mipmaps int) TextureID
	// DeleteTexture releases a texture.
	DeleteTexture(tex TextureID)
	// BindTexture binds a texture to the active slot; InvalidID unbinds.
	BindTexture(tex TextureID)
	// ActiveTextureSlot selects the texture slot subsequent binds target.
	ActiveTextureSlot(slot int)

	// CreateShader compiles and links a shader program from vertex and
	// fragment sources.
	CreateShader(vertexSrc, fragmentSrc string) (ShaderID, error)
	// DeleteShader releases a shader program.
	DeleteShader(shader ShaderID)
	// UseShader makes a shader program current.
	UseShader(shader ShaderID)
	// AttribLocation resolves a vertex attribute name, -1 if absent.
	AttribLocation(shader ShaderID, name string) int
	// UniformLocation resolves a uniform name, -1 if absent.
	UniformLocation(shader ShaderID, name string) int
	// SetUniformMat4 uploads a mat4 uniform of the current shader.
	SetUniformMat4(location int, m Mat4)
	// SetUniformVec4 uploads a vec4 uniform of the current shader.
	SetUniformVec4(location int, x, y, z, w float32)
	// SetUniformInt uploads an int uniform of the current shader.
	SetUniformInt(location int, v int)

	// DrawArrays draws count vertices starting at first from the bound
	// vertex buffers.
	DrawArrays(mode DrawMode, first, count int)
	// DrawElements draws count indices from the bound element buffer,
	// starting at the given byte offset.
	DrawElements(mode DrawMode, count, byteOffset int)

	// Viewport sets the rendering viewport in framebuffer pixels.
	Viewport(x, y, width, height int)
}

// NullDevice is a Device that accepts every call and renders nothing.
// Resource handles are allocated from a counter so creation, binding
// and deletion behave consistently. Useful for headless operation and
// as an embedding base for partial test doubles.
type NullDevice struct {
	nextID uint64
}

// NewNullDevice creates a no-op device.
func NewNullDevice() *NullDevice { return &NullDevice{} }

func (d *NullDevice) id() uint64 {
	d.nextID++
	return d.nextID
}

// Capabilities reports a fully featured device so the VAO path is
// exercised by default.
func (d *NullDevice) Capabilities() Capabilities {
	return Capabilities{
		VertexArrayObjects: true,
		MaxTextureUnits:    16,
		Instancing:         true,
		MaxAnisotropy:      1,
	}
}

func (d *NullDevice) CreateArrayBuffer(size int) BufferID            { return BufferID(d.id()) }
func (d *NullDevice) CreateElementBuffer(indices []uint32) BufferID  { return BufferID(d.id()) }
func (d *NullDevice) UploadFloats(BufferID, int, []float32)          {}
func (d *NullDevice) UploadBytes(BufferID, int, []byte)              {}
func (d *NullDevice) DeleteBuffer(BufferID)                          {}
func (d *NullDevice) CreateVertexArray() VertexArrayID               { return VertexArrayID(d.id()) }
func (d *NullDevice) BindVertexArray(VertexArrayID)                  {}
func (d *NullDevice) DeleteVertexArray(VertexArrayID)                {}
func (d *NullDevice) SetVertexAttrib(int, BufferID, int, AttribType, bool) {}
func (d *NullDevice) BindElementBuffer(BufferID)                     {}

func (d *NullDevice) CreateTexture(data []byte, width, height int, format gputypes.TextureFormat, mipmaps int) TextureID {
	return TextureID(d.id())
}
func (d *NullDevice) DeleteTexture(TextureID)   {}
func (d *NullDevice) BindTexture(TextureID)     {}
func (d *NullDevice) ActiveTextureSlot(int)     {}

func (d *NullDevice) CreateShader(vertexSrc, fragmentSrc string) (ShaderID, error) {
	return ShaderID(d.id()), nil
}
func (d *NullDevice) DeleteShader(ShaderID) {}
func (d *NullDevice) UseShader(ShaderID)    {}

// AttribLocation maps the standard attribute names to their
// conventional locations.
func (d *NullDevice) AttribLocation(_ ShaderID, name string) int {
	switch name {
	case ShaderAttribPosition:
		return 0
	case ShaderAttribTexCoord:
		return 1
	case ShaderAttribNormal:
		return 2
	case ShaderAttribColor:
		return 3
	default:
		return -1
	}
}

// UniformLocation maps the standard uniform names to stable locations.
func (d *NullDevice) UniformLocation(_ ShaderID, name string) int {
	switch name {
	case ShaderUniformMVP:
		return 0
	case ShaderUniformColorDiffuse:
		return 1
	case ShaderUniformTexture0:
		return 2
	default:
		return -1
	}
}

func (d *NullDevice) SetUniformMat4(int, Mat4)                 {}
func (d *NullDevice) SetUniformVec4(int, float32, float32, float32, float32) {}
func (d *NullDevice) SetUniformInt(int, int)                   {}
func (d *NullDevice) DrawArrays(DrawMode, int, int)            {}
func (d *NullDevice) DrawElements(DrawMode, int, int)          {}
func (d *NullDevice) Viewport(int, int, int, int)              {}
