package glbatch

import "fmt"

// Standard shader interface names. Any shader used with the batch must
// expose these attribute and uniform names; locations are queried at
// load time, never assumed.
const (
	ShaderAttribPosition = "vertexPosition"
	ShaderAttribTexCoord = "vertexTexCoord"
	ShaderAttribNormal   = "vertexNormal"
	ShaderAttribColor    = "vertexColor"

	ShaderUniformMVP          = "mvp"
	ShaderUniformColorDiffuse = "colDiffuse"
	ShaderUniformTexture0     = "texture0"
)

// ShaderLocations caches the resolved attribute and uniform locations
// of one shader program. A location of -1 means the shader does not use
// that input.
type ShaderLocations struct {
	Position int
	TexCoord int
	Normal   int
	Color    int

	MVP          int
	ColorDiffuse int
	Texture0     int
}

// Default batch shader, GLSL 3.3 style. Vertex color and the diffuse
// texture modulate a flat color pipeline; devices targeting other
// shading languages translate at the CreateShader boundary.
const defaultVertexShaderSrc = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
out vec2 fragTexCoord;
out vec4 fragColor;
uniform mat4 mvp;
void main()
{
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp*vec4(vertexPosition, 1.0);
}
`

const defaultFragmentShaderSrc = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
out vec4 finalColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
void main()
{
    vec4 texelColor = texture(texture0, fragTexCoord);
    finalColor = texelColor*colDiffuse*fragColor;
}
`

// queryShaderLocations resolves the standard attribute and uniform
// locations for a linked program.
func queryShaderLocations(dev Device, id ShaderID) ShaderLocations {
	return ShaderLocations{
		Position:     dev.AttribLocation(id, ShaderAttribPosition),
		TexCoord:     dev.AttribLocation(id, ShaderAttribTexCoord),
		Normal:       dev.AttribLocation(id, ShaderAttribNormal),
		Color:        dev.AttribLocation(id, ShaderAttribColor),
		MVP:          dev.UniformLocation(id, ShaderUniformMVP),
		ColorDiffuse: dev.UniformLocation(id, ShaderUniformColorDiffuse),
		Texture0:     dev.UniformLocation(id, ShaderUniformTexture0),
	}
}

// loadShaderDefault compiles the built-in batch shader. A context
// cannot operate without it, so failure is returned as an error.
func loadShaderDefault(dev Device) (ShaderID, ShaderLocations, error) {
	id, err := dev.CreateShader(defaultVertexShaderSrc, defaultFragmentShaderSrc)
	if err != nil {
		return InvalidID, ShaderLocations{}, fmt.Errorf("glbatch: loading default shader: %w", err)
	}
	if id == InvalidID {
		return InvalidID, ShaderLocations{}, fmt.Errorf("glbatch: loading default shader: device returned null program")
	}
	return id, queryShaderLocations(dev, id), nil
}

// LoadShader compiles a custom shader program. On compile or link
// failure the default shader is returned instead, so drawing continues
// with flat shading rather than stopping.
func (c *Context) LoadShader(vertexSrc, fragmentSrc string) (ShaderID, ShaderLocations) {
	id, err := c.dev.CreateShader(vertexSrc, fragmentSrc)
	if err != nil || id == InvalidID {
		c.log.Warn("shader compilation failed, falling back to default shader", "error", err)
		return c.defaultShader, c.defaultLocs
	}
	c.log.Info("shader loaded successfully", "id", id)
	return id, queryShaderLocations(c.dev, id)
}

// UnloadShader releases a shader program. The default shader is owned
// by the context and refuses unloading until Close.
func (c *Context) UnloadShader(id ShaderID) {
	if id == c.defaultShader {
		c.log.Warn("default shader cannot be unloaded, it is released on Close", "id", id)
		return
	}
	if id == c.currentShader {
		c.SetShader(c.defaultShader, c.defaultLocs)
	}
	c.dev.DeleteShader(id)
}

// SetShader makes a shader program current for subsequent draw calls.
// Changing the program flushes the active batch first, since a batch is
// drawn with a single program.
func (c *Context) SetShader(id ShaderID, locs ShaderLocations) {
	if c.currentShader == id {
		return
	}
	c.Flush()
	c.currentShader = id
	c.shaderLocs = locs
}

// DefaultShader returns the built-in shader and its locations.
func (c *Context) DefaultShader() (ShaderID, ShaderLocations) {
	return c.defaultShader, c.defaultLocs
}
