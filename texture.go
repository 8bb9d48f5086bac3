package glbatch

import "github.com/gogpu/gputypes"

// Pixel formats the batch accepts for texture uploads. Anything else is
// rejected before reaching the device; format conversion belongs to the
// caller.
func isTextureFormatSupported(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatR8Unorm,
		gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatBGRA8Unorm:
		return true
	default:
		return false
	}
}

// LoadTexture uploads pixel data to the device and returns the texture
// handle, or InvalidID when the format is unsupported or the device
// rejects the upload. Failures are logged, not returned; a missing
// texture degrades to the default white texture at draw time.
func (c *Context) LoadTexture(data []byte, width, height int, format gputypes.TextureFormat, mipmaps int) TextureID {
	if width <= 0 || height <= 0 {
		c.log.Warn("texture dimensions invalid", "width", width, "height", height)
		return InvalidID
	}
	if !isTextureFormatSupported(format) {
		c.log.Warn("texture format not supported", "format", format)
		return InvalidID
	}

	id := c.dev.CreateTexture(data, width, height, format, mipmaps)
	if id == InvalidID {
		c.log.Warn("failed to load texture to VRAM", "width", width, "height", height)
		return InvalidID
	}

	c.log.Info("texture loaded successfully",
		"id", id, "width", width, "height", height, "mipmaps", mipmaps)
	return id
}

// UnloadTexture releases a texture. The default texture is owned by the
// context and refuses unloading until Close.
func (c *Context) UnloadTexture(id TextureID) {
	if id == c.defaultTexture {
		c.log.Warn("default texture cannot be unloaded, it is released on Close", "id", id)
		return
	}
	c.dev.DeleteTexture(id)
}

// loadTextureDefault creates the 1x1 white texture that untextured draw
// calls bind, so the same shader serves textured and flat geometry.
func loadTextureDefault(dev Device) TextureID {
	white := []byte{255, 255, 255, 255}
	return dev.CreateTexture(white, 1, 1, gputypes.TextureFormatRGBA8Unorm, 1)
}

// DefaultTexture returns the context's 1x1 white texture.
func (c *Context) DefaultTexture() TextureID { return c.defaultTexture }
