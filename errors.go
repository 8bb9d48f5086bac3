package glbatch

import "errors"

// Sentinel errors returned at the API boundary. Hot-path operations
// (Begin, Vertex, End) never return errors; misuse there is logged and
// tolerated so a bad frame cannot take the renderer down.
var (
	// ErrNilBatch is returned by SetActiveBatch when the given batch is nil.
	ErrNilBatch = errors.New("glbatch: render batch is nil")

	// ErrNilDevice is returned by NewContext when no device is provided.
	ErrNilDevice = errors.New("glbatch: device is nil")

	// ErrBatchReleased is returned when operating on a released batch.
	ErrBatchReleased = errors.New("glbatch: render batch already released")
)
