package memio

// StreamKind identifies one of the independent byte streams a decoder
// consumes in parallel. Keeping cursor state here, rather than as mutable
// pointer fields on a descriptor, keeps descriptors immutable after
// construction: only this struct advances as a decode progresses.
type StreamKind int

const (
	StreamData StreamKind = iota
	StreamDataShorts
	StreamDataBytes
	StreamRandomData
	StreamRandomDataShorts
	StreamRandomDataBytes
	StreamIndices
	StreamNotetracks
	StreamVertexData
	StreamFaceData
	StreamWeightData
	StreamBoneIDs
	StreamDeltaTranslation
	StreamDeltaTranslationPayload
	StreamDelta2DRotation
	StreamDelta2DRotationPayload
	StreamDelta3DRotation
	StreamDelta3DRotationPayload
)

// Cursors holds one BufferReader per StreamKind in play for a single
// decoder invocation. It replaces the source's practice of advancing
// integer offsets embedded directly in the descriptor.
type Cursors struct {
	streams map[StreamKind]*BufferReader
}

// NewCursors builds a Cursors set from the given stream buffers. Buffers
// not present in streams simply read as short/empty, matching the
// best-effort policy of the decoders that consume them.
func NewCursors(streams map[StreamKind][]byte) *Cursors {
	c := &Cursors{streams: make(map[StreamKind]*BufferReader, len(streams))}
	for kind, data := range streams {
		c.streams[kind] = NewBufferReader(data)
	}
	return c
}

// Stream returns the BufferReader for kind, creating an empty one on
// first use so callers never need a nil check.
func (c *Cursors) Stream(kind StreamKind) *BufferReader {
	r, ok := c.streams[kind]
	if !ok {
		r = NewBufferReader(nil)
		c.streams[kind] = r
	}
	return r
}
