// Package export declares the output-sink boundary consumed by the
// driver after a decoder has produced its in-memory result. Concrete
// format writers (SEAnim, OBJ, SMD, Maya, XNA, XME, WAV, PNG/DDS,
// XAnim-raw) are the "translate-then-emit glue" spec.md §1 places out of
// scope; this package only declares the interfaces a real writer would
// satisfy, plus a diagnostic sink that logs rather than writes.
package export

import (
	"github.com/voidhound/codol-extract/pkg/anim"
	"github.com/voidhound/codol-extract/pkg/model"
)

// AnimationFormat names an output container for AnimationSink.WriteAnimation.
type AnimationFormat int

const (
	FormatSEAnim AnimationFormat = iota
	FormatXAnimWaW
	FormatXAnimBO
)

// ModelFormat names an output container for ModelSink.WriteModel.
type ModelFormat int

const (
	FormatMaya ModelFormat = iota
	FormatOBJ
	FormatXNA
	FormatSMD
	FormatXME
)

// ImageFormat names an output container for ImageSink.WriteImage.
type ImageFormat int

const (
	FormatDDS ImageFormat = iota
	FormatPNG
)

// AudioFormat names an output container for AudioSink.WriteAudio.
type AudioFormat int

const (
	FormatWAV AudioFormat = iota
	FormatIMAADPCM
)

// AudioSpec carries the PCM parameters an AudioSink.WriteAudio needs to frame
// a container header; Data is the raw (already-decoded) sample bytes.
type AudioSpec struct {
	Rate       uint32
	Channels   uint16
	Bits       uint16
	BlockAlign uint16
	Data       []byte
}

// AnimationSink writes a decoded Animation to path in the requested
// format.
type AnimationSink interface {
	WriteAnimation(a *anim.Animation, format AnimationFormat, path string) error
}

// ModelSink writes a decoded Model to path in the requested format.
type ModelSink interface {
	WriteModel(m *model.Model, format ModelFormat, path string) error
}

// ImageSink writes a raw (already-decompressed) image buffer to path.
type ImageSink interface {
	WriteImage(buf []byte, format ImageFormat, path string) error
}

// AudioSink writes PCM or IMA-ADPCM sample data to path.
type AudioSink interface {
	WriteAudio(spec AudioSpec, format AudioFormat, path string) error
}
