package export

import (
	"fmt"

	"github.com/voidhound/codol-extract/pkg/anim"
	"github.com/voidhound/codol-extract/pkg/logger"
	"github.com/voidhound/codol-extract/pkg/model"
)

// LogSink is a diagnostic AnimationSink/ModelSink/ImageSink/AudioSink
// that logs what would have been written instead of writing it, so the
// CLI can run end-to-end without a real format writer wired in.
type LogSink struct {
	Log logger.Logger
}

// NewLogSink returns a LogSink writing through log.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{Log: log}
}

func (s *LogSink) WriteAnimation(a *anim.Animation, format AnimationFormat, path string) error {
	s.Log.LogInfo(fmt.Sprintf("would write animation %q (%d bones) to %s", a.Name, len(a.Bones), path))
	return nil
}

func (s *LogSink) WriteModel(m *model.Model, format ModelFormat, path string) error {
	s.Log.LogInfo(fmt.Sprintf("would write model %q (%d bones, %d submeshes) to %s", m.Name, len(m.Bones), len(m.Submeshes), path))
	return nil
}

func (s *LogSink) WriteImage(buf []byte, format ImageFormat, path string) error {
	s.Log.LogInfo(fmt.Sprintf("would write image (%d bytes) to %s", len(buf), path))
	return nil
}

func (s *LogSink) WriteAudio(spec AudioSpec, format AudioFormat, path string) error {
	s.Log.LogInfo(fmt.Sprintf("would write audio (%d bytes, %d Hz) to %s", len(spec.Data), spec.Rate, path))
	return nil
}

var (
	_ AnimationSink = (*LogSink)(nil)
	_ ModelSink     = (*LogSink)(nil)
	_ ImageSink     = (*LogSink)(nil)
	_ AudioSink     = (*LogSink)(nil)
)
