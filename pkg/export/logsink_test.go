package export

import (
	"strings"
	"testing"

	"github.com/voidhound/codol-extract/pkg/anim"
	"github.com/voidhound/codol-extract/pkg/logger"
	"github.com/voidhound/codol-extract/pkg/model"
)

type capturingLogger struct {
	logger.NullLogger
	lines []string
}

func (c *capturingLogger) LogInfo(message string) { c.lines = append(c.lines, message) }

func TestLogSinkWriteAnimationLogsName(t *testing.T) {
	log := &capturingLogger{}
	sink := NewLogSink(log)

	a := anim.Animation{Name: "fire_loop"}
	if err := sink.WriteAnimation(&a, FormatSEAnim, "out/fire_loop.seanim"); err != nil {
		t.Fatalf("WriteAnimation: %v", err)
	}
	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "fire_loop") {
		t.Errorf("log lines = %v, want one line mentioning fire_loop", log.lines)
	}
}

func TestLogSinkWriteModelLogsName(t *testing.T) {
	log := &capturingLogger{}
	sink := NewLogSink(log)

	m := model.Model{Name: "player_body"}
	if err := sink.WriteModel(&m, FormatOBJ, "out/player_body.obj"); err != nil {
		t.Fatalf("WriteModel: %v", err)
	}
	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "player_body") {
		t.Errorf("log lines = %v, want one line mentioning player_body", log.lines)
	}
}
