package arena

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCountBatches(t *testing.T) {
	tests := []struct {
		cmds []RenderCommand
		want int
	}{
		{nil, 0},
		{[]RenderCommand{{Texture: TextureCourt}}, 1},
		{[]RenderCommand{
			{Texture: TextureCourt, Layer: LayerBackground},
			{Texture: TextureParticle, Layer: LayerLowerAir},
			{Texture: TextureParticle, Layer: LayerLowerAir},
			{Texture: TextureEntities, Layer: LayerUpperAir},
			{Texture: TextureEntities, Layer: LayerUpperAir},
		}, 3},
		{[]RenderCommand{
			{Texture: TextureEntities},
			{Texture: TextureSplatter},
			{Texture: TextureEntities},
		}, 3},
	}
	for i, tt := range tests {
		if got := countBatches(tt.cmds); got != tt.want {
			t.Errorf("case %d: countBatches = %d, want %d", i, got, tt.want)
		}
	}
}

func TestDebugLogsFrameStats(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := NewWorld(*DefaultConfig(), WithLogger(zap.New(core)), WithDebug())
	w.AddAvatar(1, TeamA)
	w.Update(frame)
	w.Draw(&recordingSink{})

	if logs.FilterMessage("frame").Len() != 1 {
		t.Errorf("frame logs = %d, want 1", logs.FilterMessage("frame").Len())
	}
	draw := logs.FilterMessage("draw").All()
	if len(draw) != 1 {
		t.Fatalf("draw logs = %d, want 1", len(draw))
	}
	if draw[0].ContextMap()["commands"].(int64) == 0 {
		t.Error("draw log should count commands")
	}
}

func TestDebugOffIsQuiet(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := NewWorld(*DefaultConfig(), WithLogger(zap.New(core)))
	w.Update(frame)
	w.Draw(&recordingSink{})
	if logs.FilterMessage("frame").Len() != 0 || logs.FilterMessage("draw").Len() != 0 {
		t.Error("stats should only be logged in debug mode")
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := NewWorld(*DefaultConfig(), WithLogger(zap.New(core)), WithDebug())
	layer := w.Layer(LayerBackground)
	for i := 0; i <= debugMaxChildCount; i++ {
		layer.AttachChild(w.Graph().NewContainer("c", CategoryNone))
	}
	w.Update(frame)
	if logs.FilterMessage("node child count exceeds threshold").Len() != 1 {
		t.Error("expected one child count warning")
	}
}

func TestDebugTreeDepthWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := NewWorld(*DefaultConfig(), WithLogger(zap.New(core)), WithDebug())
	parent := w.Layer(LayerBackground)
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		c := w.Graph().NewContainer("deep", CategoryNone)
		parent.AttachChild(c)
		parent = c
	}
	w.Update(frame)
	if logs.FilterMessage("tree depth exceeds threshold").Len() != 1 {
		t.Error("expected one tree depth warning")
	}
}
