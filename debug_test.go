package sapling

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedHierarchy(debug bool) (*Hierarchy, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := NewHierarchy()
	h.SetLogger(zap.New(core))
	h.SetDebugMode(debug)
	return h, logs
}

func TestDebugWarnsOnDeepTree(t *testing.T) {
	h, logs := observedHierarchy(true)
	parent := h.NewTransform()
	for i := 0; i < debugMaxTreeDepth+1; i++ {
		child := h.NewTransform()
		if err := child.SetParent(parent); err != nil {
			t.Fatal(err)
		}
		parent = child
	}
	got := logs.FilterMessage("transform tree depth exceeds threshold").Len()
	if got != 1 {
		t.Errorf("depth warnings = %d, want 1", got)
	}
}

func TestDebugWarnsOnManyChildren(t *testing.T) {
	h, logs := observedHierarchy(true)
	parent := h.NewTransform()
	for i := 0; i < debugMaxChildCount+2; i++ {
		if err := h.NewTransform().SetParent(parent); err != nil {
			t.Fatal(err)
		}
	}
	got := logs.FilterMessage("transform has too many children").Len()
	if got != 2 {
		t.Errorf("child count warnings = %d, want 2", got)
	}
}

func TestDebugChecksOffByDefault(t *testing.T) {
	h, logs := observedHierarchy(false)
	parent := h.NewTransform()
	for i := 0; i < debugMaxTreeDepth+5; i++ {
		child := h.NewTransform()
		_ = child.SetParent(parent)
		parent = child
	}
	if logs.Len() != 0 {
		t.Errorf("got %d warnings with debug off", logs.Len())
	}
}

func TestSceneDebugModePropagates(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScene("dbg")
	s.SetLogger(zap.New(core))
	s.SetDebugMode(true)
	s.NewObject("o")
	s.Render(&recordRenderer{})

	entries := logs.FilterMessage("render").All()
	if len(entries) != 1 {
		t.Fatalf("render debug entries = %d, want 1", len(entries))
	}
	if entries[0].ContextMap()["scene"] != "dbg" {
		t.Errorf("scene field = %v", entries[0].ContextMap()["scene"])
	}
}
