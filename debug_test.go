package cadence

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDumpHierarchy(t *testing.T) {
	root := NewContainer("root")
	root.SetClock(NewManualClock(0))
	box := NewBox("box", Vec2{32, 16})
	box.SetPosition(Vec2{10, 20})
	box.Alpha = 0.5
	root.AddChild(box)
	hidden := NewContainer("")
	hidden.Visible = false
	box.AddChild(hidden)
	box.FadeIn(100, EasingNone)

	var buf bytes.Buffer
	if err := DumpHierarchy(&buf, root); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "root [container] pos=(0,0) size=(0,0) alpha=1 transforms=0" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "  box [box] pos=(10,20) size=(32,16) alpha=0.5 transforms=1" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "    #") || !strings.HasSuffix(lines[2], " hidden") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDumpHierarchyWriteError(t *testing.T) {
	err := DumpHierarchy(failingWriter{}, NewContainer("root"))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("err = %v", err)
	}
}
