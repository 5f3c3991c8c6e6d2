package session

import "testing"

func TestNewCreatesDirAndUniqueIDs(t *testing.T) {
	base := t.TempDir()
	a, err := New(base)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(base)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct session IDs")
	}
	if a.Dir == b.Dir {
		t.Fatalf("expected distinct session dirs")
	}
}

func TestToolDirIsNamespacedPerIterationAndTool(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a := s.ToolDir(3, "icarus")
	b := s.ToolDir(3, "modelsim")
	c := s.ToolDir(4, "icarus")
	if a == b || a == c {
		t.Fatalf("expected distinct tool dirs, got %q %q %q", a, b, c)
	}
}
