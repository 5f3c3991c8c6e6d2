package store

import (
	"path/filepath"
	"testing"

	"github.com/funvibe/veridiff/internal/orchestrator"
	"github.com/funvibe/veridiff/internal/tool"
)

func TestRecordAndHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veridiff.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	it := orchestrator.Iteration{
		Seq:     1,
		Design:  orchestrator.Design{ModuleName: "top", Oracle: 7},
		Outcome: orchestrator.Pass,
		Tools: []orchestrator.ToolOutcome{
			{ToolName: "icarus", Result: tool.Result{Outcome: tool.OutcomeOK, Value: 7}},
		},
	}
	if err := st.RecordIteration("sess-1", it); err != nil {
		t.Fatalf("RecordIteration: %v", err)
	}

	hist, err := st.History("sess-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 1 || hist[0].Module != "top" || hist[0].Outcome != "pass" {
		t.Fatalf("unexpected history: %+v", hist)
	}
}

func TestHistoryEmptyForUnknownSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veridiff.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	hist, err := st.History("nonexistent")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("expected empty history, got %+v", hist)
	}
}
