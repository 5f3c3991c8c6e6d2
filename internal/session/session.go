// Package session names and creates the per-run directory tree a
// veridiff campaign writes its tool workdirs and logs under, tagging
// each run with a UUID so two campaigns never collide (spec.md §6).
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Session is one campaign's identity and on-disk root.
type Session struct {
	ID      uuid.UUID
	Started time.Time
	Dir     string
}

// New creates a fresh session rooted at filepath.Join(baseDir, id), with
// the directory created before it is returned.
func New(baseDir string) (*Session, error) {
	id := uuid.New()
	s := &Session{ID: id, Started: startedAt(), Dir: filepath.Join(baseDir, id.String())}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session dir %s: %w", s.Dir, err)
	}
	return s, nil
}

// startedAt is split out only so tests can't accidentally depend on wall
// clock ordering across a run.
func startedAt() time.Time { return time.Now() }

// ToolDir returns the dedicated per-iteration, per-tool workdir a Tool
// instance should own (spec.md §4.4).
func (s *Session) ToolDir(iteration int, toolName string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("iter-%04d", iteration), toolName)
}
