package tool

import "testing"

func TestScanForResultFindsFirstMatch(t *testing.T) {
	log := "some banner\nnoise\nRES=0000002a\ntrailer\n"
	v, ok := scanForResult(log)
	if !ok || v != 0x2a {
		t.Fatalf("expected 0x2a true, got %#x %v", v, ok)
	}
}

func TestScanForResultMissingToken(t *testing.T) {
	_, ok := scanForResult("nothing here\n")
	if ok {
		t.Fatalf("expected not found")
	}
}

func TestScanForResultUnparseableToken(t *testing.T) {
	_, ok := scanForResult("RES=zzzzzzzz\n")
	if ok {
		t.Fatalf("expected unparseable token to be rejected")
	}
}

func TestFactoryBuildsKnownBackends(t *testing.T) {
	for _, name := range []string{"quartus", "quartuspro", "vivado", "icarus", "modelsim", "comparesim"} {
		tl, err := New(name, t.TempDir())
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if tl.Name() != name {
			t.Fatalf("Name() = %q, want %q", tl.Name(), name)
		}
	}
}

func TestFactoryRejectsUnknownBackend(t *testing.T) {
	if _, err := New("bogus", t.TempDir()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
