package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	known := writeFile(t, "known.txt", "the\nCreate  v. 创造\n\n  word extra columns\n")
	validity := writeFile(t, "validity.txt", "the\ncreated\n")

	c, err := Load(known, validity)
	if err != nil {
		t.Fatal(err)
	}

	if c.KnownSize() != 3 {
		t.Errorf("KnownSize = %d, want 3", c.KnownSize())
	}
	// First field only, lowercased.
	if !c.IsKnown("create") {
		t.Error("expected 'create' in known corpus")
	}
	if c.IsKnown("v.") {
		t.Error("gloss columns must not become corpus entries")
	}
	if !c.IsValid("created") || c.IsValid("create") {
		t.Error("validity corpus membership wrong")
	}
}

func TestLoadMissingFile(t *testing.T) {
	validity := writeFile(t, "validity.txt", "a\n")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt"), validity); err == nil {
		t.Error("expected error for missing known corpus file")
	}
}

func TestNew(t *testing.T) {
	c := New([]string{"The", "cat"}, []string{"DOG"})
	if !c.IsKnown("the") || !c.IsKnown("cat") || !c.IsValid("dog") {
		t.Error("New must lowercase entries")
	}
}
