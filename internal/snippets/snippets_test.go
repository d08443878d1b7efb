package snippets

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLanguagesSorted(t *testing.T) {
	langs := Languages()
	if len(langs) == 0 {
		t.Fatal("no built-in languages")
	}
	for i := 1; i < len(langs); i++ {
		if langs[i-1] >= langs[i] {
			t.Fatalf("languages not sorted: %v", langs)
		}
	}
}

func TestByLanguageAliases(t *testing.T) {
	js, err := ByLanguage("javascript")
	if err != nil {
		t.Fatalf("javascript: %v", err)
	}
	ts, err := ByLanguage("TypeScript")
	if err != nil {
		t.Fatalf("typescript alias: %v", err)
	}
	if len(js) != len(ts) {
		t.Fatalf("typescript should resolve to the javascript corpus")
	}
	if _, err := ByLanguage("cobol"); err == nil {
		t.Fatal("expected error for unknown language")
	}
}

func TestSnippetsAreMultiline(t *testing.T) {
	for _, lang := range Languages() {
		list, err := ByLanguage(lang)
		if err != nil {
			t.Fatalf("%s: %v", lang, err)
		}
		if len(list) == 0 {
			t.Fatalf("%s has no snippets", lang)
		}
		for i, s := range list {
			if strings.TrimSpace(s) == "" {
				t.Fatalf("%s snippet %d is blank", lang, i)
			}
			if !strings.Contains(s, "\n") {
				t.Fatalf("%s snippet %d is a single line", lang, i)
			}
		}
	}
}

func TestRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	got, err := Random("go", rnd)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	list, err := ByLanguage("go")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range list {
		if s == got {
			found = true
		}
	}
	if !found {
		t.Fatal("Random returned a snippet outside the go corpus")
	}
	if _, err := Random("cobol", rnd); err == nil {
		t.Fatal("expected error for unknown language")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.py")
	if err := os.WriteFile(path, []byte("print('hi')\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got != "print('hi')" {
		t.Fatalf("got %q", got)
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(empty); err == nil {
		t.Fatal("expected error for empty file")
	}
}
