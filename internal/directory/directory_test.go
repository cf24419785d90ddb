package directory

import (
	"testing"

	"gym-ledger/internal/ident"
)

func newDirectory() *Directory {
	alloc := ident.New()
	return New(func() string { return alloc.Next(ident.Directory) })
}

func TestCodeForIsStable(t *testing.T) {
	d := newDirectory()

	names := []string{"Yoga", "Meditation", "Yoga"}
	want := []string{"000", "001", "000"}
	for i, name := range names {
		if got := d.CodeFor(name); got != want[i] {
			t.Errorf("CodeFor(%q) call %d = %q, want %q", name, i, got, want[i])
		}
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}

func TestCodeForIsCaseSensitive(t *testing.T) {
	d := newDirectory()
	if a, b := d.CodeFor("Yoga"), d.CodeFor("yoga"); a == b {
		t.Errorf("Yoga and yoga share code %q", a)
	}
}

func TestSequentialCodes(t *testing.T) {
	d := newDirectory()
	names := []string{"Boxe", "Danse", "Natation", "Pilates", "Spinning"}
	want := []string{"000", "001", "002", "003", "004"}
	for i, name := range names {
		if got := d.CodeFor(name); got != want[i] {
			t.Errorf("CodeFor(%q) = %q, want %q", name, got, want[i])
		}
	}
}

func TestNameForAndRestore(t *testing.T) {
	d := newDirectory()
	code := d.CodeFor("Zumba")

	if name, ok := d.NameFor(code); !ok || name != "Zumba" {
		t.Errorf("NameFor(%q) = %q, %v", code, name, ok)
	}
	if _, ok := d.NameFor("999"); ok {
		t.Error("NameFor(999) reported a name")
	}

	names, codes := d.Snapshot()
	restored := newDirectory()
	restored.Restore(names, codes)
	if got, _ := restored.Lookup("Zumba"); got != code {
		t.Errorf("restored code = %q, want %q", got, code)
	}
	if name, _ := restored.NameFor(code); name != "Zumba" {
		t.Errorf("restored name = %q, want Zumba", name)
	}
}
