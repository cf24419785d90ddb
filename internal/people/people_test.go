package people

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gym-ledger/internal/errs"
	"gym-ledger/internal/ident"
	"gym-ledger/internal/models"
)

var now = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func TestAddAndStatus(t *testing.T) {
	r := New()
	alloc := ident.New()
	next := func() string { return alloc.Next(ident.Member) }

	p, err := r.Add(models.KindMember, " Carol ", next, now)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.Code != "000000000" || p.Name != "Carol" || p.Status != models.StatusValid {
		t.Errorf("person = %+v", p)
	}

	tests := []struct {
		kind models.PersonKind
		code string
		want models.Status
	}{
		{models.KindMember, p.Code, models.StatusValid},
		{models.KindProfessional, p.Code, models.StatusInvalidNumber},
		{models.KindMember, "999999999", models.StatusInvalidNumber},
	}
	for _, tt := range tests {
		if got := r.Status(tt.kind, tt.code); got != tt.want {
			t.Errorf("Status(%s, %s) = %s, want %s", tt.kind, tt.code, got, tt.want)
		}
	}

	if err := r.SetStatus(models.KindMember, p.Code, models.StatusSuspended); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got := r.Status(models.KindMember, p.Code).Message(); got != "Suspended" {
		t.Errorf("Message() = %q, want Suspended", got)
	}
}

func TestAddRejectsBadName(t *testing.T) {
	r := New()
	called := false
	next := func() string {
		called = true
		return "000000000"
	}

	for _, name := range []string{"", "   ", strings.Repeat("n", 26)} {
		if _, err := r.Add(models.KindProfessional, name, next, now); !errors.Is(err, errs.ErrFormat) {
			t.Errorf("Add(%q) = %v, want format error", name, err)
		}
	}
	if called {
		t.Error("a code was allocated for an invalid person")
	}
}

func TestDeleteAndList(t *testing.T) {
	r := New()
	alloc := ident.New()
	next := func() string { return alloc.Next(ident.Professional) }
	a, _ := r.Add(models.KindProfessional, "Alice", next, now)
	r.Add(models.KindProfessional, "Bob", next, now)

	if _, err := r.Delete(models.KindProfessional, a.Code); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.Delete(models.KindProfessional, a.Code); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("second Delete = %v", err)
	}
	list := r.List(models.KindProfessional)
	if len(list) != 1 || list[0].Name != "Bob" {
		t.Errorf("List() = %+v", list)
	}
	if got := r.Name(models.KindProfessional, "424242424"); got != "424242424" {
		t.Errorf("Name(unknown) = %q", got)
	}
}
