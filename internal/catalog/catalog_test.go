package catalog

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gym-ledger/internal/errs"
	"gym-ledger/internal/ident"
	"gym-ledger/internal/models"
)

func validService() models.Service {
	return models.Service{
		Name:        "Yoga",
		StartDate:   time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Occurrences: []models.Day{models.Friday},
		MaxCapacity: 1,
		Fee:         2500,
		Time:        models.TimeOfDay{Hour: 18, Minute: 30},
		ProviderNo:  "123456789",
	}
}

func nextService(alloc *ident.Allocator) func() string {
	return func() string { return alloc.Next(ident.Service) }
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Service)
		field  string
	}{
		{"lowercase name", func(s *models.Service) { s.Name = "yoga" }, "name"},
		{"long name", func(s *models.Service) { s.Name = "Y" + strings.Repeat("o", 20) }, "name"},
		{"two words", func(s *models.Service) { s.Name = "Hot Yoga" }, "name"},
		{"end before start", func(s *models.Service) { s.EndDate = s.StartDate.AddDate(0, 0, -1) }, "endDate"},
		{"no occurrence", func(s *models.Service) { s.Occurrences = nil }, "occurrences"},
		{"duplicate occurrence", func(s *models.Service) { s.Occurrences = []models.Day{models.Monday, models.Monday} }, "occurrences"},
		{"capacity", func(s *models.Service) { s.MaxCapacity = 31 }, "maxCapacity"},
		{"comment", func(s *models.Service) { s.Comment = strings.Repeat("x", 101) }, "comment"},
		{"negative fee", func(s *models.Service) { s.Fee = -1 }, "fee"},
		{"fee", func(s *models.Service) { s.Fee = 10001 }, "fee"},
		{"provider", func(s *models.Service) { s.ProviderNo = "12345" }, "providerNo"},
	}

	if err := Validate(validService()); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validService()
			tt.mutate(&s)
			err := Validate(s)
			if !errors.Is(err, errs.ErrFormat) {
				t.Fatalf("Validate() = %v, want format error", err)
			}
			if field, _ := errs.Field(err); field != tt.field {
				t.Errorf("field = %q, want %q", field, tt.field)
			}
		})
	}
}

func TestCreateAssignsCodes(t *testing.T) {
	c := New()
	alloc := ident.New()

	first, err := c.Create(validService(), nextService(alloc))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := c.Create(validService(), nextService(alloc))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Code != "0000000" || second.Code != "0000001" {
		t.Errorf("codes = %q, %q; want 0000000, 0000001", first.Code, second.Code)
	}

	bad := validService()
	bad.Fee = 20000
	if _, err := c.Create(bad, nextService(alloc)); err == nil {
		t.Fatal("expected format error")
	}
	if got := alloc.Counters().Service; got != 2 {
		t.Errorf("service counter = %d after failed create, want 2", got)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestModify(t *testing.T) {
	c := New()
	s, _ := c.Create(validService(), nextService(ident.New()))

	old, updated, err := c.Modify(s.Code, func(m *models.Service) {
		m.Fee = 3000
		m.ProviderNo = "999999999"
	})
	if err != nil {
		t.Fatalf("Modify: %v", err)
	}
	if old.Fee != 2500 || updated.Fee != 3000 {
		t.Errorf("fees old=%d new=%d", old.Fee, updated.Fee)
	}
	if updated.ProviderNo != "123456789" {
		t.Errorf("provider changed to %q", updated.ProviderNo)
	}

	_, _, err = c.Modify(s.Code, func(m *models.Service) { m.MaxCapacity = 99 })
	if !errors.Is(err, errs.ErrFormat) {
		t.Fatalf("Modify(invalid) = %v", err)
	}
	if got, _ := c.Get(s.Code); got.MaxCapacity != 1 || got.Fee != 3000 {
		t.Errorf("failed modify changed the service: %+v", got)
	}

	if _, _, err := c.Modify("7777777", func(*models.Service) {}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Modify(unknown) = %v", err)
	}
}

func TestDeleteByProvider(t *testing.T) {
	c := New()
	next := nextService(ident.New())
	c.Create(validService(), next)
	other := validService()
	other.ProviderNo = "000000001"
	c.Create(other, next)
	c.Create(validService(), next)

	removed := c.DeleteByProvider("123456789")
	if len(removed) != 2 {
		t.Fatalf("removed %d services, want 2", len(removed))
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, err := c.Delete("0000001"); err != nil {
		t.Errorf("Delete(remaining) = %v", err)
	}
	if _, err := c.Delete("0000001"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("second Delete = %v, want not found", err)
	}
}
