package attendance

import (
	"errors"
	"testing"
	"time"

	"gym-ledger/internal/errs"
)

var now = time.Date(2026, 10, 16, 18, 5, 0, 0, time.UTC)

func TestCreate(t *testing.T) {
	v := New()
	val, err := v.Create("123456789", "111444777", "0005589", "on time", now, now)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !val.CreatedAt.Equal(now) || val.ServiceNo() != "000" {
		t.Errorf("validation = %+v", val)
	}
	if !v.ExistsForSession("0005589") || !v.Exists("111444777", "0005589") {
		t.Error("validation not found after Create")
	}
	if v.ExistsForSession("0015589") || v.Exists("222333444", "0005589") {
		t.Error("unexpected match")
	}
}

func TestCreateRejectsFormat(t *testing.T) {
	tests := []struct {
		name                      string
		provider, member, session string
		field                     string
	}{
		{"provider", "12345678", "111444777", "0005589", "profNo"},
		{"member", "123456789", "", "0005589", "memberNo"},
		{"session", "123456789", "111444777", "00055890", "sessionNo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			_, err := v.Create(tt.provider, tt.member, tt.session, "", now, now)
			if !errors.Is(err, errs.ErrFormat) {
				t.Fatalf("Create() = %v, want format error", err)
			}
			if field, _ := errs.Field(err); field != tt.field {
				t.Errorf("field = %q, want %q", field, tt.field)
			}
			if v.Len() != 0 {
				t.Errorf("Len() = %d", v.Len())
			}
		})
	}
}

func TestServiceNoAndClear(t *testing.T) {
	if got := ServiceNo("0427712"); got != "042" {
		t.Errorf("ServiceNo = %q, want 042", got)
	}
	v := New()
	v.Create("123456789", "111444777", "0005589", "", now, now)
	v.Clear()
	if v.Len() != 0 || v.ExistsForSession("0005589") {
		t.Error("Clear left validations behind")
	}
}
