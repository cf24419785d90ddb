package models

import (
	"testing"
	"time"
)

func TestDayCodes(t *testing.T) {
	tests := []struct {
		day     Day
		code    string
		weekday time.Weekday
	}{
		{Monday, "11", time.Monday},
		{Tuesday, "22", time.Tuesday},
		{Wednesday, "33", time.Wednesday},
		{Thursday, "44", time.Thursday},
		{Friday, "55", time.Friday},
		{Saturday, "66", time.Saturday},
		{Sunday, "77", time.Sunday},
	}
	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			if got := tt.day.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
			if got := tt.day.Weekday(); got != tt.weekday {
				t.Errorf("Weekday() = %v, want %v", got, tt.weekday)
			}
			if got := DayOf(tt.weekday); got != tt.day {
				t.Errorf("DayOf(%v) = %v, want %v", tt.weekday, got, tt.day)
			}
		})
	}
}

func TestParseDays(t *testing.T) {
	got, err := ParseDays("mon, Friday,SUN")
	if err != nil {
		t.Fatalf("ParseDays: %v", err)
	}
	want := []Day{Monday, Friday, Sunday}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %v, want %v", i, got[i], want[i])
		}
	}
	if _, err := ParseDays("MON,FUNDAY"); err == nil {
		t.Error("expected error for FUNDAY")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("07:05")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if tod.String() != "07:05" {
		t.Errorf("String() = %q, want 07:05", tod.String())
	}
	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Error("expected error for 25:00")
	}
}

func TestSameOfferingIgnoresRemaining(t *testing.T) {
	a := Session{Code: "0005589", ServiceName: "Yoga", Occurrence: Friday, MaxCapacity: 3, Remaining: 3, Fee: 2500, ProviderNo: "123456789"}
	b := a
	b.Remaining = 1
	if !a.SameOffering(b) {
		t.Error("sessions differing only in Remaining should match")
	}
	b.Fee = 3000
	if a.SameOffering(b) {
		t.Error("sessions with different fees should not match")
	}
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  bool
	}{
		{"123456789", 9, true},
		{"12345678", 9, false},
		{"12345678a", 9, false},
		{"0005589", 7, true},
		{"", 3, false},
	}
	for _, tt := range tests {
		if got := IsCode(tt.in, tt.width); got != tt.want {
			t.Errorf("IsCode(%q, %d) = %v, want %v", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestToMajor(t *testing.T) {
	if got := ToMajor(2550).StringFixed(2); got != "25.50" {
		t.Errorf("ToMajor(2550) = %s, want 25.50", got)
	}
	s := Settlement{RevenueCents: 7500}
	if got := s.Revenue().StringFixed(2); got != "75.00" {
		t.Errorf("Revenue() = %s, want 75.00", got)
	}
}

func TestValidationServiceNo(t *testing.T) {
	v := Validation{SessionCode: "0015589"}
	if got := v.ServiceNo(); got != "001" {
		t.Errorf("ServiceNo() = %q, want 001", got)
	}
}
