package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CentsInDollar is the divisor from minor currency units to major units.
const CentsInDollar = 100

type PersonKind string

const (
	KindMember       PersonKind = "member"
	KindProfessional PersonKind = "professional"
)

type Status string

const (
	StatusValid         Status = "VALID"
	StatusInvalidNumber Status = "INVALID_NUMBER"
	StatusSuspended     Status = "SUSPENDED"
)

// Message is the text shown at the desk for a status.
func (s Status) Message() string {
	switch s {
	case StatusValid:
		return "Valid"
	case StatusSuspended:
		return "Suspended"
	default:
		return "Invalid Number"
	}
}

type Person struct {
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Kind      PersonKind `json:"kind"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// Service is a recurring offering taught by one professional.
type Service struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Occurrences []Day     `json:"occurrences"`
	MaxCapacity int       `json:"max_capacity"`
	Comment     string    `json:"comment"`
	Fee         int64     `json:"fee"`
	Time        TimeOfDay `json:"time"`
	ProviderNo  string    `json:"provider_no"`
}

// Session is one capacity-bearing weekly instance of a service.
type Session struct {
	Code        string    `json:"code"`
	ServiceCode string    `json:"service_code"`
	ServiceName string    `json:"service_name"`
	Occurrence  Day       `json:"occurrence"`
	Time        TimeOfDay `json:"time"`
	MaxCapacity int       `json:"max_capacity"`
	Remaining   int       `json:"remaining"`
	Fee         int64     `json:"fee"`
	ProviderNo  string    `json:"provider_no"`
}

// SameOffering reports whether both sessions were derived from identical
// service data. Remaining capacity is not compared.
func (s Session) SameOffering(o Session) bool {
	return s.Code == o.Code &&
		s.ServiceName == o.ServiceName &&
		s.Occurrence == o.Occurrence &&
		s.Time == o.Time &&
		s.MaxCapacity == o.MaxCapacity &&
		s.Fee == o.Fee &&
		s.ProviderNo == o.ProviderNo
}

type Registration struct {
	SessionCode string    `json:"session_code"`
	MemberNo    string    `json:"member_no"`
	ProviderNo  string    `json:"provider_no"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	SessionDate time.Time `json:"session_date"`
}

type Validation struct {
	ProviderNo  string    `json:"provider_no"`
	MemberNo    string    `json:"member_no"`
	SessionCode string    `json:"session_code"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	SessionDate time.Time `json:"session_date"`
}

// ServiceNoLength is the width of the directory code heading a session code.
const ServiceNoLength = 3

// ServiceNo returns the directory code of the validated session's service.
func (v Validation) ServiceNo() string {
	if len(v.SessionCode) < ServiceNoLength {
		return v.SessionCode
	}
	return v.SessionCode[:ServiceNoLength]
}

type BillLine struct {
	SessionDate  time.Time `json:"session_date"`
	ProviderName string    `json:"provider_name"`
	ServiceName  string    `json:"service_name"`
}

// Bill lists the sessions a member attended this week.
type Bill struct {
	MemberNo   string     `json:"member_no"`
	MemberName string     `json:"member_name"`
	CreatedAt  time.Time  `json:"created_at"`
	Lines      []BillLine `json:"lines"`
}

// NoticeEntry aggregates every validation of one session on one date.
type NoticeEntry struct {
	SessionCode string            `json:"session_code"`
	SessionDate time.Time         `json:"session_date"`
	RetrievedAt time.Time         `json:"retrieved_at"`
	Members     map[string]string `json:"members"`
	Balance     int64             `json:"balance"`
}

// PaymentNotice is what a professional is owed for the week.
type PaymentNotice struct {
	ProviderNo   string         `json:"provider_no"`
	ProviderName string         `json:"provider_name"`
	CreatedAt    time.Time      `json:"created_at"`
	Entries      []*NoticeEntry `json:"entries"`
}

// Total sums the balance of every entry.
func (p *PaymentNotice) Total() int64 {
	var total int64
	for _, e := range p.Entries {
		total += e.Balance
	}
	return total
}

// Settlement is the weekly transfer record of one professional.
type Settlement struct {
	ProviderName string `json:"provider_name"`
	ProviderNo   string `json:"provider_no"`
	RevenueCents int64  `json:"revenue_cents"`
}

// Revenue returns the settlement amount in major currency units.
func (s Settlement) Revenue() decimal.Decimal {
	return ToMajor(s.RevenueCents)
}

// ToMajor converts minor currency units into major units.
func ToMajor(cents int64) decimal.Decimal {
	return decimal.New(cents, 0).Div(decimal.New(CentsInDollar, 0))
}

type UserState struct {
	UserID      int64
	State       string
	TempData    map[string]interface{}
	LastUpdated time.Time
}
