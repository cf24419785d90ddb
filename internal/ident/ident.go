// Package ident allocates the fixed-width numeric codes of members,
// professionals, services and service names.
//
// Codes are the zero-padded decimal value of a per-category counter that
// starts at zero and only grows. A width of w digits holds 10^w codes:
// member and professional numbers (9 digits) run out after 1,000,000,000
// allocations, service codes (7 digits) after 10,000,000 and directory codes
// (3 digits) after 1,000. Past that the code is simply wider than its field
// and fails format checks downstream; nothing here guards against it.
package ident

import "fmt"

type Category int

const (
	Member Category = iota
	Professional
	Service
	Directory
)

var widths = map[Category]int{
	Member:       9,
	Professional: 9,
	Service:      7,
	Directory:    3,
}

// Width returns the number of digits of codes in the category.
func Width(c Category) int {
	return widths[c]
}

func (c Category) String() string {
	switch c {
	case Member:
		return "member"
	case Professional:
		return "professional"
	case Service:
		return "service"
	case Directory:
		return "directory"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Counters is the persisted form of the allocator.
type Counters struct {
	Member       uint64 `json:"member"`
	Professional uint64 `json:"professional"`
	Service      uint64 `json:"service"`
	Directory    uint64 `json:"directory"`
}

// Allocator owns one counter per category. It is not safe for concurrent
// use; the engine serializes access.
type Allocator struct {
	counters Counters
}

func New() *Allocator {
	return &Allocator{}
}

// Next returns the next code of the category and advances its counter.
func (a *Allocator) Next(c Category) string {
	p := a.counter(c)
	code := fmt.Sprintf("%0*d", widths[c], *p)
	*p++
	return code
}

func (a *Allocator) Counters() Counters {
	return a.counters
}

// Restore seeds the counters from persisted values.
func (a *Allocator) Restore(c Counters) {
	a.counters = c
}

func (a *Allocator) counter(c Category) *uint64 {
	switch c {
	case Member:
		return &a.counters.Member
	case Professional:
		return &a.counters.Professional
	case Service:
		return &a.counters.Service
	case Directory:
		return &a.counters.Directory
	default:
		panic(fmt.Sprintf("ident: unknown category %d", int(c)))
	}
}
