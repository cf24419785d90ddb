// Package engine wires the scheduling stores together.
//
// The engine owns one instance of every store and is the only place where
// they meet: no store holds a reference to another. A single mutex covers all
// of them, so a foreground command and the weekly boundary never interleave.
// Every operation checks all of its preconditions before the first mutation.
package engine

import (
	"sync"
	"time"

	"gym-ledger/internal/attendance"
	"gym-ledger/internal/billing"
	"gym-ledger/internal/catalog"
	"gym-ledger/internal/directory"
	"gym-ledger/internal/ident"
	"gym-ledger/internal/metrics"
	"gym-ledger/internal/models"
	"gym-ledger/internal/people"
	"gym-ledger/internal/registration"
	"gym-ledger/internal/sessions"
	"gym-ledger/pkg/logger"

	"go.uber.org/zap"
)

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = logger.Component(l, "engine") }
}

type Engine struct {
	mu  sync.Mutex
	now func() time.Time
	log *zap.Logger

	alloc         *ident.Allocator
	dir           *directory.Directory
	services      *catalog.Catalog
	sessions      *sessions.Catalog
	registrations *registration.Ledger
	validations   *attendance.Validator
	ledger        *billing.Ledger
	revenue       *billing.Revenue
	people        *people.Registry

	lastClosed time.Time
}

func New(opts ...Option) *Engine {
	e := &Engine{
		now:           time.Now,
		log:           zap.NewNop(),
		alloc:         ident.New(),
		services:      catalog.New(),
		sessions:      sessions.New(),
		registrations: registration.New(),
		validations:   attendance.New(),
		ledger:        billing.NewLedger(),
		revenue:       billing.NewRevenue(),
		people:        people.New(),
	}
	e.dir = directory.New(e.nextFunc(ident.Directory))
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) nextFunc(c ident.Category) func() string {
	return func() string { return e.alloc.Next(c) }
}

// ServiceCode returns the directory code of a service name, allocating it on
// first use.
func (e *Engine) ServiceCode(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dir.CodeFor(name)
}

func (e *Engine) providerName(code string) string {
	return e.people.Name(models.KindProfessional, code)
}

func (e *Engine) memberName(code string) string {
	return e.people.Name(models.KindMember, code)
}

func (e *Engine) observeSessions() {
	metrics.OfferedSessions.Set(float64(e.sessions.Len()))
}
