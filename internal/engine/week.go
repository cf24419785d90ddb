package engine

import (
	"time"

	"gym-ledger/internal/billing"
	"gym-ledger/internal/models"
	"gym-ledger/internal/settlement"
	"gym-ledger/internal/storage"
	"gym-ledger/pkg/logger"

	"go.uber.org/zap"
)

// WeeklyReport aggregates the week so far without closing it.
func (e *Engine) WeeklyReport() billing.Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revenue.WeeklyReport(e.providerName)
}

func (e *Engine) Settlements() []models.Settlement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revenue.Settlements(e.providerName)
}

// Snapshot freezes the current week without resetting it.
func (e *Engine) Snapshot(runID string) settlement.Closing {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closing(runID)
}

func (e *Engine) closing(runID string) settlement.Closing {
	return settlement.Closing{
		RunID:       runID,
		ClosedAt:    e.now(),
		Settlements: e.revenue.Settlements(e.providerName),
		Report:      e.revenue.WeeklyReport(e.providerName),
		Bills:       e.ledger.Bills(),
		Notices:     e.ledger.Notices(),
	}
}

// CloseWeek takes the closing snapshot of the week, then empties the
// registrations, validations, billing ledger and revenue ledger and
// re-derives the session catalog from the services on file. All of it
// happens under one lock acquisition.
func (e *Engine) CloseWeek(runID string) settlement.Closing {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.closing(runID)
	e.lastClosed = c.ClosedAt

	e.registrations.Clear()
	e.validations.Clear()
	e.ledger.Clear()
	e.revenue.Clear()
	e.refresh()

	e.log.Info("week closed",
		zap.String(logger.FieldRunID, runID),
		zap.Int("settlements", len(c.Settlements)),
		zap.Int("bills", len(c.Bills)),
		zap.Int("notices", len(c.Notices)),
		zap.Int("sessions", e.sessions.Len()))
	return c
}

// LastClosed returns when the week was last closed, zero if never.
func (e *Engine) LastClosed() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastClosed
}

// State copies every store for persistence.
func (e *Engine) State() storage.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	names, codes := e.dir.Snapshot()
	fees, provided := e.revenue.Snapshot()
	return storage.State{
		Services:       e.services.List(),
		Sessions:       e.sessions.List(),
		Registrations:  e.registrations.All(),
		Validations:    e.validations.All(),
		Bills:          e.ledger.Bills(),
		Notices:        e.ledger.Notices(),
		DirectoryNames: names,
		DirectoryCodes: codes,
		SessionFees:    fees,
		Provided:       provided,
		Members:        e.people.List(models.KindMember),
		Professionals:  e.people.List(models.KindProfessional),
		Counters:       e.alloc.Counters(),
		LastClosing:    e.lastClosed,
	}
}

// Restore replaces every store with persisted content.
func (e *Engine) Restore(s storage.State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.alloc.Restore(s.Counters)
	e.dir.Restore(s.DirectoryNames, s.DirectoryCodes)
	e.services.Restore(s.Services)
	e.sessions.Restore(s.Sessions)
	e.registrations.Restore(s.Registrations)
	e.validations.Restore(s.Validations)
	e.ledger.Restore(s.Bills, s.Notices)
	e.revenue.Restore(s.SessionFees, s.Provided)
	e.people.Restore(s.Members, s.Professionals)
	e.lastClosed = s.LastClosing
	e.observeSessions()

	e.log.Info("state restored",
		zap.Int("services", len(s.Services)),
		zap.Int("sessions", len(s.Sessions)),
		zap.Int("registrations", len(s.Registrations)))
}
