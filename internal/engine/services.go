package engine

import (
	"gym-ledger/internal/catalog"
	"gym-ledger/internal/errs"
	"gym-ledger/internal/ident"
	"gym-ledger/internal/models"
	"gym-ledger/internal/sessions"
	"gym-ledger/pkg/logger"

	"go.uber.org/zap"
)

// CreateService files a new service for a valid professional and
// materializes its sessions.
func (e *Engine) CreateService(s models.Service) (models.Service, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := catalog.Validate(s); err != nil {
		return models.Service{}, err
	}
	if err := e.requireValid(models.KindProfessional, s.ProviderNo); err != nil {
		return models.Service{}, err
	}

	now := e.now()
	s.CreatedAt = now
	created, err := e.services.Create(s, e.nextFunc(ident.Service))
	if err != nil {
		return models.Service{}, err
	}
	changed := e.sessions.Update(created, e.dir.CodeFor(created.Name), now)
	e.observeSessions()

	e.log.Info("service created",
		zap.String(logger.FieldServiceNo, created.Code),
		zap.String(logger.FieldProviderNo, created.ProviderNo),
		zap.Strings("sessions", changed))
	return created, nil
}

// ModifyService applies fn to the service and re-materializes it. Sessions
// derived from the previous definition stay until the next weekly refresh.
func (e *Engine) ModifyService(code string, fn func(*models.Service)) (models.Service, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, updated, err := e.services.Modify(code, fn)
	if err != nil {
		return models.Service{}, err
	}
	changed := e.sessions.Update(updated, e.dir.CodeFor(updated.Name), e.now())
	e.observeSessions()

	e.log.Info("service modified",
		zap.String(logger.FieldServiceNo, code),
		zap.Strings("sessions", changed))
	return updated, nil
}

// DeleteService removes a service and its sessions, including those left
// behind by an earlier definition of it. It is refused while any of those
// sessions has a validation this week. Registrations to the removed sessions
// are dropped.
func (e *Engine) DeleteService(code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.services.Get(code)
	if !ok {
		return errs.NotFound("service", code)
	}
	owned := append(e.derivedCodes(s), e.sessions.ForService(s.Code, s.Name, s.ProviderNo)...)
	for _, sessionCode := range owned {
		if e.validations.ExistsForSession(sessionCode) {
			return &errs.ReferentialBlockError{ServiceCode: code}
		}
	}

	if _, err := e.services.Delete(code); err != nil {
		return err
	}
	removed := e.sessions.DeleteForService(s.Code, s.Name, s.ProviderNo)
	for _, sessionCode := range removed {
		for _, r := range e.registrations.RemoveBySession(sessionCode) {
			e.revenue.Withdraw(r.ProviderNo, r.SessionCode)
		}
	}
	e.observeSessions()

	e.log.Info("service deleted",
		zap.String(logger.FieldServiceNo, code),
		zap.Strings("sessions", removed))
	return nil
}

// derivedCodes lists the session codes a service maps to, without
// allocating a directory code for an unknown name.
func (e *Engine) derivedCodes(s models.Service) []string {
	dirCode, ok := e.dir.Lookup(s.Name)
	if !ok {
		return nil
	}
	codes := make([]string, 0, len(s.Occurrences))
	for _, d := range s.Occurrences {
		codes = append(codes, sessions.DeriveCode(dirCode, d, s.ProviderNo))
	}
	return codes
}

func (e *Engine) Service(code string) (models.Service, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.services.Get(code)
}

// AvailableServices lists every service on file.
func (e *Engine) AvailableServices() []models.Service {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.services.List()
}

// SessionsToday lists the sessions held on today's weekday.
func (e *Engine) SessionsToday() []models.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions.Today(e.now())
}

func (e *Engine) Session(code string) (models.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions.Get(code)
}

func (e *Engine) Sessions() []models.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions.List()
}

// RefreshSessions re-derives the session catalog from the services on file.
func (e *Engine) RefreshSessions() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refresh()
}

func (e *Engine) refresh() {
	e.sessions.Refresh(e.services.List(), e.dir.CodeFor, e.now())
	e.observeSessions()
}
