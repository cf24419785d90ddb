package engine

import (
	"gym-ledger/internal/errs"
	"gym-ledger/internal/ident"
	"gym-ledger/internal/models"
	"gym-ledger/pkg/logger"

	"go.uber.org/zap"
)

func (e *Engine) CreateMember(name string) (models.Person, error) {
	return e.addPerson(models.KindMember, ident.Member, name)
}

func (e *Engine) CreateProfessional(name string) (models.Person, error) {
	return e.addPerson(models.KindProfessional, ident.Professional, name)
}

func (e *Engine) addPerson(kind models.PersonKind, c ident.Category, name string) (models.Person, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.people.Add(kind, name, e.nextFunc(c), e.now())
	if err != nil {
		return models.Person{}, err
	}
	e.log.Info("person created", zap.String("kind", string(kind)), zap.String("code", p.Code))
	return p, nil
}

func (e *Engine) Person(kind models.PersonKind, code string) (models.Person, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.people.Get(kind, code)
}

func (e *Engine) People(kind models.PersonKind) []models.Person {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.people.List(kind)
}

// SetStatus suspends or reinstates an account. INVALID_NUMBER is not a
// status one can set.
func (e *Engine) SetStatus(kind models.PersonKind, code string, status models.Status) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if status != models.StatusValid && status != models.StatusSuspended {
		return errs.Format("status")
	}
	if err := e.people.SetStatus(kind, code, status); err != nil {
		return err
	}
	e.log.Info("status changed", zap.String("code", code), zap.String("status", string(status)))
	return nil
}

// DeleteMember removes a valid member together with their registrations.
// Seats and revenue of sessions the member has not attended yet are given
// back.
func (e *Engine) DeleteMember(memberNo string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireValid(models.KindMember, memberNo); err != nil {
		return err
	}
	if _, err := e.people.Delete(models.KindMember, memberNo); err != nil {
		return err
	}
	removed := e.registrations.RemoveByMember(memberNo)
	for _, r := range removed {
		// An attended session stays billed and its seat stays taken.
		if e.validations.Exists(memberNo, r.SessionCode) {
			continue
		}
		e.sessions.Release(r.SessionCode)
		e.revenue.Withdraw(r.ProviderNo, r.SessionCode)
	}

	e.log.Info("member deleted",
		zap.String(logger.FieldMemberNo, memberNo),
		zap.Int("registrations", len(removed)))
	return nil
}

// DeleteProfessional removes a valid professional, their services and
// sessions, the registrations to those sessions and their revenue entries.
func (e *Engine) DeleteProfessional(providerNo string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireValid(models.KindProfessional, providerNo); err != nil {
		return err
	}
	if _, err := e.people.Delete(models.KindProfessional, providerNo); err != nil {
		return err
	}
	registrations := e.registrations.RemoveByProvider(providerNo)
	e.revenue.RemoveProvider(providerNo)
	services := e.services.DeleteByProvider(providerNo)
	sessionCodes := e.sessions.DeleteByProvider(providerNo)
	e.observeSessions()

	e.log.Info("professional deleted",
		zap.String(logger.FieldProviderNo, providerNo),
		zap.Int("registrations", len(registrations)),
		zap.Int("services", len(services)),
		zap.Int("sessions", len(sessionCodes)))
	return nil
}
