// Package registration records the reservations members hold for this
// week's sessions. The ledger does not check capacity or account status:
// the engine does both before calling Create.
package registration

import (
	"time"

	"gym-ledger/internal/errs"
	"gym-ledger/internal/models"
)

type Ledger struct {
	registrations []models.Registration
}

func New() *Ledger {
	return &Ledger{}
}

// Check validates the fields of a registration without recording it.
func Check(sessionCode, memberNo, providerNo, comment string) error {
	switch {
	case !models.IsCode(sessionCode, models.SessionCodeLength):
		return errs.Format("sessionNo")
	case !models.IsCode(memberNo, models.PersonNoLength):
		return errs.Format("memberNo")
	case !models.IsCode(providerNo, models.PersonNoLength):
		return errs.Format("profNo")
	case len(comment) > models.MaxCommentLength:
		return errs.Format("comment")
	}
	return nil
}

// Create appends a registration for the session held on sessionDate.
func (l *Ledger) Create(sessionCode, memberNo, providerNo, comment string, now, sessionDate time.Time) (models.Registration, error) {
	if err := Check(sessionCode, memberNo, providerNo, comment); err != nil {
		return models.Registration{}, err
	}
	r := models.Registration{
		SessionCode: sessionCode,
		MemberNo:    memberNo,
		ProviderNo:  providerNo,
		Comment:     comment,
		CreatedAt:   now,
		SessionDate: sessionDate,
	}
	l.registrations = append(l.registrations, r)
	return r, nil
}

// Find returns the first registration of the member for the session.
func (l *Ledger) Find(memberNo, sessionCode string) (models.Registration, bool) {
	for _, r := range l.registrations {
		if r.MemberNo == memberNo && r.SessionCode == sessionCode {
			return r, true
		}
	}
	return models.Registration{}, false
}

func (l *Ledger) ListForSession(sessionCode string) []models.Registration {
	var out []models.Registration
	for _, r := range l.registrations {
		if r.SessionCode == sessionCode {
			out = append(out, r)
		}
	}
	return out
}

// RemoveByProvider drops the registrations to a professional's sessions and
// returns them.
func (l *Ledger) RemoveByProvider(providerNo string) []models.Registration {
	return l.removeWhere(func(r models.Registration) bool { return r.ProviderNo == providerNo })
}

// RemoveByMember drops a member's registrations and returns them.
func (l *Ledger) RemoveByMember(memberNo string) []models.Registration {
	return l.removeWhere(func(r models.Registration) bool { return r.MemberNo == memberNo })
}

// RemoveBySession drops the registrations to a session that is no longer
// offered and returns them.
func (l *Ledger) RemoveBySession(sessionCode string) []models.Registration {
	return l.removeWhere(func(r models.Registration) bool { return r.SessionCode == sessionCode })
}

func (l *Ledger) removeWhere(match func(models.Registration) bool) []models.Registration {
	var removed []models.Registration
	kept := l.registrations[:0]
	for _, r := range l.registrations {
		if match(r) {
			removed = append(removed, r)
			continue
		}
		kept = append(kept, r)
	}
	l.registrations = kept
	return removed
}

func (l *Ledger) Len() int {
	return len(l.registrations)
}

func (l *Ledger) Clear() {
	l.registrations = nil
}

// All returns a copy of the week's registrations in creation order.
func (l *Ledger) All() []models.Registration {
	return append([]models.Registration(nil), l.registrations...)
}

func (l *Ledger) Restore(rs []models.Registration) {
	l.registrations = append([]models.Registration(nil), rs...)
}
