package engine

import (
	"gym-ledger/internal/attendance"
	"gym-ledger/internal/errs"
	"gym-ledger/internal/metrics"
	"gym-ledger/internal/models"
	"gym-ledger/internal/registration"
	"gym-ledger/internal/sessions"
	"gym-ledger/pkg/logger"

	"go.uber.org/zap"
)

func checkMemberSession(memberNo, sessionCode, comment string) error {
	switch {
	case !models.IsCode(memberNo, models.PersonNoLength):
		return errs.Format("memberNo")
	case !models.IsCode(sessionCode, models.SessionCodeLength):
		return errs.Format("sessionNo")
	case len(comment) > models.MaxCommentLength:
		return errs.Format("comment")
	}
	return nil
}

func (e *Engine) requireValid(kind models.PersonKind, code string) error {
	if status := e.people.Status(kind, code); status != models.StatusValid {
		return &errs.StatusError{ID: code, Status: status.Message()}
	}
	return nil
}

// Register reserves a seat of the session for the member. The member must be
// valid, the session must have a free seat and the member must not already
// hold a registration for it.
func (e *Engine) Register(memberNo, sessionCode, comment string) (models.Registration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := checkMemberSession(memberNo, sessionCode, comment); err != nil {
		return models.Registration{}, err
	}
	if err := e.requireValid(models.KindMember, memberNo); err != nil {
		return models.Registration{}, err
	}
	session, ok := e.sessions.Get(sessionCode)
	if !ok {
		return models.Registration{}, errs.NotFound("session", sessionCode)
	}
	if _, dup := e.registrations.Find(memberNo, sessionCode); dup {
		return models.Registration{}, &errs.DuplicateError{MemberNo: memberNo, SessionCode: sessionCode}
	}
	if session.Remaining <= 0 {
		metrics.CapacityRejections.Inc()
		return models.Registration{}, &errs.CapacityExceededError{SessionCode: sessionCode}
	}

	if err := registration.Check(sessionCode, memberNo, session.ProviderNo, comment); err != nil {
		return models.Registration{}, err
	}

	if err := e.sessions.Reserve(sessionCode); err != nil {
		return models.Registration{}, err
	}
	now := e.now()
	sessionDate := sessions.NextOrSame(now, session.Occurrence.Weekday())
	r, err := e.registrations.Create(sessionCode, memberNo, session.ProviderNo, comment, now, sessionDate)
	if err != nil {
		e.sessions.Release(sessionCode)
		return models.Registration{}, err
	}
	e.revenue.AddSessionFee(sessionCode, session.Fee)
	e.revenue.AddProvided(session.ProviderNo, sessionCode)
	metrics.Registrations.Inc()

	e.log.Info("registration created",
		zap.String(logger.FieldMemberNo, memberNo),
		zap.String(logger.FieldSessionNo, sessionCode),
		zap.Time("session_date", sessionDate))
	return r, nil
}

// Confirm validates the member's attendance to the session. It reports false
// (access denied) when the member holds no registration for it. A member is
// validated at most once per session and week; confirming again grants
// access without recording anything.
func (e *Engine) Confirm(memberNo, sessionCode, comment string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := checkMemberSession(memberNo, sessionCode, comment); err != nil {
		return false, err
	}
	reg, ok := e.registrations.Find(memberNo, sessionCode)
	if !ok {
		metrics.AccessDenied.Inc()
		e.log.Info("access denied",
			zap.String(logger.FieldMemberNo, memberNo),
			zap.String(logger.FieldSessionNo, sessionCode))
		return false, nil
	}
	if e.validations.Exists(memberNo, sessionCode) {
		return true, nil
	}

	now := e.now()
	val, err := e.validations.Create(reg.ProviderNo, memberNo, sessionCode, comment, now, sessions.DateOf(now))
	if err != nil {
		return false, err
	}
	e.appendLedger(val)
	metrics.Validations.Inc()

	e.log.Info("attendance validated",
		zap.String(logger.FieldMemberNo, memberNo),
		zap.String(logger.FieldSessionNo, sessionCode),
		zap.String(logger.FieldProviderNo, reg.ProviderNo))
	return true, nil
}

// appendLedger adds a validation to the member's bill and the professional's
// payment notice. Names are resolved now, not cached.
func (e *Engine) appendLedger(val models.Validation) {
	session, _ := e.sessions.Get(val.SessionCode)

	serviceName, ok := e.dir.NameFor(attendance.ServiceNo(val.SessionCode))
	if !ok {
		serviceName = session.ServiceName
	}
	fee, ok := e.revenue.Fee(val.SessionCode)
	if !ok {
		fee = session.Fee
	}
	providerName := e.providerName(val.ProviderNo)
	memberName := e.memberName(val.MemberNo)
	now := val.CreatedAt

	e.ledger.AppendBill(val.MemberNo, memberName, models.BillLine{
		SessionDate:  val.SessionDate,
		ProviderName: providerName,
		ServiceName:  serviceName,
	}, now)
	e.ledger.AppendNotice(val.ProviderNo, providerName, val.SessionCode, val.SessionDate,
		val.MemberNo, memberName, fee, now)
}

// Roster lists the registrations to a session for a valid professional.
func (e *Engine) Roster(providerNo, sessionCode string) ([]models.Registration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !models.IsCode(providerNo, models.PersonNoLength) {
		return nil, errs.Format("profNo")
	}
	if !models.IsCode(sessionCode, models.SessionCodeLength) {
		return nil, errs.Format("sessionNo")
	}
	if err := e.requireValid(models.KindProfessional, providerNo); err != nil {
		return nil, err
	}
	return e.registrations.ListForSession(sessionCode), nil
}

// Access returns the status shown at the entrance for a member number.
func (e *Engine) Access(memberNo string) models.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.people.Status(models.KindMember, memberNo)
}

func (e *Engine) Bill(memberNo string) (models.Bill, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Bill(memberNo)
}

func (e *Engine) Notice(providerNo string) (models.PaymentNotice, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Notice(providerNo)
}
