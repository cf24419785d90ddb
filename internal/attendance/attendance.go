// Package attendance keeps the week's validations: proof that a registered
// member showed up to a session.
package attendance

import (
	"time"

	"gym-ledger/internal/errs"
	"gym-ledger/internal/models"
)

type Validator struct {
	validations []models.Validation
}

func New() *Validator {
	return &Validator{}
}

func Check(providerNo, memberNo, sessionCode, comment string) error {
	switch {
	case !models.IsCode(providerNo, models.PersonNoLength):
		return errs.Format("profNo")
	case !models.IsCode(memberNo, models.PersonNoLength):
		return errs.Format("memberNo")
	case !models.IsCode(sessionCode, models.SessionCodeLength):
		return errs.Format("sessionNo")
	case len(comment) > models.MaxCommentLength:
		return errs.Format("comment")
	}
	return nil
}

// Create records a validation stamped with now.
func (v *Validator) Create(providerNo, memberNo, sessionCode, comment string, now, sessionDate time.Time) (models.Validation, error) {
	if err := Check(providerNo, memberNo, sessionCode, comment); err != nil {
		return models.Validation{}, err
	}
	val := models.Validation{
		ProviderNo:  providerNo,
		MemberNo:    memberNo,
		SessionCode: sessionCode,
		Comment:     comment,
		CreatedAt:   now,
		SessionDate: sessionDate,
	}
	v.validations = append(v.validations, val)
	return val, nil
}

// ExistsForSession reports whether anyone validated the session this week.
func (v *Validator) ExistsForSession(sessionCode string) bool {
	for _, val := range v.validations {
		if val.SessionCode == sessionCode {
			return true
		}
	}
	return false
}

// Exists reports whether the member already validated the session.
func (v *Validator) Exists(memberNo, sessionCode string) bool {
	for _, val := range v.validations {
		if val.MemberNo == memberNo && val.SessionCode == sessionCode {
			return true
		}
	}
	return false
}

// ServiceNo returns the directory code heading a session code.
func ServiceNo(sessionCode string) string {
	return models.Validation{SessionCode: sessionCode}.ServiceNo()
}

func (v *Validator) Len() int {
	return len(v.validations)
}

func (v *Validator) Clear() {
	v.validations = nil
}

func (v *Validator) All() []models.Validation {
	return append([]models.Validation(nil), v.validations...)
}

func (v *Validator) Restore(vs []models.Validation) {
	v.validations = append([]models.Validation(nil), vs...)
}
