// Package sessions materializes services into capacity-bearing weekly
// sessions.
//
// A session code is DDD OO PP: the directory code of the service name, the
// two-digit code of the occurrence day and the last two digits of the
// professional number. The derivation is deliberately lossy. Two services
// with the same name on the same day, taught by professionals whose numbers
// end with the same two digits, produce the same session code, and the later
// materialization wins.
package sessions

import (
	"sort"
	"time"

	"gym-ledger/internal/errs"
	"gym-ledger/internal/models"
)

// DeriveCode builds the session code of a service occurrence.
func DeriveCode(dirCode string, day models.Day, providerNo string) string {
	suffix := providerNo
	if len(suffix) > 2 {
		suffix = suffix[len(suffix)-2:]
	}
	return dirCode + day.Code() + suffix
}

// InInterval reports whether the next (or same) calendar occurrence of day,
// counted from today, falls inside the service validity window.
func InInterval(s models.Service, day models.Day, today time.Time) bool {
	return Within(NextOrSame(today, day.Weekday()), s.StartDate, s.EndDate)
}

// Materialize builds the full-capacity session of one service occurrence.
func Materialize(s models.Service, dirCode string, day models.Day) models.Session {
	return models.Session{
		Code:        DeriveCode(dirCode, day, s.ProviderNo),
		ServiceCode: s.Code,
		ServiceName: s.Name,
		Occurrence:  day,
		Time:        s.Time,
		MaxCapacity: s.MaxCapacity,
		Remaining:   s.MaxCapacity,
		Fee:         s.Fee,
		ProviderNo:  s.ProviderNo,
	}
}

// Catalog is the set of sessions offered this week, keyed by session code.
// It is not safe for concurrent use.
type Catalog struct {
	sessions map[string]models.Session
}

func New() *Catalog {
	return &Catalog{sessions: make(map[string]models.Session)}
}

// Update applies one service to the catalog and returns the codes of the
// sessions it created or replaced. An occurrence outside the validity window
// leaves the catalog untouched, and so does an occurrence whose session is
// already on file with identical data: its consumed capacity is kept.
func (c *Catalog) Update(s models.Service, dirCode string, today time.Time) []string {
	var changed []string
	for _, day := range s.Occurrences {
		if !InInterval(s, day, today) {
			continue
		}
		next := Materialize(s, dirCode, day)
		if cur, ok := c.sessions[next.Code]; ok && cur.SameOffering(next) {
			continue
		}
		c.sessions[next.Code] = next
		changed = append(changed, next.Code)
	}
	return changed
}

// Refresh empties the catalog and materializes every service again.
func (c *Catalog) Refresh(services []models.Service, codeFor func(name string) string, today time.Time) {
	c.sessions = make(map[string]models.Session)
	for _, s := range services {
		c.Update(s, codeFor(s.Name), today)
	}
}

func (c *Catalog) Get(code string) (models.Session, bool) {
	s, ok := c.sessions[code]
	return s, ok
}

// Today returns the sessions occurring on the weekday of today.
func (c *Catalog) Today(today time.Time) []models.Session {
	day := models.DayOf(today.Weekday())
	var out []models.Session
	for _, s := range c.List() {
		if s.Occurrence == day {
			out = append(out, s)
		}
	}
	return out
}

// List returns every session ordered by code.
func (c *Catalog) List() []models.Session {
	out := make([]models.Session, 0, len(c.sessions))
	for _, s := range c.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (c *Catalog) Len() int {
	return len(c.sessions)
}

// Reserve takes one seat of the session.
func (c *Catalog) Reserve(code string) error {
	s, ok := c.sessions[code]
	if !ok {
		return errs.NotFound("session", code)
	}
	if s.Remaining <= 0 {
		return &errs.CapacityExceededError{SessionCode: code}
	}
	s.Remaining--
	c.sessions[code] = s
	return nil
}

// Release gives one seat back, never beyond the maximum. Unknown codes are
// ignored: the session may have been re-derived since the seat was taken.
func (c *Catalog) Release(code string) {
	s, ok := c.sessions[code]
	if !ok || s.Remaining >= s.MaxCapacity {
		return
	}
	s.Remaining++
	c.sessions[code] = s
}

// ForService lists the codes of the sessions belonging to a service: those
// materialized from any of its definitions, including one it was renamed
// from, and those matching its current name and professional.
func (c *Catalog) ForService(serviceCode, name, providerNo string) []string {
	var codes []string
	for code, s := range c.sessions {
		if ofService(s, serviceCode, name, providerNo) {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// DeleteForService removes the sessions of a deleted service.
func (c *Catalog) DeleteForService(serviceCode, name, providerNo string) []string {
	return c.deleteWhere(func(s models.Session) bool {
		return ofService(s, serviceCode, name, providerNo)
	})
}

func ofService(s models.Session, serviceCode, name, providerNo string) bool {
	if serviceCode != "" && s.ServiceCode == serviceCode {
		return true
	}
	return s.ServiceName == name && s.ProviderNo == providerNo
}

// DeleteByProvider removes every session of a departing professional.
func (c *Catalog) DeleteByProvider(providerNo string) []string {
	return c.deleteWhere(func(s models.Session) bool {
		return s.ProviderNo == providerNo
	})
}

func (c *Catalog) deleteWhere(match func(models.Session) bool) []string {
	var codes []string
	for code, s := range c.sessions {
		if match(s) {
			codes = append(codes, code)
		}
	}
	for _, code := range codes {
		delete(c.sessions, code)
	}
	sort.Strings(codes)
	return codes
}

// Restore replaces the content with persisted sessions.
func (c *Catalog) Restore(sessions []models.Session) {
	c.sessions = make(map[string]models.Session, len(sessions))
	for _, s := range sessions {
		c.sessions[s.Code] = s
	}
}
