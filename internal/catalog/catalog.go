// Package catalog holds the recurring service definitions on file.
package catalog

import (
	"regexp"
	"sort"
	"time"

	"gym-ledger/internal/errs"
	"gym-ledger/internal/models"
)

var serviceName = regexp.MustCompile(`^[A-Z][a-z]*$`)

// Catalog is keyed by the seven-digit service code. It is not safe for
// concurrent use.
type Catalog struct {
	services map[string]models.Service
}

func New() *Catalog {
	return &Catalog{services: make(map[string]models.Service)}
}

// Validate checks every field of s except its code and reports the first
// offending attribute.
func Validate(s models.Service) error {
	if len(s.Name) == 0 || len(s.Name) > models.MaxServiceName || !serviceName.MatchString(s.Name) {
		return errs.Format("name")
	}
	if s.StartDate.IsZero() {
		return errs.Format("startDate")
	}
	if s.EndDate.IsZero() || dateOf(s.EndDate).Before(dateOf(s.StartDate)) {
		return errs.Format("endDate")
	}
	if len(s.Occurrences) == 0 {
		return errs.Format("occurrences")
	}
	seen := make(map[models.Day]bool, len(s.Occurrences))
	for _, d := range s.Occurrences {
		if !d.Valid() || seen[d] {
			return errs.Format("occurrences")
		}
		seen[d] = true
	}
	if s.MaxCapacity < 0 || s.MaxCapacity > models.MaxCapacityLimit {
		return errs.Format("maxCapacity")
	}
	if len(s.Comment) > models.MaxCommentLength {
		return errs.Format("comment")
	}
	if s.Fee < 0 || s.Fee > models.MaxFee {
		return errs.Format("fee")
	}
	if s.Time.Hour < 0 || s.Time.Hour > 23 || s.Time.Minute < 0 || s.Time.Minute > 59 {
		return errs.Format("time")
	}
	if !models.IsCode(s.ProviderNo, models.PersonNoLength) {
		return errs.Format("providerNo")
	}
	return nil
}

// Create validates s, then stores it under a code drawn from next. No code
// is consumed when validation fails.
func (c *Catalog) Create(s models.Service, next func() string) (models.Service, error) {
	if err := Validate(s); err != nil {
		return models.Service{}, err
	}
	s.Code = next()
	s.StartDate = dateOf(s.StartDate)
	s.EndDate = dateOf(s.EndDate)
	s.Occurrences = append([]models.Day(nil), s.Occurrences...)
	c.services[s.Code] = s
	return s, nil
}

// Modify applies fn to a copy of the service and stores the copy if it is
// still valid. The code and owner cannot change. It returns the previous and
// the updated definition.
func (c *Catalog) Modify(code string, fn func(*models.Service)) (models.Service, models.Service, error) {
	old, ok := c.services[code]
	if !ok {
		return models.Service{}, models.Service{}, errs.NotFound("service", code)
	}

	updated := old
	updated.Occurrences = append([]models.Day(nil), old.Occurrences...)
	fn(&updated)
	updated.Code = old.Code
	updated.ProviderNo = old.ProviderNo
	updated.CreatedAt = old.CreatedAt

	if err := Validate(updated); err != nil {
		return models.Service{}, models.Service{}, err
	}
	updated.StartDate = dateOf(updated.StartDate)
	updated.EndDate = dateOf(updated.EndDate)
	c.services[code] = updated
	return old, updated, nil
}

func (c *Catalog) Delete(code string) (models.Service, error) {
	s, ok := c.services[code]
	if !ok {
		return models.Service{}, errs.NotFound("service", code)
	}
	delete(c.services, code)
	return s, nil
}

func (c *Catalog) Get(code string) (models.Service, bool) {
	s, ok := c.services[code]
	return s, ok
}

// List returns every service ordered by code.
func (c *Catalog) List() []models.Service {
	out := make([]models.Service, 0, len(c.services))
	for _, s := range c.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (c *Catalog) ByProvider(providerNo string) []models.Service {
	var out []models.Service
	for _, s := range c.List() {
		if s.ProviderNo == providerNo {
			out = append(out, s)
		}
	}
	return out
}

// DeleteByProvider removes and returns every service of the professional.
func (c *Catalog) DeleteByProvider(providerNo string) []models.Service {
	removed := c.ByProvider(providerNo)
	for _, s := range removed {
		delete(c.services, s.Code)
	}
	return removed
}

func (c *Catalog) Len() int {
	return len(c.services)
}

// Restore replaces the content with persisted services.
func (c *Catalog) Restore(services []models.Service) {
	c.services = make(map[string]models.Service, len(services))
	for _, s := range services {
		c.services[s.Code] = s
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
