// Package people is the registry of members and professionals.
package people

import (
	"sort"
	"strings"
	"time"

	"gym-ledger/internal/errs"
	"gym-ledger/internal/models"
)

const maxNameLength = 25

type Registry struct {
	members       map[string]models.Person
	professionals map[string]models.Person
}

func New() *Registry {
	return &Registry{
		members:       make(map[string]models.Person),
		professionals: make(map[string]models.Person),
	}
}

func CheckName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return errs.Format("name")
	}
	return nil
}

// Add stores a new person with a code drawn from next.
func (r *Registry) Add(kind models.PersonKind, name string, next func() string, now time.Time) (models.Person, error) {
	if err := CheckName(name); err != nil {
		return models.Person{}, err
	}
	p := models.Person{
		Name:      strings.TrimSpace(name),
		Kind:      kind,
		Status:    models.StatusValid,
		CreatedAt: now,
	}
	p.Code = next()
	r.set(kind)[p.Code] = p
	return p, nil
}

func (r *Registry) set(kind models.PersonKind) map[string]models.Person {
	if kind == models.KindProfessional {
		return r.professionals
	}
	return r.members
}

func (r *Registry) Get(kind models.PersonKind, code string) (models.Person, bool) {
	p, ok := r.set(kind)[code]
	return p, ok
}

// Status returns INVALID_NUMBER for unknown codes.
func (r *Registry) Status(kind models.PersonKind, code string) models.Status {
	p, ok := r.set(kind)[code]
	if !ok {
		return models.StatusInvalidNumber
	}
	return p.Status
}

// Name returns the person's name or the code itself when unknown.
func (r *Registry) Name(kind models.PersonKind, code string) string {
	if p, ok := r.set(kind)[code]; ok {
		return p.Name
	}
	return code
}

func (r *Registry) SetStatus(kind models.PersonKind, code string, status models.Status) error {
	p, ok := r.set(kind)[code]
	if !ok {
		return errs.NotFound(string(kind), code)
	}
	p.Status = status
	r.set(kind)[code] = p
	return nil
}

func (r *Registry) Delete(kind models.PersonKind, code string) (models.Person, error) {
	p, ok := r.set(kind)[code]
	if !ok {
		return models.Person{}, errs.NotFound(string(kind), code)
	}
	delete(r.set(kind), code)
	return p, nil
}

// List returns every person of the kind ordered by code.
func (r *Registry) List(kind models.PersonKind) []models.Person {
	set := r.set(kind)
	out := make([]models.Person, 0, len(set))
	for _, p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (r *Registry) Restore(members, professionals []models.Person) {
	r.members = make(map[string]models.Person, len(members))
	for _, p := range members {
		r.members[p.Code] = p
	}
	r.professionals = make(map[string]models.Person, len(professionals))
	for _, p := range professionals {
		r.professionals[p.Code] = p
	}
}
