package billing

import (
	"sort"

	"gym-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Revenue tracks, for the current week, the fee charged for each session at
// registration time and the sessions each professional provided. A
// professional's list holds one code per registration.
type Revenue struct {
	sessionFees map[string]int64
	provided    map[string][]string
}

func NewRevenue() *Revenue {
	return &Revenue{
		sessionFees: make(map[string]int64),
		provided:    make(map[string][]string),
	}
}

// AddSessionFee records the fee of a session, replacing any earlier value.
func (r *Revenue) AddSessionFee(sessionCode string, fee int64) {
	r.sessionFees[sessionCode] = fee
}

func (r *Revenue) AddProvided(providerNo, sessionCode string) {
	r.provided[providerNo] = append(r.provided[providerNo], sessionCode)
}

// Fee returns the fee recorded for a session this week.
func (r *Revenue) Fee(sessionCode string) (int64, bool) {
	fee, ok := r.sessionFees[sessionCode]
	return fee, ok
}

// Withdraw removes one provided entry of the session, for a registration
// that was cancelled.
func (r *Revenue) Withdraw(providerNo, sessionCode string) {
	codes := r.provided[providerNo]
	for i, c := range codes {
		if c == sessionCode {
			codes = append(codes[:i:i], codes[i+1:]...)
			break
		}
	}
	if len(codes) == 0 {
		delete(r.provided, providerNo)
	} else {
		r.provided[providerNo] = codes
	}
	r.dropOrphanFees()
}

// RemoveProvider forgets everything a departing professional provided.
func (r *Revenue) RemoveProvider(providerNo string) {
	delete(r.provided, providerNo)
	r.dropOrphanFees()
}

func (r *Revenue) dropOrphanFees() {
	used := make(map[string]bool)
	for _, codes := range r.provided {
		for _, c := range codes {
			used[c] = true
		}
	}
	var orphans []string
	for code := range r.sessionFees {
		if !used[code] {
			orphans = append(orphans, code)
		}
	}
	for _, code := range orphans {
		delete(r.sessionFees, code)
	}
}

// RevenueCents sums the fees of every session the professional provided.
func (r *Revenue) RevenueCents(providerNo string) int64 {
	var total int64
	for _, code := range r.provided[providerNo] {
		total += r.sessionFees[code]
	}
	return total
}

// WeeklyRevenue is RevenueCents in major currency units.
func (r *Revenue) WeeklyRevenue(providerNo string) decimal.Decimal {
	return models.ToMajor(r.RevenueCents(providerNo))
}

// Providers lists professionals with at least one provided session.
func (r *Revenue) Providers() []string {
	out := make([]string, 0, len(r.provided))
	for p, codes := range r.provided {
		if len(codes) > 0 {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Settlements returns one transfer record per professional who provided a
// session this week. nameOf resolves professional names.
func (r *Revenue) Settlements(nameOf func(providerNo string) string) []models.Settlement {
	var out []models.Settlement
	for _, p := range r.Providers() {
		out = append(out, models.Settlement{
			ProviderName: nameOf(p),
			ProviderNo:   p,
			RevenueCents: r.RevenueCents(p),
		})
	}
	return out
}

func (r *Revenue) Len() int {
	return len(r.provided)
}

func (r *Revenue) Clear() {
	r.sessionFees = make(map[string]int64)
	r.provided = make(map[string][]string)
}

// Snapshot copies the fee map and the provided lists.
func (r *Revenue) Snapshot() (map[string]int64, map[string][]string) {
	fees := make(map[string]int64, len(r.sessionFees))
	for k, v := range r.sessionFees {
		fees[k] = v
	}
	provided := make(map[string][]string, len(r.provided))
	for k, v := range r.provided {
		provided[k] = append([]string(nil), v...)
	}
	return fees, provided
}

func (r *Revenue) Restore(fees map[string]int64, provided map[string][]string) {
	r.Clear()
	for k, v := range fees {
		r.sessionFees[k] = v
	}
	for k, v := range provided {
		r.provided[k] = append([]string(nil), v...)
	}
}
