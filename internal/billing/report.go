package billing

import (
	"fmt"
	"strings"

	"gym-ledger/internal/models"

	"github.com/shopspring/decimal"
)

type ReportLine struct {
	ProviderName string
	ProviderNo   string
	Sessions     int
	Revenue      decimal.Decimal
}

// Report is the weekly aggregate of provided sessions and income.
type Report struct {
	Lines         []ReportLine
	Professionals int
	Sessions      int
	TotalFees     decimal.Decimal
}

// WeeklyReport aggregates the revenue ledger. Sessions counts distinct
// session codes and TotalFees adds the fee of each of them once, however
// many registrations it had.
func (r *Revenue) WeeklyReport(nameOf func(providerNo string) string) Report {
	var rep Report
	distinct := make(map[string]bool)
	for _, p := range r.Providers() {
		codes := r.provided[p]
		for _, c := range codes {
			distinct[c] = true
		}
		rep.Lines = append(rep.Lines, ReportLine{
			ProviderName: nameOf(p),
			ProviderNo:   p,
			Sessions:     len(codes),
			Revenue:      r.WeeklyRevenue(p),
		})
	}

	var total int64
	for c := range distinct {
		total += r.sessionFees[c]
	}
	rep.Professionals = len(rep.Lines)
	rep.Sessions = len(distinct)
	rep.TotalFees = models.ToMajor(total)
	return rep
}

func (rep Report) String() string {
	var sb strings.Builder
	sb.WriteString("Weekly sessions report\n\n")
	sb.WriteString("\tProfessional\t\t|\tProvided sessions\t|\tIncome\n")
	for _, l := range rep.Lines {
		fmt.Fprintf(&sb, "\t%s-%s\t|\t%d\t|\t\t$%s\n", l.ProviderName, l.ProviderNo, l.Sessions, l.Revenue.StringFixed(2))
	}
	fmt.Fprintf(&sb, "\nTotal Professionals: %d", rep.Professionals)
	fmt.Fprintf(&sb, "\nTotal Sessions: %d", rep.Sessions)
	fmt.Fprintf(&sb, "\nTotal Fees: $%s", rep.TotalFees.StringFixed(2))
	return sb.String()
}
