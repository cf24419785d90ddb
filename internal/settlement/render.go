package settlement

import (
	"fmt"
	"sort"
	"strings"

	"gym-ledger/internal/models"
)

const (
	dateLayout  = "02-01-2006"
	stampLayout = "02-01-2006 15:04:05"
	ruler       = "--------------------------------------------------------"
)

// RenderBill lists the sessions a member attended during the week.
func RenderBill(b models.Bill) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Member: %s\nMember number: %s\nIssued: %s\n", b.MemberName, b.MemberNo, b.CreatedAt.Format(dateLayout))
	sb.WriteString(ruler + "\n")
	for _, l := range b.Lines {
		fmt.Fprintf(&sb, "\n\tDate: %s\n\tProfessional name: %s\n\tService name: %s\n",
			l.SessionDate.Format(dateLayout), l.ProviderName, l.ServiceName)
	}
	sb.WriteString(ruler)
	return sb.String()
}

// RenderNotice lists, per session and date, the members a professional
// taught and what they are owed for it.
func RenderNotice(n models.PaymentNotice) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Professional: %s\nProfessional number: %s\nIssued: %s\n", n.ProviderName, n.ProviderNo, n.CreatedAt.Format(dateLayout))
	sb.WriteString(ruler + "\n")
	for _, e := range n.Entries {
		fmt.Fprintf(&sb, "\n\tSession date: %s\n\tSession number: %s", e.SessionDate.Format(dateLayout), e.SessionCode)
		fmt.Fprintf(&sb, "\n\tInformation retrieval date: %s", e.RetrievedAt.Format(stampLayout))
		members := make([]string, 0, len(e.Members))
		for no := range e.Members {
			members = append(members, no)
		}
		sort.Strings(members)
		for _, no := range members {
			fmt.Fprintf(&sb, "\n\tMember name: %s\n\tMember number: %s", e.Members[no], no)
		}
		fmt.Fprintf(&sb, "\n\tBalance: $%s\n", models.ToMajor(e.Balance).StringFixed(2))
	}
	fmt.Fprintf(&sb, "\nTotal: $%s\n", models.ToMajor(n.Total()).StringFixed(2))
	sb.WriteString(ruler)
	return sb.String()
}
