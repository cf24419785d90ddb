// Package billing accumulates the week's money trail: itemized member bills,
// professional payment notices and the revenue ledger used for settlement.
package billing

import (
	"sort"
	"time"

	"gym-ledger/internal/models"
)

// Ledger holds one bill per member and one payment notice per professional.
// It is not safe for concurrent use.
type Ledger struct {
	bills   map[string]*models.Bill
	notices map[string]*models.PaymentNotice
}

func NewLedger() *Ledger {
	return &Ledger{
		bills:   make(map[string]*models.Bill),
		notices: make(map[string]*models.PaymentNotice),
	}
}

// AppendBill adds a line to the member's bill, opening the bill on first use.
func (l *Ledger) AppendBill(memberNo, memberName string, line models.BillLine, now time.Time) {
	b, ok := l.bills[memberNo]
	if !ok {
		b = &models.Bill{MemberNo: memberNo, MemberName: memberName, CreatedAt: now}
		l.bills[memberNo] = b
	}
	b.Lines = append(b.Lines, line)
}

// AppendNotice records one attendance on the professional's payment notice.
// Attendances of the same session on the same date share one entry: the
// member joins its member set and the fee adds to its balance.
func (l *Ledger) AppendNotice(providerNo, providerName, sessionCode string, sessionDate time.Time, memberNo, memberName string, fee int64, now time.Time) {
	n, ok := l.notices[providerNo]
	if !ok {
		n = &models.PaymentNotice{ProviderNo: providerNo, ProviderName: providerName, CreatedAt: now}
		l.notices[providerNo] = n
	}
	for _, e := range n.Entries {
		if e.SessionCode == sessionCode && e.SessionDate.Equal(sessionDate) {
			e.Members[memberNo] = memberName
			e.Balance += fee
			return
		}
	}
	n.Entries = append(n.Entries, &models.NoticeEntry{
		SessionCode: sessionCode,
		SessionDate: sessionDate,
		RetrievedAt: now,
		Members:     map[string]string{memberNo: memberName},
		Balance:     fee,
	})
}

func (l *Ledger) Bill(memberNo string) (models.Bill, bool) {
	b, ok := l.bills[memberNo]
	if !ok {
		return models.Bill{}, false
	}
	return copyBill(b), true
}

func (l *Ledger) Notice(providerNo string) (models.PaymentNotice, bool) {
	n, ok := l.notices[providerNo]
	if !ok {
		return models.PaymentNotice{}, false
	}
	return copyNotice(n), true
}

// Bills returns copies of every bill ordered by member number.
func (l *Ledger) Bills() []models.Bill {
	out := make([]models.Bill, 0, len(l.bills))
	for _, b := range l.bills {
		out = append(out, copyBill(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberNo < out[j].MemberNo })
	return out
}

// Notices returns copies of every payment notice ordered by professional.
func (l *Ledger) Notices() []models.PaymentNotice {
	out := make([]models.PaymentNotice, 0, len(l.notices))
	for _, n := range l.notices {
		out = append(out, copyNotice(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProviderNo < out[j].ProviderNo })
	return out
}

func (l *Ledger) Len() int {
	return len(l.bills) + len(l.notices)
}

func (l *Ledger) Clear() {
	l.bills = make(map[string]*models.Bill)
	l.notices = make(map[string]*models.PaymentNotice)
}

func (l *Ledger) Restore(bills []models.Bill, notices []models.PaymentNotice) {
	l.Clear()
	for _, b := range bills {
		c := copyBill(&b)
		l.bills[b.MemberNo] = &c
	}
	for _, n := range notices {
		c := copyNotice(&n)
		l.notices[n.ProviderNo] = &c
	}
}

func copyBill(b *models.Bill) models.Bill {
	c := *b
	c.Lines = append([]models.BillLine(nil), b.Lines...)
	return c
}

func copyNotice(n *models.PaymentNotice) models.PaymentNotice {
	c := *n
	c.Entries = make([]*models.NoticeEntry, 0, len(n.Entries))
	for _, e := range n.Entries {
		ec := *e
		ec.Members = make(map[string]string, len(e.Members))
		for k, v := range e.Members {
			ec.Members[k] = v
		}
		c.Entries = append(c.Entries, &ec)
	}
	return c
}
