// Package settlement renders and writes the artifacts of a closed week:
// transfer records for professionals, the weekly report, member bills and
// payment notices.
package settlement

import (
	"time"

	"gym-ledger/internal/billing"
	"gym-ledger/internal/models"
)

// Closing is the frozen content of one week, taken just before the reset.
type Closing struct {
	RunID       string
	ClosedAt    time.Time
	Settlements []models.Settlement
	Report      billing.Report
	Bills       []models.Bill
	Notices     []models.PaymentNotice
}
