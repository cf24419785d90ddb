package storage

import (
	"time"

	"gym-ledger/internal/ident"
	"gym-ledger/internal/models"
)

// State is everything the engine persists between runs.
type State struct {
	Services       []models.Service
	Sessions       []models.Session
	Registrations  []models.Registration
	Validations    []models.Validation
	Bills          []models.Bill
	Notices        []models.PaymentNotice
	DirectoryNames map[string]string
	DirectoryCodes map[string]string
	SessionFees    map[string]int64
	Provided       map[string][]string
	Members        []models.Person
	Professionals  []models.Person
	Counters       ident.Counters
	LastClosing    time.Time
}
