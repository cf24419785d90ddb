package storage

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gym-ledger/internal/errs"
)

// Blob names of the persisted stores.
const (
	BlobServices            = "services"
	BlobSessions            = "sessions"
	BlobRegistrations       = "registrations"
	BlobValidations         = "validations"
	BlobBills               = "bills"
	BlobPaymentNotices      = "payment_notices"
	BlobDirectoryNameCode   = "directory_name_code"
	BlobDirectoryCodeName   = "directory_code_name"
	BlobSessionsFee         = "sessions_fee"
	BlobProvidersSessions   = "providers_sessions"
	BlobMembers             = "members"
	BlobProfessionals       = "professionals"
	BlobCounterMember       = "counter_member"
	BlobCounterProfessional = "counter_professional"
	BlobCounterService      = "counter_service"
	BlobCounterDirectory    = "counter_directory"
	BlobLastClosing         = "last_closing"
)

type blob struct {
	name   string
	target any
}

func blobs(s *State) []blob {
	return []blob{
		{BlobServices, &s.Services},
		{BlobSessions, &s.Sessions},
		{BlobRegistrations, &s.Registrations},
		{BlobValidations, &s.Validations},
		{BlobBills, &s.Bills},
		{BlobPaymentNotices, &s.Notices},
		{BlobDirectoryNameCode, &s.DirectoryNames},
		{BlobDirectoryCodeName, &s.DirectoryCodes},
		{BlobSessionsFee, &s.SessionFees},
		{BlobProvidersSessions, &s.Provided},
		{BlobMembers, &s.Members},
		{BlobProfessionals, &s.Professionals},
		{BlobCounterMember, &s.Counters.Member},
		{BlobCounterProfessional, &s.Counters.Professional},
		{BlobCounterService, &s.Counters.Service},
		{BlobCounterDirectory, &s.Counters.Directory},
		{BlobLastClosing, &s.LastClosing},
	}
}

// LoadState reads every blob. A missing blob leaves its part of the state
// empty. A blob that cannot be read or decoded is also left empty, and the
// failure is reported in the returned error together with the others; the
// state is usable either way.
func LoadState(ctx context.Context, store Store) (State, error) {
	var s State
	var problems []error
	for _, b := range blobs(&s) {
		data, err := store.Get(ctx, b.name)
		if errors.Is(err, ErrNotExist) {
			continue
		}
		if err != nil {
			problems = append(problems, fmt.Errorf("load %s: %w", b.name, err))
			continue
		}
		if err := Unmarshal(data, b.target); err != nil {
			reflect.ValueOf(b.target).Elem().SetZero()
			problems = append(problems, fmt.Errorf("decode %s: %w", b.name, err))
		}
	}
	if len(problems) > 0 {
		return s, fmt.Errorf("%w: %w", errs.ErrPersistence, errors.Join(problems...))
	}
	return s, nil
}

// SaveState writes every blob, overwriting previous content. It keeps going
// after a failure and reports all of them.
func SaveState(ctx context.Context, store Store, s State) error {
	var problems []error
	for _, b := range blobs(&s) {
		data, err := Marshal(reflect.ValueOf(b.target).Elem().Interface())
		if err != nil {
			problems = append(problems, fmt.Errorf("encode %s: %w", b.name, err))
			continue
		}
		if err := store.Put(ctx, b.name, data); err != nil {
			problems = append(problems, fmt.Errorf("store %s: %w", b.name, err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", errs.ErrPersistence, errors.Join(problems...))
	}
	return nil
}
