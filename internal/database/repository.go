package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gym-ledger/internal/models"
	"gym-ledger/internal/settlement"
	"gym-ledger/internal/storage"
)

// BlobStore keeps the engine state blobs in the state_blobs table.
type BlobStore struct {
	db *DB
}

func (db *DB) Blobs() *BlobStore {
	return &BlobStore{db: db}
}

func (s *BlobStore) Get(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM state_blobs WHERE name = $1
	`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob %s: %w", name, err)
	}
	return data, nil
}

func (s *BlobStore) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO state_blobs (name, data)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET data = EXCLUDED.data,
		    updated_at = CURRENT_TIMESTAMP
	`, name, data)
	if err != nil {
		return fmt.Errorf("failed to put blob %s: %w", name, err)
	}
	return nil
}

// SettlementStore records closed weeks and their artifacts. Writing the same
// run again replaces what an earlier attempt left behind.
type SettlementStore struct {
	db *DB
}

func (db *DB) Settlements() *SettlementStore {
	return &SettlementStore{db: db}
}

func (s *SettlementStore) Write(ctx context.Context, c settlement.Closing) error {
	artifacts, err := settlement.Artifacts(c)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO settlements (run_id, closed_at, professionals, sessions, total_fees)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (run_id) DO UPDATE
		SET closed_at = EXCLUDED.closed_at,
		    professionals = EXCLUDED.professionals,
		    sessions = EXCLUDED.sessions,
		    total_fees = EXCLUDED.total_fees,
		    written_at = CURRENT_TIMESTAMP
	`, c.RunID, c.ClosedAt, c.Report.Professionals, c.Report.Sessions, c.Report.TotalFees)
	if err != nil {
		return fmt.Errorf("failed to record settlement %s: %w", c.RunID, err)
	}

	for _, st := range c.Settlements {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO settlement_transfers (run_id, provider_no, provider_name, revenue_cents)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (run_id, provider_no) DO UPDATE
			SET provider_name = EXCLUDED.provider_name,
			    revenue_cents = EXCLUDED.revenue_cents
		`, c.RunID, st.ProviderNo, st.ProviderName, st.RevenueCents)
		if err != nil {
			return fmt.Errorf("failed to record transfer for %s: %w", st.ProviderNo, err)
		}
	}

	for _, a := range artifacts {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO settlement_artifacts (run_id, name, kind, data)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (run_id, name) DO UPDATE
			SET kind = EXCLUDED.kind,
			    data = EXCLUDED.data
		`, c.RunID, a.Name, string(a.Kind), a.Data)
		if err != nil {
			return fmt.Errorf("failed to record artifact %s: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement %s: %w", c.RunID, err)
	}
	return nil
}

// Transfers returns the transfer records of one run ordered by provider.
func (s *SettlementStore) Transfers(ctx context.Context, runID string) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT provider_no, provider_name, revenue_cents
		FROM settlement_transfers
		WHERE run_id = $1
		ORDER BY provider_no
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var out []models.Settlement
	for rows.Next() {
		var st models.Settlement
		if err := rows.Scan(&st.ProviderNo, &st.ProviderName, &st.RevenueCents); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Artifact returns the stored bytes of one artifact of a run.
func (s *SettlementStore) Artifact(ctx context.Context, runID, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM settlement_artifacts WHERE run_id = $1 AND name = $2
	`, runID, name).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact %s: %w", name, err)
	}
	return data, nil
}
