package settlement

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gym-ledger/internal/billing"
	"gym-ledger/internal/models"
	"gym-ledger/internal/storage"
)

var friday = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func sampleClosing() Closing {
	rev := billing.NewRevenue()
	rev.AddSessionFee("0005589", 2500)
	rev.AddProvided("123456789", "0005589")
	names := func(string) string { return "Alice Smith" }

	return Closing{
		RunID:       "run-1",
		ClosedAt:    friday,
		Settlements: rev.Settlements(names),
		Report:      rev.WeeklyReport(names),
		Bills: []models.Bill{{
			MemberNo:   "111444777",
			MemberName: "Carol",
			CreatedAt:  friday,
			Lines:      []models.BillLine{{SessionDate: friday, ProviderName: "Alice Smith", ServiceName: "Yoga"}},
		}},
		Notices: []models.PaymentNotice{{
			ProviderNo:   "123456789",
			ProviderName: "Alice Smith",
			CreatedAt:    friday,
			Entries: []*models.NoticeEntry{{
				SessionCode: "0005589",
				SessionDate: friday,
				RetrievedAt: friday,
				Members:     map[string]string{"222333444": "Dan", "111444777": "Carol"},
				Balance:     5000,
			}},
		}},
	}
}

func TestArtifacts(t *testing.T) {
	artifacts, err := Artifacts(sampleClosing())
	if err != nil {
		t.Fatalf("Artifacts: %v", err)
	}
	want := []string{
		"Alice_Smith-123456789.tef",
		"weekly-sessions-report-20261016-000000.txt",
		"bill-Carol-111444777-20261016-000000.txt",
		"notice-Alice_Smith-123456789-20261016-000000.txt",
	}
	if len(artifacts) != len(want) {
		t.Fatalf("got %d artifacts, want %d", len(artifacts), len(want))
	}
	for i, a := range artifacts {
		if a.Name != want[i] {
			t.Errorf("artifact %d = %q, want %q", i, a.Name, want[i])
		}
	}

	var tef models.Settlement
	if err := storage.Unmarshal(artifacts[0].Data, &tef); err != nil {
		t.Fatalf("decoding transfer record: %v", err)
	}
	if tef.RevenueCents != 2500 || tef.Revenue().StringFixed(2) != "25.00" {
		t.Errorf("transfer record = %+v", tef)
	}
}

func TestRenderNotice(t *testing.T) {
	text := RenderNotice(sampleClosing().Notices[0])
	for _, want := range []string{
		"Session number: 0005589",
		"Session date: 16-10-2026",
		"Member name: Carol\n\tMember number: 111444777\n\tMember name: Dan",
		"Balance: $50.00",
		"Total: $50.00",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("notice missing %q:\n%s", want, text)
		}
	}
}

func TestRenderBill(t *testing.T) {
	text := RenderBill(sampleClosing().Bills[0])
	for _, want := range []string{"Member: Carol", "Date: 16-10-2026", "Professional name: Alice Smith", "Service name: Yoga"} {
		if !strings.Contains(text, want) {
			t.Errorf("bill missing %q:\n%s", want, text)
		}
	}
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "res")
	sink := NewFileSink(dir)
	for i := 0; i < 2; i++ {
		if err := sink.Write(context.Background(), sampleClosing()); err != nil {
			t.Fatalf("Write #%d: %v", i, err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("directory holds %d files, want 4", len(entries))
	}
}

func TestTeeReportsEveryFailure(t *testing.T) {
	errA := errors.New("a down")
	errB := errors.New("b down")
	calls := 0
	failing := func(err error) Sink {
		return SinkFunc(func(context.Context, Closing) error {
			calls++
			return err
		})
	}
	tee := Tee{failing(errA), failing(nil), failing(errB)}
	err := tee.Write(context.Background(), sampleClosing())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Write() = %v, want both failures", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}
