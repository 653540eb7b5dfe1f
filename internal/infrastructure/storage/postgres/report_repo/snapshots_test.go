package report_repo

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/stockcard"
)

func newTestArchive(t *testing.T) *SnapshotArchive {
	t.Helper()
	archive, err := NewSnapshotArchive(nil)
	require.NoError(t, err)
	return archive
}

func sampleReport(lines int) *stockcard.Report {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	ledger := stockcard.ProductLedger{
		ProductID:   id.New(),
		ProductName: "Office Paper A4",
		ProductCode: "PAP-A4",
		Unit:        "box",
	}

	balance := 0.0
	for i := 0; i < lines; i++ {
		balance += 5
		ledger.Lines = append(ledger.Lines, stockcard.LedgerLine{
			Date:        day.Add(time.Duration(i) * time.Hour),
			Reference:   fmt.Sprintf("TR-2026-%05d", i+1),
			DocType:     stockcard.DocTypeReceipt,
			Source:      "Virtual/Suppliers",
			Destination: "Main Warehouse/Stock",
			QtyIn:       5,
			Balance:     balance,
		})
	}
	ledger.ClosingBalance = balance

	return &stockcard.Report{
		DateFrom:        day,
		DateTo:          day.AddDate(0, 1, 0),
		DateFromDisplay: stockcard.FormatReportDate(day),
		DateToDisplay:   stockcard.FormatReportDate(day.AddDate(0, 1, 0)),
		WarehouseName:   "Main Warehouse",
		BrandName:       stockcard.AllBrandsLabel,
		Products:        []stockcard.ProductLedger{ledger},
		GeneratedAt:     day.AddDate(0, 1, 1),
	}
}

func TestSnapshotArchive_RoundTrip_Uncompressed(t *testing.T) {
	archive := newTestArchive(t)

	report := sampleReport(3)
	payload, compressed, algo, err := archive.encodeDocument(report)
	require.NoError(t, err)

	assert.Equal(t, CompressionNone, algo)
	assert.NotEmpty(t, payload)
	assert.Empty(t, compressed)

	restored, err := archive.decodeDocument(payload, compressed, algo)
	require.NoError(t, err)
	assert.Equal(t, report, restored)
}

func TestSnapshotArchive_RoundTrip_Compressed(t *testing.T) {
	archive := newTestArchive(t)

	// Enough lines to cross the compression threshold
	report := sampleReport(500)
	payload, compressed, algo, err := archive.encodeDocument(report)
	require.NoError(t, err)

	assert.Equal(t, CompressionZstd, algo)
	assert.Empty(t, payload)
	assert.NotEmpty(t, compressed)

	restored, err := archive.decodeDocument(payload, compressed, algo)
	require.NoError(t, err)
	assert.Equal(t, report, restored)
}

func TestSnapshotArchive_CompressionShrinksPayload(t *testing.T) {
	archive := newTestArchive(t)

	report := sampleReport(500)
	_, compressed, _, err := archive.encodeDocument(report)
	require.NoError(t, err)

	uncompressing := newTestArchive(t)
	uncompressing.compressThreshold = 1 << 30
	raw, _, _, err := uncompressing.encodeDocument(report)
	require.NoError(t, err)

	assert.Less(t, len(compressed), len(raw))
}
