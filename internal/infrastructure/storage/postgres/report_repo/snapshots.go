package report_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/klauspost/compress/zstd"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/domain/stockcard"
	"stockcard/internal/infrastructure/storage/postgres"
)

// CompressionAlgo specifies the compression applied to a stored snapshot.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

const snapshotTable = "report_snapshots"

// Compile-time check.
var _ stockcard.SnapshotArchiver = (*SnapshotArchive)(nil)

// SnapshotArchive stores generated report documents as JSON, zstd
// compressed above a size threshold. One snapshot per wizard; a
// regenerated report overwrites the previous copy.
type SnapshotArchive struct {
	txManager         *postgres.TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewSnapshotArchive creates a new snapshot archive.
func NewSnapshotArchive(txManager *postgres.TxManager) (*SnapshotArchive, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SnapshotArchive{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024, // 10KB
	}, nil
}

// encodeDocument marshals a report and compresses it above the
// threshold. Exactly one of payload/compressed is non-nil.
func (a *SnapshotArchive) encodeDocument(report *stockcard.Report) (payload, compressed []byte, algo CompressionAlgo, err error) {
	payload, err = json.Marshal(report)
	if err != nil {
		return nil, nil, CompressionNone, fmt.Errorf("marshal report: %w", err)
	}

	algo = CompressionNone
	if len(payload) > a.compressThreshold {
		compressed = a.encoder.EncodeAll(payload, nil)
		payload = nil
		algo = CompressionZstd
	}

	return payload, compressed, algo, nil
}

// decodeDocument reverses encodeDocument.
func (a *SnapshotArchive) decodeDocument(payload, compressed []byte, algo CompressionAlgo) (*stockcard.Report, error) {
	if algo == CompressionZstd && len(compressed) > 0 {
		decoded, err := a.decoder.DecodeAll(compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress report snapshot: %w", err)
		}
		payload = decoded
	}

	var report stockcard.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report snapshot: %w", err)
	}

	return &report, nil
}

// SaveSnapshot upserts the archived copy of a generated report.
func (a *SnapshotArchive) SaveSnapshot(ctx context.Context, wizardID id.ID, report *stockcard.Report) error {
	payload, compressed, algo, err := a.encodeDocument(report)
	if err != nil {
		return err
	}

	sql := `
		INSERT INTO report_snapshots (
			wizard_id, document, document_compressed, compression_algo, saved_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (wizard_id) DO UPDATE SET
			document = EXCLUDED.document,
			document_compressed = EXCLUDED.document_compressed,
			compression_algo = EXCLUDED.compression_algo,
			saved_at = EXCLUDED.saved_at
	`

	querier := a.txManager.GetQuerier(ctx)
	_, err = querier.Exec(ctx, sql,
		wizardID, payload, compressed, algo, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save report snapshot: %w", err)
	}

	return nil
}

// GetSnapshot loads and decodes the archived report for a wizard.
func (a *SnapshotArchive) GetSnapshot(ctx context.Context, wizardID id.ID) (*stockcard.Report, error) {
	sql := `
		SELECT document, document_compressed, compression_algo
		FROM report_snapshots
		WHERE wizard_id = $1
	`

	var (
		payload    []byte
		compressed []byte
		algo       CompressionAlgo
	)
	querier := a.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql, wizardID).Scan(&payload, &compressed, &algo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("report snapshot", wizardID.String())
		}
		return nil, fmt.Errorf("get report snapshot: %w", err)
	}

	return a.decodeDocument(payload, compressed, algo)
}
