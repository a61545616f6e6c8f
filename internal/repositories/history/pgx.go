package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Nico-ST/SvenSwipe/internal/domain"
	"github.com/Nico-ST/SvenSwipe/internal/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Pgx struct {
	pg *pgxpool.Pool
}

func NewPgx(pg *pgxpool.Pool) *Pgx {
	return &Pgx{
		pg: pg,
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, record domain.TriageRecord) error {
	query, args, err := repositories.SqBuilder.
		Insert("triage_history").
		Columns(
			"id",
			"asset_id",
			"decision",
			"decided_at",
			"committed_at",
		).Values(
		record.ID,
		record.AssetID,
		record.Decision.String(),
		record.DecidedAt,
		record.CommittedAt,
	).ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		return errors.Join(err, ErrCannotCreate)
	}

	return nil
}

func (p *Pgx) MarkCommitted(ctx context.Context, assetIDs []string, committedAt time.Time) error {
	if len(assetIDs) == 0 {
		return nil
	}

	query, args, err := repositories.SqBuilder.
		Update("triage_history").
		Set("committed_at", committedAt).
		Where(sq.Eq{"asset_id": assetIDs}).
		Where("committed_at IS NULL").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark records committed: %w", err)
	}

	return nil
}

func (p *Pgx) ListRecent(ctx context.Context, limit int) ([]*domain.TriageRecord, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "asset_id", "decision", "decided_at", "committed_at").
		From("triage_history").
		OrderBy("decided_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query triage history: %w", err)
	}
	defer rows.Close()

	var records []*domain.TriageRecord
	for rows.Next() {
		var r domain.TriageRecord
		var decision string
		if err := rows.Scan(&r.ID, &r.AssetID, &decision, &r.DecidedAt, &r.CommittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan triage record: %w", err)
		}
		if decision == "delete" {
			r.Decision = domain.DecisionDelete
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating triage records: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

func (p *Pgx) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	query, args, err := repositories.SqBuilder.
		Delete("triage_history").
		Where(sq.Lt{"decided_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up triage history: %w", err)
	}

	return tag.RowsAffected(), nil
}
