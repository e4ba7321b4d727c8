package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/fgoexport/internal/model"
)

// Skill owner kinds stored in skills.owner_kind.
const (
	OwnerServant    = "servant"
	OwnerMysticCode = "mystic_code"
)

// ExportRepository сохраняет нормализованный экспорт в БД.
// Every Save is a full rewrite of its entity family inside one transaction.
type ExportRepository struct {
	db *pgxpool.Pool
}

// NewExportRepository создаёт новый ExportRepository.
func NewExportRepository(db *pgxpool.Pool) *ExportRepository {
	return &ExportRepository{db: db}
}

// SaveServants replaces all stored servants and their skills.
func (r *ExportRepository) SaveServants(ctx context.Context, servants []model.Servant) error {
	return r.rewrite(ctx, "servants", OwnerServant, func(tx pgx.Tx) error {
		for _, s := range servants {
			if _, err := tx.Exec(ctx,
				`INSERT INTO servants (id, collection_no, name, class_name, rarity, data)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				s.ID, s.CollectionNo, s.Name, s.ClassName, s.Rarity, s,
			); err != nil {
				return fmt.Errorf("inserting servant %d: %w", s.ID, err)
			}
			if err := insertSkills(ctx, tx, OwnerServant, s.ID, s.Skills); err != nil {
				return err
			}
		}
		slog.Info("stored servants", "count", len(servants))
		return nil
	})
}

// SaveMysticCodes replaces all stored mystic codes and their skills.
func (r *ExportRepository) SaveMysticCodes(ctx context.Context, codes []model.MysticCode) error {
	return r.rewrite(ctx, "mystic_codes", OwnerMysticCode, func(tx pgx.Tx) error {
		for _, mc := range codes {
			if _, err := tx.Exec(ctx,
				`INSERT INTO mystic_codes (id, name, data) VALUES ($1, $2, $3)`,
				mc.ID, mc.Name, mc,
			); err != nil {
				return fmt.Errorf("inserting mystic code %d: %w", mc.ID, err)
			}
			if err := insertSkills(ctx, tx, OwnerMysticCode, mc.ID, mc.Skills); err != nil {
				return err
			}
		}
		slog.Info("stored mystic codes", "count", len(codes))
		return nil
	})
}

// CountSkillsByTarget returns how many stored skills carry the given tag.
func (r *ExportRepository) CountSkillsByTarget(ctx context.Context, target model.SkillTarget) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM skills WHERE targets @> ARRAY[$1]::text[]`, string(target),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s skills: %w", target, err)
	}
	return n, nil
}

// LoadServantNames returns stored servant names by collection number.
func (r *ExportRepository) LoadServantNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM servants ORDER BY collection_no, id`)
	if err != nil {
		return nil, fmt.Errorf("querying servant names: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning servant names: %w", err)
	}
	return names, nil
}

func (r *ExportRepository) rewrite(ctx context.Context, table, ownerKind string, fill func(pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// Rollback after commit is expected to fail
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE owner_kind = $1`, ownerKind); err != nil {
		return fmt.Errorf("deleting %s skills: %w", ownerKind, err)
	}
	// table is one of the two constants above, never user input
	if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("deleting %s: %w", table, err)
	}

	if err := fill(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}

func insertSkills(ctx context.Context, tx pgx.Tx, ownerKind string, ownerID int, skills []model.Skill) error {
	for _, s := range skills {
		targets := make([]string, len(s.Target))
		for i, t := range s.Target {
			targets[i] = string(t)
		}

		var ascension, targetAscension *int
		if s.Transform != nil {
			ascension = &s.Transform.Ascension
			targetAscension = &s.Transform.TargetAscension
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO skills (owner_kind, owner_id, skill_id, num, name, targets, ascension, target_ascension)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			ownerKind, ownerID, s.ID, s.Num, s.Name, targets, ascension, targetAscension,
		); err != nil {
			return fmt.Errorf("inserting %s %d skill %d: %w", ownerKind, ownerID, s.ID, err)
		}
	}
	return nil
}
