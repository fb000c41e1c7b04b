package migrations

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"

	"timed-quiz-service/internal/domain"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			return SeedBank(ctx, db, domain.DefaultBank())
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DELETE FROM question_banks WHERE id = ?`, domain.DefaultBankID)
			return err
		},
	)
}

// SeedBank inserts a bank and its questions unless the bank already exists.
func SeedBank(ctx context.Context, db *bun.DB, bank domain.Bank) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO question_banks (id) VALUES (?) ON CONFLICT (id) DO NOTHING`, bank.ID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return err
		}
		for i, q := range bank.Questions {
			options, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO questions (bank_id, position, prompt, options, correct, hint, time_limit_seconds)
				 VALUES (?, ?, ?, ?::jsonb, ?, ?, ?)`,
				bank.ID, i, q.Prompt, string(options), q.Correct, q.Hint, q.TimeLimit,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
