package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"timed-quiz-service/internal/domain"
)

// BankLoader loads and appends bank questions stored in Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	var exists bool
	if err := l.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM question_banks WHERE id=$1)`, bankID).Scan(&exists); err != nil {
		return domain.Bank{}, fmt.Errorf("load bank: %w", err)
	}
	if !exists {
		return domain.Bank{}, domain.ErrBankNotFound
	}

	rows, err := l.pool.Query(ctx, `
		SELECT prompt, options, correct, hint, time_limit_seconds
		FROM questions
		WHERE bank_id=$1
		ORDER BY position`, bankID)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	bank := domain.Bank{ID: bankID}
	for rows.Next() {
		var (
			q          domain.Question
			rawOptions []byte
		)
		if err := rows.Scan(&q.Prompt, &rawOptions, &q.Correct, &q.Hint, &q.TimeLimit); err != nil {
			return domain.Bank{}, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return domain.Bank{}, fmt.Errorf("unmarshal options: %w", err)
		}
		bank.Questions = append(bank.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return domain.Bank{}, fmt.Errorf("load questions: %w", err)
	}
	return bank, nil
}

// AppendQuestion inserts q after the bank's last question.
func (l *BankLoader) AppendQuestion(ctx context.Context, bankID string, q domain.Question) error {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	var id int64
	err = l.pool.QueryRow(ctx, `
		INSERT INTO questions (bank_id, position, prompt, options, correct, hint, time_limit_seconds)
		SELECT b.id,
		       COALESCE((SELECT MAX(position) + 1 FROM questions WHERE bank_id = b.id), 0),
		       $2, $3::jsonb, $4, $5, $6
		FROM question_banks b
		WHERE b.id = $1
		RETURNING id`,
		bankID, q.Prompt, string(options), q.Correct, q.Hint, q.TimeLimit,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrBankNotFound
	}
	if err != nil {
		return fmt.Errorf("append question: %w", err)
	}
	return nil
}
