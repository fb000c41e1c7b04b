package memory

import (
	"context"
	"sync"

	"timed-quiz-service/internal/domain"
)

// StaticBankLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticBankLoader struct {
	mu    sync.RWMutex
	banks map[string]domain.Bank
}

func NewStaticBankLoader(banks ...domain.Bank) *StaticBankLoader {
	l := &StaticBankLoader{banks: make(map[string]domain.Bank, len(banks))}
	for _, b := range banks {
		l.banks[b.ID] = cloneBank(b)
	}
	return l
}

func (l *StaticBankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if bank, ok := l.banks[bankID]; ok {
		return cloneBank(bank), nil
	}
	return domain.Bank{}, domain.ErrBankNotFound
}

func (l *StaticBankLoader) AppendQuestion(_ context.Context, bankID string, q domain.Question) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	bank, ok := l.banks[bankID]
	if !ok {
		return domain.ErrBankNotFound
	}
	bank.Questions = append(bank.Questions, q)
	l.banks[bankID] = bank
	return nil
}

// cloneBank copies the question slice so callers cannot alias loader state.
func cloneBank(b domain.Bank) domain.Bank {
	questions := make([]domain.Question, len(b.Questions))
	copy(questions, b.Questions)
	return domain.Bank{ID: b.ID, Questions: questions}
}
