package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/memory"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(sampleBank())}
	repo := NewBankRepository(client, loader, time.Minute)

	bank, err := repo.GetBank(context.Background(), "bank-1")
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:bank:bank-1") {
		t.Fatalf("expected bank cached in redis")
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetBank(context.Background(), "bank-1")
	if err != nil {
		t.Fatalf("get cached bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Questions[0].Correct != bank.Questions[0].Correct || cached.Questions[0].Hint != "Even number" {
		t.Fatalf("cached bank lost fields: %+v", cached.Questions[0])
	}
}

func TestBankRepositoryAppendEvicts(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(sampleBank())}
	repo := NewBankRepository(newClient(mr), loader, time.Minute)
	ctx := context.Background()

	if _, err := repo.GetBank(ctx, "bank-1"); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	bank, err := repo.AppendQuestion(ctx, "bank-1", domain.Question{
		Prompt:    "Pick A",
		Options:   []string{"A", "B"},
		Correct:   0,
		Hint:      "First letter",
		TimeLimit: 20,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(bank.Questions) != 2 || loader.calls != 2 {
		t.Fatalf("expected reload with 2 questions, got %d questions after %d loads", len(bank.Questions), loader.calls)
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, bankID)
}

func sampleBank() domain.Bank {
	return domain.Bank{
		ID: "bank-1",
		Questions: []domain.Question{
			{
				Prompt:    "What is 2 + 2?",
				Options:   []string{"3", "4"},
				Correct:   1,
				Hint:      "Even number",
				TimeLimit: 30,
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
