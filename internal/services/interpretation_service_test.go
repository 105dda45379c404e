package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pgvector/pgvector-go"

	"dreamoracle/internal/models/db_models"
	"dreamoracle/pkg/utils"
)

type fakeAIClient struct {
	interpretation *utils.DreamInterpretation
	transcript     string
	err            error

	interpretCalls  int
	transcribeCalls int
}

func (f *fakeAIClient) InterpretDream(ctx context.Context, narrative, mood, question string) (*utils.DreamInterpretation, error) {
	f.interpretCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.interpretation, nil
}

func (f *fakeAIClient) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error) {
	f.transcribeCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

func (f *fakeAIClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return pgvector.NewVector(make([]float32, 4)), f.err
}

func newInterpretationTestStack(account *db_models.Account, ai *fakeAIClient) (InterpretationServiceInterface, *fakeDreamRepo) {
	accountRepo := &fakeAccountRepo{accounts: map[string]*db_models.Account{
		account.ID.String(): account,
	}}
	credits := NewCreditService(accountRepo, &fakeUsageLedger{}, DefaultCatalog())
	repo := newFakeDreamRepo()
	return NewInterpretationService(repo, credits, ai, "openai", "gpt-4o-mini"), repo
}

func TestInterpretDream(t *testing.T) {
	account := newTestAccount(db_models.TierEssential)
	ai := &fakeAIClient{interpretation: &utils.DreamInterpretation{
		Summary:  "A dream about release.",
		Emotions: []string{"relief"},
		Guidance: "Write down what you let go of.",
	}}
	svc, repo := newInterpretationTestStack(account, ai)

	dream := &db_models.Dream{AccountID: account.ID, Narrative: "I dropped everything and flew."}
	if err := repo.Insert(context.Background(), dream); err != nil {
		t.Fatalf("insert: %v", err)
	}

	resp, credit, err := svc.InterpretDream(context.Background(), account.ID.String(), dream.ID.String(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !credit.Allowed {
		t.Fatalf("credit = %+v", credit)
	}
	if resp.Summary != "A dream about release." || resp.Provider != "openai" {
		t.Fatalf("response = %+v", resp)
	}
	if ai.interpretCalls != 1 {
		t.Fatalf("interpret calls = %d, want 1", ai.interpretCalls)
	}
}

func TestInterpretDreamMissingDream(t *testing.T) {
	account := newTestAccount(db_models.TierEssential)
	ai := &fakeAIClient{}
	svc, _ := newInterpretationTestStack(account, ai)

	_, _, err := svc.InterpretDream(context.Background(), account.ID.String(), "00000000-0000-0000-0000-000000000000", "")
	if !errors.Is(err, utils.ErrDreamNotFound) {
		t.Fatalf("error = %v, want ErrDreamNotFound", err)
	}
	if ai.interpretCalls != 0 {
		t.Fatal("missing dream must not reach the provider")
	}
}

// A denied quota stops the request before the provider is called, so a blocked
// user cannot run up an AI bill.
func TestInterpretDreamDeniedBeforeProvider(t *testing.T) {
	account := newTestAccount(db_models.TierFree)
	ai := &fakeAIClient{interpretation: &utils.DreamInterpretation{Summary: "s"}}
	svc, repo := newInterpretationTestStack(account, ai)
	ctx := context.Background()

	dream := &db_models.Dream{AccountID: account.ID, Narrative: "n"}
	if err := repo.Insert(ctx, dream); err != nil {
		t.Fatalf("insert: %v", err)
	}

	limit := DefaultCatalog().LimitFor(db_models.TierFree, db_models.ActionInterpretation).Cap()
	for i := 0; i < limit; i++ {
		if _, credit, err := svc.InterpretDream(ctx, account.ID.String(), dream.ID.String(), ""); err != nil || !credit.Allowed {
			t.Fatalf("call %d: credit=%+v err=%v", i+1, credit, err)
		}
	}

	resp, credit, err := svc.InterpretDream(ctx, account.ID.String(), dream.ID.String(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != nil || credit == nil || credit.Allowed {
		t.Fatalf("resp=%+v credit=%+v, want denial", resp, credit)
	}
	if ai.interpretCalls != limit {
		t.Fatalf("provider called %d times, want %d", ai.interpretCalls, limit)
	}
}

func TestTranscribeProviderFailure(t *testing.T) {
	account := newTestAccount(db_models.TierEssential)
	ai := &fakeAIClient{err: errors.New("upstream timeout")}
	svc, _ := newInterpretationTestStack(account, ai)

	_, _, err := svc.Transcribe(context.Background(), account.ID.String(), "memo.m4a", strings.NewReader("audio"), "en")
	if !errors.Is(err, utils.ErrAIProviderError) {
		t.Fatalf("error = %v, want ErrAIProviderError", err)
	}
}

func TestTranscribeDeniedOnFree(t *testing.T) {
	account := newTestAccount(db_models.TierFree)
	ai := &fakeAIClient{transcript: "text"}
	svc, _ := newInterpretationTestStack(account, ai)

	resp, credit, err := svc.Transcribe(context.Background(), account.ID.String(), "memo.m4a", strings.NewReader("audio"), "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != nil || credit.Allowed {
		t.Fatalf("free transcription should be denied, resp=%+v credit=%+v", resp, credit)
	}
	if ai.transcribeCalls != 0 {
		t.Fatal("denied transcription must not reach the provider")
	}
}
