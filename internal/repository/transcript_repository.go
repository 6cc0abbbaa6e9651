package repository

import (
	"context"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/store"
)

// TranscriptRepository is the visitor's append-only chat history.
type TranscriptRepository interface {
	Append(ctx context.Context, msgs ...domain.ChatMessage) ([]domain.ChatMessage, error)
	AppendSeeded(ctx context.Context, seed domain.ChatMessage, msgs ...domain.ChatMessage) ([]domain.ChatMessage, error)
	List(ctx context.Context) ([]domain.ChatMessage, error)
}

type transcriptRepository struct {
	store store.Store
}

// NewTranscriptRepository builds repository.
func NewTranscriptRepository(s store.Store) TranscriptRepository {
	return &transcriptRepository{store: s}
}

func (r *transcriptRepository) Append(ctx context.Context, msgs ...domain.ChatMessage) ([]domain.ChatMessage, error) {
	r.store.Lock()
	defer r.store.Unlock()

	transcript, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return r.save(ctx, append(transcript, msgs...))
}

// AppendSeeded appends msgs in one write. An empty transcript gets seed first.
func (r *transcriptRepository) AppendSeeded(ctx context.Context, seed domain.ChatMessage, msgs ...domain.ChatMessage) ([]domain.ChatMessage, error) {
	r.store.Lock()
	defer r.store.Unlock()

	transcript, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(transcript) == 0 {
		transcript = append(transcript, seed)
	} else if len(msgs) == 0 {
		return transcript, nil
	}
	return r.save(ctx, append(transcript, msgs...))
}

func (r *transcriptRepository) save(ctx context.Context, transcript []domain.ChatMessage) ([]domain.ChatMessage, error) {
	if err := r.store.Set(ctx, TranscriptKey, transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

func (r *transcriptRepository) List(ctx context.Context) ([]domain.ChatMessage, error) {
	return store.GetOr(ctx, r.store, TranscriptKey, []domain.ChatMessage{})
}
