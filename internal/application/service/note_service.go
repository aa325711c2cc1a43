package service

import (
	"context"
	"strings"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/bukusaku/bukusaku-api/pkg/apperror"
	"github.com/google/uuid"
)

// NoteService handles notes
type NoteService struct {
	noteRepo repository.NoteRepository
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// NoteInput represents the note input
type NoteInput struct {
	Title    string
	Content  string
	IsPinned *bool
}

func (in *NoteInput) title() (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", apperror.NewFieldError("title", "Title is required")
	}
	return title, nil
}

func (s *NoteService) CreateNote(ctx context.Context, input *NoteInput) (*entity.Note, error) {
	title, err := input.title()
	if err != nil {
		return nil, err
	}
	note := &entity.Note{Title: title, Content: input.Content}
	if input.IsPinned != nil {
		note.IsPinned = *input.IsPinned
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) GetNote(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("Note")
	}
	return note, nil
}

// ListNotes returns notes newest first
func (s *NoteService) ListNotes(ctx context.Context) ([]entity.Note, error) {
	return s.noteRepo.List(ctx)
}

func (s *NoteService) UpdateNote(ctx context.Context, id uuid.UUID, input *NoteInput) (*entity.Note, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	title, err := input.title()
	if err != nil {
		return nil, err
	}
	note.Title = title
	note.Content = input.Content
	if input.IsPinned != nil {
		note.IsPinned = *input.IsPinned
	}
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetNote(ctx, id); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, id)
}
