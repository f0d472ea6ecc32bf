package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/snnyvrz/library-api/internal/apperror"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/pagination"
	"github.com/snnyvrz/library-api/internal/repository"
)

const (
	msgAuthorNameRequired = "Author name is required"
	msgBirthYearInvalid   = "Birth year must be a valid year"
)

type CreateAuthorInput struct {
	Name        string
	Bio         string
	Nationality string
	BirthYear   *int
}

func (in *CreateAuthorInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Nationality = strings.TrimSpace(in.Nationality)
}

func (in CreateAuthorInput) validate(now clock) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error(msgAuthorNameRequired)),
		validation.Field(&in.BirthYear, yearRules(now, msgBirthYearInvalid)...),
	)
}

// UpdateAuthorInput carries a partial update: nil fields are left alone.
type UpdateAuthorInput struct {
	Name        *string
	Bio         *string
	Nationality *string
	BirthYear   *int
}

func (in *UpdateAuthorInput) normalize() {
	in.Name = trimPtr(in.Name)
	in.Bio = trimPtr(in.Bio)
	in.Nationality = trimPtr(in.Nationality)
}

func (in UpdateAuthorInput) validate(now clock) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty.Error(msgAuthorNameRequired)),
		validation.Field(&in.BirthYear, yearRules(now, msgBirthYearInvalid)...),
	)
}

type AuthorStore struct {
	mu   sync.RWMutex
	repo repository.AuthorRepository
	now  clock
}

func NewAuthorStore(repo repository.AuthorRepository) *AuthorStore {
	return &AuthorStore{repo: repo, now: utcNow}
}

func (s *AuthorStore) List(ctx context.Context) ([]model.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *AuthorStore) Get(ctx context.Context, id string) (*model.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.get(ctx, id)
}

func (s *AuthorStore) get(ctx context.Context, id string) (*model.Author, error) {
	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Author with ID %s not found", id)
		}
		return nil, fmt.Errorf("find author %s: %w", id, err)
	}
	return author, nil
}

// nameTaken reports whether another author (other than excludeID) already
// uses name, ignoring case.
func (s *AuthorStore) nameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list authors: %w", err)
	}
	for _, a := range authors {
		if a.ID != excludeID && strings.EqualFold(a.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *AuthorStore) Create(ctx context.Context, in CreateAuthorInput) (*model.Author, error) {
	in.normalize()
	if err := in.validate(s.now); err != nil {
		return nil, validationError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken, err := s.nameTaken(ctx, in.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("Author with name '%s' already exists", in.Name)
	}

	now := s.now()
	author := &model.Author{
		Name:        in.Name,
		Bio:         in.Bio,
		Nationality: in.Nationality,
		BirthYear:   nonZero(in.BirthYear),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return author, nil
}

func (s *AuthorStore) Update(ctx context.Context, id string, in UpdateAuthorInput) (*model.Author, error) {
	in.normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	author, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := in.validate(s.now); err != nil {
		return nil, validationError(err)
	}

	if in.Name != nil {
		taken, err := s.nameTaken(ctx, *in.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.Conflict("Author with name '%s' already exists", *in.Name)
		}
		author.Name = *in.Name
	}
	if in.Bio != nil {
		author.Bio = *in.Bio
	}
	if in.Nationality != nil {
		author.Nationality = *in.Nationality
	}
	if in.BirthYear != nil {
		author.BirthYear = nonZero(in.BirthYear)
	}
	author.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, author); err != nil {
		return nil, fmt.Errorf("update author %s: %w", id, err)
	}
	return author, nil
}

// Delete removes the author unconditionally. Books that reference the author
// are kept.
func (s *AuthorStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Author with ID %s not found", id)
		}
		return fmt.Errorf("delete author %s: %w", id, err)
	}
	return nil
}

// Search matches query case-insensitively against name, bio and nationality.
// An empty query matches every author.
func (s *AuthorStore) Search(ctx context.Context, query string, p pagination.Params) ([]model.Author, pagination.Meta, error) {
	authors, err := s.List(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if query != "" {
		filtered := make([]model.Author, 0, len(authors))
		for _, a := range authors {
			if containsFold(a.Name, query) ||
				containsFold(a.Bio, query) ||
				containsFold(a.Nationality, query) {

				filtered = append(filtered, a)
			}
		}
		authors = filtered
	}

	page, meta := pagination.Paginate(authors, p)
	return page, meta, nil
}

func nonZero(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}
	y := *v
	return &y
}
