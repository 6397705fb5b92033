package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	params.Title = strings.TrimSpace(params.Title)
	if params.Price == "" {
		params.Price = PriceFree
	}
	if params.MaxRegistrations == 0 {
		params.MaxRegistrations = DefaultMaxRegistrations
	}
	if err := validate.Struct(params); err != nil {
		return nil, validationError(err)
	}
	if params.EndDate.Before(params.StartDate) {
		return nil, ValidationError{Field: "endDate", Message: "must be on or after startDate"}
	}

	now := time.Now().UTC()
	event := Event{
		ID:               ids.MustNewULID(),
		Title:            params.Title,
		Description:      params.Description,
		StartDate:        params.StartDate,
		EndDate:          params.EndDate,
		MaxRegistrations: params.MaxRegistrations,
		Categories:       params.Categories,
		Price:            params.Price,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return s.repo.Create(ctx, event)
}

// List returns all events ordered by start date ascending.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update. Lowering MaxRegistrations below the
// current registration count is allowed: existing sequential codes stay
// valid and only future registrations are blocked.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Event, error) {
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, ValidationError{Field: "title", Message: "must not be empty"}
		}
		params.Title = &title
	}
	if params.MaxRegistrations != nil && *params.MaxRegistrations <= 0 {
		return nil, ValidationError{Field: "maxRegistrations", Message: "must be a positive integer"}
	}
	if params.Price != nil && *params.Price != PriceFree && *params.Price != PricePaid {
		return nil, ValidationError{Field: "price", Message: "must be free or paid"}
	}
	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return nil, ValidationError{Field: "endDate", Message: "must be on or after startDate"}
	}
	return s.repo.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return ValidationError{Message: err.Error()}
	}
	first := fieldErrors[0]
	return ValidationError{Field: lowerFirst(first.Field()), Message: "failed " + first.Tag() + " validation"}
}

func lowerFirst(value string) string {
	if value == "" {
		return value
	}
	return strings.ToLower(value[:1]) + value[1:]
}
