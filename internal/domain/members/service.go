package members

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/audit"
	"github.com/alialif/JoinUp-Event-Management/internal/auth"
	"github.com/alialif/JoinUp-Event-Management/internal/authz"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New()

type SignupParams struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8,max=72"`
	Name      string `validate:"required,max=200"`
	Role      string `validate:"omitempty,oneof=admin staff participant"`
	BirthDate *time.Time
	Gender    string `validate:"omitempty,oneof=male female other prefer_not_to_say"`
}

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

type LoginResult struct {
	AccessToken string
	Member      Member
}

type Service struct {
	repo     Repository
	tokens   *auth.TokenManager
	recorder audit.Recorder
	logger   zerolog.Logger
}

func NewService(repo Repository, tokens *auth.TokenManager, recorder audit.Recorder, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		recorder: recorder,
		logger:   logger.With().Str("component", "members").Logger(),
	}
}

// Signup creates a member account. The role defaults to participant;
// privileged roles are only assigned later through ChangeRole.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*Member, error) {
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.Name = strings.TrimSpace(params.Name)
	if params.Role == "" {
		params.Role = string(authz.RoleParticipant)
	}
	if err := validate.Struct(params); err != nil {
		return nil, signupValidationError(err)
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	member := Member{
		ID:           ids.MustNewULID(),
		Email:        params.Email,
		Name:         params.Name,
		BirthDate:    params.BirthDate,
		Gender:       params.Gender,
		PasswordHash: hash,
		Role:         params.Role,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	member, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Same failure as a wrong password so login probing cannot
			// distinguish unknown emails.
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.VerifyPassword(member.PasswordHash, password); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(member.ID, member.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &LoginResult{AccessToken: token, Member: *member}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

// PromoteToStaff raises a participant to the staff role.
func (s *Service) PromoteToStaff(ctx context.Context, memberID, actorID string) (*Member, error) {
	return s.ChangeRole(ctx, memberID, string(authz.RoleStaff), actorID)
}

// ChangeRole sets a member's role. Callers are expected to have passed
// the access policy check already.
func (s *Service) ChangeRole(ctx context.Context, memberID, role, actorID string) (*Member, error) {
	if !authz.ValidRole(role) {
		return nil, ValidationError{Field: "role", Message: "must be admin, staff, or participant"}
	}
	updated, err := s.repo.UpdateRole(ctx, memberID, string(authz.NormalizeRole(role)))
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, actorID, "member.change_role", "Member", updated.ID)
	return updated, nil
}

func signupValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return ValidationError{Message: err.Error()}
	}
	first := fieldErrors[0]
	return ValidationError{Field: strings.ToLower(first.Field()), Message: "failed " + first.Tag() + " validation"}
}
