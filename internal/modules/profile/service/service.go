package profile

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
	profileDto "sourcingsprints.com/bookclub/internal/modules/profile/dto"
	userRepo "sourcingsprints.com/bookclub/internal/modules/profile/repository"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

// ProfileService is the directory every other module resolves people
// through: mention resolution, attribution, admin checks.
type ProfileService interface {
	Get(ctx context.Context, id uuid.UUID) (*profileDto.ProfileResponse, error)
	List(ctx context.Context) ([]profileDto.ProfileResponse, error)
	Provision(ctx context.Context, req profileDto.CreateProfileRequest) (*profileDto.ProfileResponse, error)
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
	// ResolveDisplayNames maps already-lowercased candidate names to profiles.
	ResolveDisplayNames(ctx context.Context, lowered []string) ([]entity.User, error)
}

type profileService struct {
	repo userRepo.UserRepository
}

func NewProfileService(repo userRepo.UserRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context, id uuid.UUID) (*profileDto.ProfileResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*user)
	return &resp, nil
}

func (s *profileService) List(ctx context.Context) ([]profileDto.ProfileResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]profileDto.ProfileResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toResponse(u))
	}
	return resp, nil
}

func (s *profileService) Provision(ctx context.Context, req profileDto.CreateProfileRequest) (*profileDto.ProfileResponse, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, apperror.ErrInvalidInput
	}

	user := &entity.User{
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		DisplayName: name,
		IsAdmin:     req.IsAdmin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := toResponse(*user)
	return &resp, nil
}

func (s *profileService) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	return s.repo.SetAdmin(ctx, id, isAdmin)
}

func (s *profileService) ResolveDisplayNames(ctx context.Context, lowered []string) ([]entity.User, error) {
	return s.repo.FindByDisplayNames(ctx, lowered)
}

func toResponse(u entity.User) profileDto.ProfileResponse {
	return profileDto.ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
	}
}
