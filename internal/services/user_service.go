package services

import (
	"context"

	"messenger-api/internal/domain"
	"messenger-api/internal/repository"
	messenger_errors "messenger-api/pkg/errors"
	"messenger-api/pkg/logger"

	"go.uber.org/zap"
)

type UserService struct {
	repo repository.UserRepository
	log  *logger.Logger
}

func NewUserService(repo repository.UserRepository, l *logger.Logger) *UserService {
	if l == nil {
		l = logger.NewNop()
	}
	return &UserService{repo: repo, log: l}
}

// SearchUsers prefix-matches handles case-insensitively. With a caller, the caller and
// everyone it blocked are left out.
func (s *UserService) SearchUsers(ctx context.Context, query string, callerID *int64) ([]domain.PublicProfile, error) {
	if domain.NormalizeText(query) == "" {
		return nil, messenger_errors.Invalid("Missing search query")
	}
	if callerID != nil && *callerID <= 0 {
		return nil, messenger_errors.Invalid("Invalid X-User-Id header")
	}
	return s.repo.Search(ctx, domain.NormalizeHandle(query), callerID, domain.SearchLimit)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (domain.User, error) {
	if userID <= 0 {
		return domain.User{}, messenger_errors.Invalid("Missing userId")
	}
	if update.Empty() {
		return domain.User{}, messenger_errors.Invalid("No fields to update")
	}
	u, err := s.repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return domain.User{}, err
	}
	s.log.InfoCtx(ctx, "profile updated", zap.Int64("target_user_id", userID), zap.Int("fields", len(update.Assignments())))
	return u, nil
}

func (s *UserService) BlockUser(ctx context.Context, edge domain.BlockEdge) error {
	if err := validateEdge(edge); err != nil {
		return err
	}
	if err := s.repo.Block(ctx, edge); err != nil {
		return err
	}
	s.log.InfoCtx(ctx, "user blocked", zap.Int64("blocker_id", edge.BlockerID), zap.Int64("blocked_id", edge.BlockedID))
	return nil
}

func (s *UserService) UnblockUser(ctx context.Context, edge domain.BlockEdge) error {
	if err := validateEdge(edge); err != nil {
		return err
	}
	return s.repo.Unblock(ctx, edge)
}

func validateEdge(edge domain.BlockEdge) error {
	if edge.BlockerID <= 0 || edge.BlockedID <= 0 {
		return messenger_errors.Invalid("Missing blocker or blocked ID")
	}
	return nil
}
