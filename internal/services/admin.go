package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/padips/padips-cli/internal/api"
	"github.com/padips/padips-cli/internal/common"
	"github.com/padips/padips-cli/internal/models"
)

// AdminService wraps the moderation endpoints. Authorization is enforced
// server-side; this layer only adds the local input checks.
type AdminService struct {
	api api.Client
}

func NewAdminService(client api.Client) *AdminService {
	return &AdminService{api: client}
}

// Users fetches every registered account.
func (s *AdminService) Users(ctx context.Context) ([]models.UserProfile, error) {
	return s.api.AdminUsers(ctx)
}

// FilterByEmail keeps the accounts whose email contains the query,
// case-insensitively. An empty query keeps everything.
func FilterByEmail(users []models.UserProfile, query string) []models.UserProfile {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return users
	}
	out := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Email), query) {
			out = append(out, u)
		}
	}
	return out
}

// Blocked keeps only the accounts currently suspended or blocked.
func Blocked(users []models.UserProfile) []models.UserProfile {
	out := make([]models.UserProfile, 0)
	for _, u := range users {
		if u.IsBlocked || u.Status == models.StatusSuspended {
			out = append(out, u)
		}
	}
	return out
}

// Suspend blocks an account. A reason is mandatory; it is shown to the user
// in the force-logout notice.
func (s *AdminService) Suspend(ctx context.Context, userID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: a suspension reason is required", common.ErrorValidation)
	}
	return s.api.SuspendUser(ctx, userID, reason)
}

// Activate lifts a suspension.
func (s *AdminService) Activate(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", common.ErrorValidation)
	}
	return s.api.ActivateUser(ctx, userID)
}
