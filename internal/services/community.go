package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/padips/padips-cli/internal/api"
	"github.com/padips/padips-cli/internal/common"
	"github.com/padips/padips-cli/internal/models"
)

// CommunityService covers feedback and birthday greetings.
type CommunityService struct {
	api      api.Client
	validate *validator.Validate
}

func NewCommunityService(client api.Client) *CommunityService {
	return &CommunityService{api: client, validate: validator.New()}
}

// SendFeedback validates and delivers a feedback message.
func (s *CommunityService) SendFeedback(ctx context.Context, fb models.Feedback) error {
	if err := s.validate.Struct(fb); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorValidation, validationHint(err))
	}
	return s.api.SendFeedback(ctx, fb)
}

// BirthdaysToday lists the users celebrating today.
func (s *CommunityService) BirthdaysToday(ctx context.Context) ([]models.Birthday, error) {
	return s.api.BirthdaysToday(ctx)
}
