package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

// ContactService accepts messages; there is no way to read them back over the API.
type ContactService struct {
	Messages repos.ContactStore
}

func NewContactService(messages repos.ContactStore) *ContactService {
	return &ContactService{Messages: messages}
}

func (s *ContactService) Send(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	return s.Messages.CreateContactMessage(ctx, m)
}
