package services

import (
	"context"
	"encoding/json"
	"log"

	"sweetshop/internal/models"
)

type AuditStore interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

// Record writes an audit entry. Failures are logged and swallowed so an
// audit problem never fails the request that triggered it.
func (s *AuditService) Record(ctx context.Context, actorID string, action models.AuditAction, entityID string, detail interface{}) {
	var detailStr string
	if detail != nil {
		if str, ok := detail.(string); ok {
			detailStr = str
		} else {
			data, _ := json.Marshal(detail)
			detailStr = string(data)
		}
	}

	entry := &models.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		EntityID: entityID,
		Detail:   detailStr,
	}
	if err := s.store.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s: %v", action, err)
	}
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	return s.store.Recent(ctx, limit)
}
