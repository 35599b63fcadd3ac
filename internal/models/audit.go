package models

import "time"

type AuditAction string

const (
	ActionUserRegister  AuditAction = "user.register"
	ActionUserLogin     AuditAction = "user.login"
	ActionSweetCreate   AuditAction = "sweet.create"
	ActionSweetUpdate   AuditAction = "sweet.update"
	ActionSweetDelete   AuditAction = "sweet.delete"
	ActionSweetPurchase AuditAction = "sweet.purchase"
	ActionSweetRestock  AuditAction = "sweet.restock"
)

// AuditEntry records who did what to which entity. Detail is a free-form
// JSON blob serialized by the audit service.
type AuditEntry struct {
	ID        string      `json:"id" gorm:"primaryKey"`
	ActorID   string      `json:"actor_id" gorm:"index"`
	Action    AuditAction `json:"action" gorm:"index;not null"`
	EntityID  string      `json:"entity_id"`
	Detail    string      `json:"detail"`
	CreatedAt time.Time   `json:"created_at"`
}
