package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditRequestCreated   AuditAction = "request_created"
	AuditRequestSubmitted AuditAction = "request_submitted"
	AuditRequestApproved  AuditAction = "request_approved"
	AuditRequestRejected  AuditAction = "request_rejected"
	AuditRequestCancelled AuditAction = "request_cancelled"
	AuditBulkAssign       AuditAction = "bulk_assign"
	AuditRecalculate      AuditAction = "balance_recalculated"
	AuditPolicyCreated    AuditAction = "policy_created"
)

// AuditEntry - журнал изменений, только добавление
type AuditEntry struct {
	ID          uuid.UUID     `gorm:"type:char(36);primaryKey" json:"id"`
	Action      AuditAction   `gorm:"type:varchar(40);not null;index" json:"action"`
	EntityType  string        `gorm:"type:varchar(40);not null;index:idx_audit_entity" json:"entity_type"`
	EntityID    uint          `gorm:"not null;index:idx_audit_entity" json:"entity_id"`
	PerformedBy string        `gorm:"type:varchar(64)" json:"performed_by"`
	OldStatus   RequestStatus `gorm:"type:varchar(20)" json:"old_status"`
	NewStatus   RequestStatus `gorm:"type:varchar(20)" json:"new_status"`
	Payload     string        `gorm:"type:text" json:"payload"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

func (a *AuditEntry) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
