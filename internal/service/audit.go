package service

import (
	"encoding/json"
	"strconv"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
)

const entityVacationRequest = "vacation_request"
const entityVacationBalance = "vacation_balance"
const entityVacationPolicy = "vacation_policy"

func actorID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// appendAudit пишет запись журнала через переданный (обычно транзакционный) репозиторий
func appendAudit(repo *repository.Repository, entry models.AuditEntry, payload map[string]any) error {
	if len(payload) > 0 {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		entry.Payload = string(data)
	}
	return repo.Audit.Append(&entry)
}

// auditTransition - запись о смене статуса заявки
func auditTransition(repo *repository.Repository, action models.AuditAction, request *models.VacationRequest,
	performedBy uint, oldStatus models.RequestStatus, payload map[string]any) error {
	return appendAudit(repo, models.AuditEntry{
		Action:      action,
		EntityType:  entityVacationRequest,
		EntityID:    request.ID,
		PerformedBy: actorID(performedBy),
		OldStatus:   oldStatus,
		NewStatus:   request.Status,
	}, payload)
}
