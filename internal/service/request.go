package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/metrics"
	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
	"vacation-tracker/pkg/logger"
)

var ErrRequestNotFound = errors.New("заявка не найдена")

// OperationResult - результат операции над заявкой.
// Отказ по бизнес-правилам возвращается в Errors, а не как error.
type OperationResult struct {
	Request  *models.VacationRequest
	Errors   []string
	Warnings []string
}

func (r *OperationResult) Succeeded() bool {
	return len(r.Errors) == 0
}

func refused(request *models.VacationRequest, format string, args ...any) *OperationResult {
	return &OperationResult{
		Request: request,
		Errors:  []string{fmt.Sprintf(format, args...)},
	}
}

// RequestService - жизненный цикл заявки: draft -> submitted -> approved/rejected, отмена до решения
type RequestService struct {
	repo      *repository.Repository
	calendar  *CalendarService
	balances  *BalanceService
	validator *ValidatorService
	absences  *AbsenceSyncService
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    *logrus.Logger
}

func NewRequestService(
	repo *repository.Repository,
	calendar *CalendarService,
	balances *BalanceService,
	validator *ValidatorService,
	absences *AbsenceSyncService,
	m *metrics.Metrics,
	now func() time.Time,
	log *logrus.Logger,
) *RequestService {
	if now == nil {
		now = time.Now
	}
	return &RequestService{
		repo:      repo,
		calendar:  calendar,
		balances:  balances,
		validator: validator,
		absences:  absences,
		metrics:   m,
		now:       now,
		logger:    logger.OrDefault(log),
	}
}

// Create создает черновик заявки вместе с разбивкой по дням
func (s *RequestService) Create(employeeID uint, start, end time.Time, requestType models.RequestType) (*OperationResult, error) {
	start, end = models.DateOnly(start), models.DateOnly(end)

	if !requestType.IsValid() {
		s.metrics.Refusal("create")
		return refused(nil, "неизвестный тип заявки: %s", requestType), nil
	}

	validation, err := s.validator.Validate(employeeID, start, end, 0)
	if err != nil {
		return nil, err
	}
	if !validation.IsValid {
		s.metrics.Refusal("create")
		return &OperationResult{Errors: validation.Errors, Warnings: validation.Warnings}, nil
	}

	days, err := s.calendar.ExpandRequestDays(0, start, end)
	if err != nil {
		return nil, err
	}

	request := &models.VacationRequest{
		EmployeeID:    employeeID,
		StartDate:     start,
		EndDate:       end,
		RequestedDays: validation.WorkingDays,
		Type:          requestType,
		Status:        models.StatusDraft,
		Days:          days,
	}

	err = s.repo.Transaction(func(repo *repository.Repository) error {
		if err := repo.Request.Create(request); err != nil {
			return err
		}
		return auditTransition(repo, models.AuditRequestCreated, request, employeeID, "", map[string]any{
			"start": start.Format(models.DateLayout),
			"end":   end.Format(models.DateLayout),
			"days":  request.RequestedDays.String(),
			"type":  requestType,
		})
	})
	if err != nil {
		s.logger.WithError(err).WithField("employee_id", employeeID).Error("Failed to create vacation request")
		return nil, fmt.Errorf("ошибка создания заявки: %w", err)
	}

	s.metrics.Transition("", models.StatusDraft)
	s.logger.WithFields(logrus.Fields{
		"request_id":  request.ID,
		"employee_id": employeeID,
		"start":       start.Format(models.DateLayout),
		"end":         end.Format(models.DateLayout),
		"days":        request.RequestedDays.String(),
	}).Info("Vacation request created")

	return &OperationResult{Request: request, Warnings: validation.Warnings}, nil
}

// Submit отправляет черновик на согласование. Период проверяется заново.
func (s *RequestService) Submit(requestID, callerID uint) (*OperationResult, error) {
	request, err := s.load(requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsOwnedBy(callerID) {
		s.metrics.Refusal("submit")
		return refused(request, "отправить заявку может только ее автор"), nil
	}
	if request.Status != models.StatusDraft {
		s.metrics.Refusal("submit")
		return refused(request, "отправить можно только черновик (статус: %s)", request.Status), nil
	}

	validation, err := s.validator.Validate(request.EmployeeID, request.StartDate, request.EndDate, request.ID)
	if err != nil {
		return nil, err
	}
	if !validation.IsValid {
		s.metrics.Refusal("submit")
		return &OperationResult{Request: request, Errors: validation.Errors, Warnings: validation.Warnings}, nil
	}

	now := s.now()
	oldStatus := request.Status
	request.Status = models.StatusSubmitted
	request.SubmittedAt = &now

	err = s.repo.Transaction(func(repo *repository.Repository) error {
		if err := repo.Request.Update(request); err != nil {
			return err
		}
		return auditTransition(repo, models.AuditRequestSubmitted, request, callerID, oldStatus, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка отправки заявки: %w", err)
	}

	s.transitioned(request, oldStatus, callerID)
	return &OperationResult{Request: request, Warnings: validation.Warnings}, nil
}

// Approve утверждает заявку. Нехватка остатка на момент утверждения - предупреждение, не отказ.
func (s *RequestService) Approve(requestID, approverID uint, isManagerOnly bool, comment string) (*OperationResult, error) {
	request, err := s.load(requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != models.StatusSubmitted {
		s.metrics.Refusal("approve")
		return refused(request, "утвердить можно только отправленную заявку (статус: %s)", request.Status), nil
	}
	if reason, err := s.authorize(request, approverID, isManagerOnly); err != nil {
		return nil, err
	} else if reason != "" {
		s.metrics.Refusal("approve")
		return refused(request, "%s", reason), nil
	}

	year := request.StartDate.Year()
	var warnings []string
	oldStatus := request.Status
	s.decide(request, models.StatusApproved, approverID, comment)

	err = s.repo.Transaction(func(repo *repository.Repository) error {
		// остаток проверяется до пересчета, в той же транзакции
		sufficient, err := s.balances.hasSufficientBalance(repo, request.EmployeeID, year, request.RequestedDays)
		if err != nil {
			return err
		}
		if !sufficient {
			warnings = append(warnings, fmt.Sprintf(
				"на момент утверждения остатка отпуска за %d год недостаточно для %s дней", year, request.RequestedDays.String()))
		}

		if err := repo.Request.Update(request); err != nil {
			return err
		}
		if _, err := s.balances.recalculate(repo, request.EmployeeID, year); err != nil {
			return err
		}
		if err := s.absences.sync(repo, request.ID); err != nil {
			return err
		}
		return auditTransition(repo, models.AuditRequestApproved, request, approverID, oldStatus, map[string]any{
			"comment":  comment,
			"days":     request.RequestedDays.String(),
			"warnings": warnings,
		})
	})
	if err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Error("Failed to approve vacation request")
		return nil, fmt.Errorf("ошибка утверждения заявки: %w", err)
	}

	s.transitioned(request, oldStatus, approverID)
	return &OperationResult{Request: request, Warnings: warnings}, nil
}

// Reject отклоняет заявку, причина обязательна
func (s *RequestService) Reject(requestID, approverID uint, isManagerOnly bool, comment string) (*OperationResult, error) {
	request, err := s.load(requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != models.StatusSubmitted {
		s.metrics.Refusal("reject")
		return refused(request, "отклонить можно только отправленную заявку (статус: %s)", request.Status), nil
	}
	if reason, err := s.authorize(request, approverID, isManagerOnly); err != nil {
		return nil, err
	} else if reason != "" {
		s.metrics.Refusal("reject")
		return refused(request, "%s", reason), nil
	}
	if strings.TrimSpace(comment) == "" {
		s.metrics.Refusal("reject")
		return refused(request, "укажите причину отклонения"), nil
	}

	oldStatus := request.Status
	s.decide(request, models.StatusRejected, approverID, comment)

	err = s.repo.Transaction(func(repo *repository.Repository) error {
		if err := repo.Request.Update(request); err != nil {
			return err
		}
		if err := s.absences.sync(repo, request.ID); err != nil {
			return err
		}
		return auditTransition(repo, models.AuditRequestRejected, request, approverID, oldStatus, map[string]any{
			"comment": comment,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка отклонения заявки: %w", err)
	}

	s.transitioned(request, oldStatus, approverID)
	return &OperationResult{Request: request}, nil
}

// Cancel отменяет черновик или отправленную заявку. Отменить может только автор.
func (s *RequestService) Cancel(requestID, callerID uint) (*OperationResult, error) {
	request, err := s.load(requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsOwnedBy(callerID) {
		s.metrics.Refusal("cancel")
		return refused(request, "отменить заявку может только ее автор"), nil
	}
	if !request.Status.CanTransitionTo(models.StatusCancelled) {
		s.metrics.Refusal("cancel")
		return refused(request, "заявку в статусе %s нельзя отменить", request.Status), nil
	}

	oldStatus := request.Status
	request.Status = models.StatusCancelled

	err = s.repo.Transaction(func(repo *repository.Repository) error {
		if err := repo.Request.Update(request); err != nil {
			return err
		}
		if err := s.absences.sync(repo, request.ID); err != nil {
			return err
		}
		return auditTransition(repo, models.AuditRequestCancelled, request, callerID, oldStatus, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка отмены заявки: %w", err)
	}

	s.transitioned(request, oldStatus, callerID)
	return &OperationResult{Request: request}, nil
}

func (s *RequestService) load(requestID uint) (*models.VacationRequest, error) {
	request, err := s.repo.Request.GetByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявки: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

// authorize возвращает причину отказа или "" если approver вправе принять решение
func (s *RequestService) authorize(request *models.VacationRequest, approverID uint, isManagerOnly bool) (string, error) {
	approver, err := s.repo.Employee.GetByID(approverID)
	if err != nil {
		return "", fmt.Errorf("ошибка получения сотрудника: %w", err)
	}
	if approver == nil || !approver.IsActive {
		return "согласующий не найден или неактивен", nil
	}
	if approver.ID == request.EmployeeID {
		return "нельзя принять решение по собственной заявке", nil
	}

	if isManagerOnly {
		employee, err := s.repo.Employee.GetByID(request.EmployeeID)
		if err != nil {
			return "", fmt.Errorf("ошибка получения сотрудника: %w", err)
		}
		if !approver.IsManagerOf(employee) {
			return "решение может принять только непосредственный руководитель", nil
		}
	}
	return "", nil
}

func (s *RequestService) decide(request *models.VacationRequest, status models.RequestStatus, approverID uint, comment string) {
	now := s.now()
	request.Status = status
	request.ApproverEmployeeID = &approverID
	request.ApproverComment = strings.TrimSpace(comment)
	request.DecisionAt = &now
}

func (s *RequestService) transitioned(request *models.VacationRequest, from models.RequestStatus, actor uint) {
	s.metrics.Transition(from, request.Status)
	s.logger.WithFields(logrus.Fields{
		"request_id":  request.ID,
		"employee_id": request.EmployeeID,
		"from":        from,
		"to":          request.Status,
		"actor":       actor,
	}).Info("Vacation request status changed")
}
