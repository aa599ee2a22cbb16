package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/metrics"
	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
	"vacation-tracker/pkg/logger"
)

type Options struct {
	Region    string
	Validator ValidatorConfig
	Metrics   *metrics.Metrics
	Logger    *logrus.Logger
}

// Service собирает сервисы движка отпусков и дает входные операции для бота и CLI
type Service struct {
	Calendar  *CalendarService
	Balances  *BalanceService
	Validator *ValidatorService
	Requests  *RequestService
	Absences  *AbsenceSyncService

	repo   *repository.Repository
	logger *logrus.Logger
}

func NewService(repo *repository.Repository, opts Options) *Service {
	log := logger.OrDefault(opts.Logger)

	calendar := NewCalendarService(repo, opts.Region, log)
	balances := NewBalanceService(repo, opts.Metrics, log)
	validator := NewValidatorService(repo, calendar, balances, opts.Validator, log)
	absences := NewAbsenceSyncService(repo, log)
	requests := NewRequestService(repo, calendar, balances, validator, absences, opts.Metrics, validator.cfg.Now, log)

	return &Service{
		Calendar:  calendar,
		Balances:  balances,
		Validator: validator,
		Requests:  requests,
		Absences:  absences,
		repo:      repo,
		logger:    log,
	}
}

func (s *Service) CreateRequest(employeeID uint, start, end time.Time, requestType models.RequestType) (*OperationResult, error) {
	return s.Requests.Create(employeeID, start, end, requestType)
}

func (s *Service) SubmitRequest(requestID, callerID uint) (*OperationResult, error) {
	return s.Requests.Submit(requestID, callerID)
}

func (s *Service) ApproveRequest(requestID, approverID uint, isManagerOnly bool, comment string) (*OperationResult, error) {
	return s.Requests.Approve(requestID, approverID, isManagerOnly, comment)
}

func (s *Service) RejectRequest(requestID, approverID uint, isManagerOnly bool, comment string) (*OperationResult, error) {
	return s.Requests.Reject(requestID, approverID, isManagerOnly, comment)
}

func (s *Service) CancelRequest(requestID, callerID uint) (*OperationResult, error) {
	return s.Requests.Cancel(requestID, callerID)
}

// GetBalance - баланс за год; (nil, nil) если создать его нельзя
func (s *Service) GetBalance(employeeID uint, year int) (*models.VacationBalance, error) {
	return s.Balances.GetOrCreate(employeeID, year)
}

func (s *Service) BulkAssign(policyID uint, year int, performedBy string) (*BulkAssignResult, error) {
	return s.Balances.BulkAssign(policyID, year, performedBy)
}

func (s *Service) RecalculateBalance(employeeID uint, year int) (*models.VacationBalance, error) {
	return s.Balances.Recalculate(employeeID, year)
}

func (s *Service) ValidateDates(employeeID uint, start, end time.Time) (*ValidationResult, error) {
	return s.Validator.Validate(employeeID, start, end, 0)
}

func (s *Service) CountWorkingDays(start, end time.Time) (decimal.Decimal, error) {
	return s.Calendar.CountWorkingDays(start, end)
}

func (s *Service) AbsentOn(date time.Time) ([]models.AbsenceEntry, error) {
	return s.Absences.AbsentOn(date)
}

func (s *Service) LoadCalendar(filePath string) (int, error) {
	return s.Calendar.LoadFromJSON(filePath)
}

// EmployeeByChatID - сотрудник по chat id телеграма
func (s *Service) EmployeeByChatID(chatID int64) (*models.Employee, error) {
	return s.repo.Employee.GetByChatID(chatID)
}

func (s *Service) Employee(id uint) (*models.Employee, error) {
	return s.repo.Employee.GetByID(id)
}

// GetRequest - заявка с разбивкой по дням; ErrRequestNotFound если ее нет
func (s *Service) GetRequest(requestID uint) (*models.VacationRequest, error) {
	return s.Requests.load(requestID)
}

func (s *Service) ListMyRequests(employeeID uint) ([]models.VacationRequest, error) {
	return s.repo.Request.ListByEmployee(employeeID)
}

// ListPendingForManager - отправленные заявки, ожидающие решения manager.
// Руководитель видит своих подчиненных, HR и администратор - всех.
func (s *Service) ListPendingForManager(managerID uint) ([]models.VacationRequest, error) {
	manager, err := s.repo.Employee.GetByID(managerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сотрудника: %w", err)
	}
	if manager == nil || !manager.IsActive || !manager.CanDecide() {
		return nil, nil
	}

	var employees []models.Employee
	if manager.IsAdmin() {
		employees, err = s.repo.Employee.ListActive()
	} else {
		employees, err = s.repo.Employee.ListSubordinates(managerID)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сотрудников: %w", err)
	}

	ids := make([]uint, 0, len(employees))
	for _, e := range employees {
		if e.ID != managerID {
			ids = append(ids, e.ID)
		}
	}
	return s.repo.Request.ListByEmployeesAndStatus(ids, models.StatusSubmitted)
}

// RequestHistory - журнал изменений заявки
func (s *Service) RequestHistory(requestID uint) ([]models.AuditEntry, error) {
	return s.repo.Audit.ListByEntity(entityVacationRequest, requestID)
}
