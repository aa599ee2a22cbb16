package repository

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"vacation-tracker/internal/models"
	"vacation-tracker/pkg/logger"
)

// Repository - все репозитории движка в одном месте.
// Сервисы получают его целиком; внутри транзакции получают копию, привязанную к tx.
type Repository struct {
	Employee EmployeeRepository
	Calendar CalendarRepository
	Policy   PolicyRepository
	Balance  BalanceRepository
	Request  VacationRequestRepository
	Absence  AbsenceEntryRepository
	Audit    AuditRepository

	transaction func(fn func(repo *Repository) error) error
}

// NewRepository мигрирует схему и собирает репозитории поверх db
func NewRepository(db *gorm.DB, log *logrus.Logger) (*Repository, error) {
	log = logger.OrDefault(log)

	if err := db.AutoMigrate(
		&models.Employee{},
		&models.CalendarDay{},
		&models.VacationPolicy{},
		&models.VacationBalance{},
		&models.VacationRequest{},
		&models.VacationRequestDay{},
		&models.AbsenceEntry{},
		&models.AuditEntry{},
	); err != nil {
		log.WithError(err).Error("Failed to auto-migrate vacation tables")
		return nil, err
	}

	log.Info("Vacation repositories initialized")

	return newGormRepository(db, log), nil
}

func newGormRepository(db *gorm.DB, log *logrus.Logger) *Repository {
	repo := &Repository{
		Employee: &GormEmployeeRepository{db: db},
		Calendar: &GormCalendarRepository{db: db, logger: log},
		Policy:   &GormPolicyRepository{db: db},
		Balance:  &GormBalanceRepository{db: db, logger: log},
		Request:  &GormVacationRequestRepository{db: db, logger: log},
		Absence:  &GormAbsenceEntryRepository{db: db},
		Audit:    &GormAuditRepository{db: db},
	}
	repo.transaction = func(fn func(repo *Repository) error) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return fn(newGormRepository(tx, log))
		})
	}
	return repo
}

// Transaction выполняет fn атомарно. Если fn вернула ошибку - все изменения откатываются.
// Репозиторий без транзакционной поддержки (in-memory) просто вызывает fn.
func (r *Repository) Transaction(fn func(repo *Repository) error) error {
	if r.transaction == nil {
		return fn(r)
	}
	return r.transaction(fn)
}

// notFound переводит gorm.ErrRecordNotFound в (nil, nil)
func notFound[T any](value *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}
