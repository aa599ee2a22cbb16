package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[uint]*models.Employee
	nextID    uint
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[uint]*models.Employee), nextID: 1}
}

func (m *mockEmployeeRepo) Create(employee *models.Employee) error {
	if employee.ID == 0 {
		employee.ID = m.nextID
	}
	if employee.ID >= m.nextID {
		m.nextID = employee.ID + 1
	}
	copied := *employee
	m.employees[employee.ID] = &copied
	return nil
}

func (m *mockEmployeeRepo) GetByID(id uint) (*models.Employee, error) {
	if e, ok := m.employees[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

func (m *mockEmployeeRepo) GetByChatID(chatID int64) (*models.Employee, error) {
	for _, e := range m.employees {
		if e.TelegramChatID != nil && *e.TelegramChatID == chatID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockEmployeeRepo) ListActive() ([]models.Employee, error) {
	var result []models.Employee
	for _, e := range m.employees {
		if e.IsActive {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockEmployeeRepo) ListSubordinates(managerID uint) ([]models.Employee, error) {
	var result []models.Employee
	for _, e := range m.employees {
		if e.IsActive && e.ManagerID != nil && *e.ManagerID == managerID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock CalendarRepository ──

type mockCalendarRepo struct {
	days     []models.CalendarDay
	getCalls int
}

func newMockCalendarRepo() *mockCalendarRepo {
	return &mockCalendarRepo{}
}

func (m *mockCalendarRepo) GetRange(from, to time.Time, region string) ([]models.CalendarDay, error) {
	m.getCalls++
	var result []models.CalendarDay
	for _, d := range m.days {
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		if d.Region == "" || (region != "" && d.Region == region) {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockCalendarRepo) GetByYear(year int, region string) ([]models.CalendarDay, error) {
	var result []models.CalendarDay
	for _, d := range m.days {
		if d.Year == year && d.Region == region {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockCalendarRepo) ReplaceYear(year int, region string, days []models.CalendarDay) error {
	kept := m.days[:0]
	for _, d := range m.days {
		if d.Year != year || d.Region != region {
			kept = append(kept, d)
		}
	}
	m.days = append(kept, days...)
	return nil
}

// ── Mock PolicyRepository ──

type mockPolicyRepo struct {
	policies map[uint]*models.VacationPolicy
	nextID   uint
}

func newMockPolicyRepo() *mockPolicyRepo {
	return &mockPolicyRepo{policies: make(map[uint]*models.VacationPolicy), nextID: 1}
}

func (m *mockPolicyRepo) Create(policy *models.VacationPolicy) error {
	policy.ID = m.nextID
	m.nextID++
	copied := *policy
	m.policies[policy.ID] = &copied
	return nil
}

func (m *mockPolicyRepo) GetByID(id uint) (*models.VacationPolicy, error) {
	if p, ok := m.policies[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (m *mockPolicyRepo) GetByYear(year int) (*models.VacationPolicy, error) {
	var best *models.VacationPolicy
	for _, p := range m.policies {
		if p.Year != year {
			continue
		}
		if best == nil ||
			(p.IsDefault && !best.IsDefault) ||
			(p.IsDefault == best.IsDefault && p.ID < best.ID) {
			best = p
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

// ── Mock BalanceRepository ──

type balanceKey struct {
	employeeID uint
	year       int
}

type mockBalanceRepo struct {
	balances map[balanceKey]*models.VacationBalance
	nextID   uint
}

func newMockBalanceRepo() *mockBalanceRepo {
	return &mockBalanceRepo{balances: make(map[balanceKey]*models.VacationBalance), nextID: 1}
}

func (m *mockBalanceRepo) GetByEmployeeYear(employeeID uint, year int) (*models.VacationBalance, error) {
	if b, ok := m.balances[balanceKey{employeeID, year}]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

func (m *mockBalanceRepo) CreateIfAbsent(balance *models.VacationBalance) (bool, error) {
	key := balanceKey{balance.EmployeeID, balance.Year}
	if _, ok := m.balances[key]; ok {
		return false, nil
	}
	balance.ID = m.nextID
	m.nextID++
	copied := *balance
	m.balances[key] = &copied
	return true, nil
}

func (m *mockBalanceRepo) Update(balance *models.VacationBalance) error {
	copied := *balance
	m.balances[balanceKey{balance.EmployeeID, balance.Year}] = &copied
	return nil
}

func (m *mockBalanceRepo) EmployeeIDsWithBalance(policyID uint, year int) ([]uint, error) {
	var ids []uint
	for _, b := range m.balances {
		if b.PolicyID == policyID && b.Year == year {
			ids = append(ids, b.EmployeeID)
		}
	}
	return ids, nil
}

func (m *mockBalanceRepo) CreateBatch(balances []models.VacationBalance) (int64, error) {
	var inserted int64
	for i := range balances {
		created, _ := m.CreateIfAbsent(&balances[i])
		if created {
			inserted++
		}
	}
	return inserted, nil
}

// ── Mock VacationRequestRepository ──

type mockRequestRepo struct {
	requests map[uint]*models.VacationRequest
	nextID   uint
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[uint]*models.VacationRequest), nextID: 1}
}

func cloneRequest(r *models.VacationRequest) *models.VacationRequest {
	copied := *r
	copied.Days = append([]models.VacationRequestDay(nil), r.Days...)
	return &copied
}

func (m *mockRequestRepo) Create(request *models.VacationRequest) error {
	request.ID = m.nextID
	m.nextID++
	for i := range request.Days {
		request.Days[i].RequestID = request.ID
		request.Days[i].ID = uint(i + 1)
	}
	m.requests[request.ID] = cloneRequest(request)
	return nil
}

func (m *mockRequestRepo) GetByID(id uint) (*models.VacationRequest, error) {
	if r, ok := m.requests[id]; ok {
		return cloneRequest(r), nil
	}
	return nil, nil
}

func (m *mockRequestRepo) Update(request *models.VacationRequest) error {
	stored, ok := m.requests[request.ID]
	if !ok {
		return nil
	}
	updated := cloneRequest(request)
	updated.Days = stored.Days
	m.requests[request.ID] = updated
	return nil
}

func (m *mockRequestRepo) sorted(filter func(r *models.VacationRequest) bool) []models.VacationRequest {
	var result []models.VacationRequest
	for _, r := range m.requests {
		if filter(r) {
			result = append(result, *cloneRequest(r))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result
}

func (m *mockRequestRepo) FindOverlapping(employeeID uint, start, end time.Time, excludeID uint) ([]models.VacationRequest, error) {
	return m.sorted(func(r *models.VacationRequest) bool {
		return r.EmployeeID == employeeID &&
			r.ID != excludeID &&
			r.Status.BlocksOverlap() &&
			r.Overlaps(start, end)
	}), nil
}

func (m *mockRequestRepo) ListApprovedStartingInYear(employeeID uint, year int) ([]models.VacationRequest, error) {
	return m.sorted(func(r *models.VacationRequest) bool {
		return r.EmployeeID == employeeID && r.Status == models.StatusApproved && r.StartDate.Year() == year
	}), nil
}

func (m *mockRequestRepo) ListByEmployee(employeeID uint) ([]models.VacationRequest, error) {
	return m.sorted(func(r *models.VacationRequest) bool {
		return r.EmployeeID == employeeID
	}), nil
}

func (m *mockRequestRepo) ListByEmployeesAndStatus(employeeIDs []uint, status models.RequestStatus) ([]models.VacationRequest, error) {
	wanted := make(map[uint]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	return m.sorted(func(r *models.VacationRequest) bool {
		return wanted[r.EmployeeID] && r.Status == status
	}), nil
}

// ── Mock AbsenceEntryRepository ──

type mockAbsenceRepo struct {
	entries []models.AbsenceEntry
	nextID  uint
}

func newMockAbsenceRepo() *mockAbsenceRepo {
	return &mockAbsenceRepo{nextID: 1}
}

func (m *mockAbsenceRepo) CreateBatch(entries []models.AbsenceEntry) error {
	for _, e := range entries {
		e.ID = m.nextID
		m.nextID++
		m.entries = append(m.entries, e)
	}
	return nil
}

func (m *mockAbsenceRepo) DeleteBySourceRequest(requestID uint) error {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.SourceRequestID != requestID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

func (m *mockAbsenceRepo) ListBySourceRequest(requestID uint) ([]models.AbsenceEntry, error) {
	var result []models.AbsenceEntry
	for _, e := range m.entries {
		if e.SourceRequestID == requestID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockAbsenceRepo) ListByDateRange(from, to time.Time) ([]models.AbsenceEntry, error) {
	var result []models.AbsenceEntry
	for _, e := range m.entries {
		if !e.Date.Before(from) && !e.Date.After(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── Mock AuditRepository ──

type mockAuditRepo struct {
	entries []models.AuditEntry
}

func (m *mockAuditRepo) Append(entry *models.AuditEntry) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepo) ListByEntity(entityType string, entityID uint) ([]models.AuditEntry, error) {
	var result []models.AuditEntry
	for _, e := range m.entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── Fixture ──

type fixture struct {
	employees *mockEmployeeRepo
	calendar  *mockCalendarRepo
	policies  *mockPolicyRepo
	balances  *mockBalanceRepo
	requests  *mockRequestRepo
	absences  *mockAbsenceRepo
	audit     *mockAuditRepo
	repo      *repository.Repository
}

func newFixture() *fixture {
	f := &fixture{
		employees: newMockEmployeeRepo(),
		calendar:  newMockCalendarRepo(),
		policies:  newMockPolicyRepo(),
		balances:  newMockBalanceRepo(),
		requests:  newMockRequestRepo(),
		absences:  newMockAbsenceRepo(),
		audit:     &mockAuditRepo{},
	}
	f.repo = &repository.Repository{
		Employee: f.employees,
		Calendar: f.calendar,
		Policy:   f.policies,
		Balance:  f.balances,
		Request:  f.requests,
		Absence:  f.absences,
		Audit:    f.audit,
	}
	return f
}

func (f *fixture) addEmployee(id uint, role models.Role, managerID *uint) *models.Employee {
	e := &models.Employee{ID: id, FullName: "Employee", Role: role, IsActive: true, ManagerID: managerID}
	_ = f.employees.Create(e)
	return e
}

func (f *fixture) addPolicy(year int, total, carryMax int64) *models.VacationPolicy {
	p := &models.VacationPolicy{
		Name:             "Стандарт",
		Year:             year,
		TotalDaysPerYear: decimal.NewFromInt(total),
		CarryOverMaxDays: decimal.NewFromInt(carryMax),
		AccrualType:      models.AccrualAnnual,
		IsDefault:        true,
	}
	_ = f.policies.Create(p)
	return p
}

func (f *fixture) addHoliday(d time.Time, name string) {
	f.calendar.days = append(f.calendar.days, models.CalendarDay{
		Date: d, Year: d.Year(), IsHoliday: true, HolidayName: name,
	})
}

func (f *fixture) addBalance(employeeID uint, year int, allocated, used int64) {
	b := &models.VacationBalance{
		EmployeeID:    employeeID,
		PolicyID:      999,
		Year:          year,
		AllocatedDays: decimal.NewFromInt(allocated),
	}
	b.ApplyUsage(decimal.NewFromInt(used))
	_, _ = f.balances.CreateIfAbsent(b)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func uintPtr(v uint) *uint {
	return &v
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
