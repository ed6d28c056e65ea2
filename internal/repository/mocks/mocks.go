package mocks

import (
	"context"
	"time"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/audit"
	"github.com/brookfield/admissions/internal/domain/slot"
	"github.com/stretchr/testify/mock"
)

// ApplicationRepository is a mock for application.Repository.
type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) Get(ctx context.Context, id string) (*application.Application, error) {
	args := m.Called(ctx, id)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]application.Application); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) ListByFamily(ctx context.Context, familyID string) ([]application.Application, error) {
	args := m.Called(ctx, familyID)
	if list, ok := args.Get(0).([]application.Application); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) Update(ctx context.Context, app *application.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) ScheduleInterview(ctx context.Context, id string, interviewDate time.Time) error {
	args := m.Called(ctx, id, interviewDate)
	return args.Error(0)
}

func (m *ApplicationRepository) ExistsFor(ctx context.Context, familyID, childName, dateOfBirth string) (bool, error) {
	args := m.Called(ctx, familyID, childName, dateOfBirth)
	return args.Bool(0), args.Error(1)
}

// SlotRepository is a mock for slot.Repository and the booking claim
// primitives.
type SlotRepository struct {
	mock.Mock
}

func (m *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SlotRepository) Get(ctx context.Context, id string) (*slot.Slot, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*slot.Slot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SlotRepository) List(ctx context.Context, opts slot.ListOptions) ([]slot.Slot, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]slot.Slot); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SlotRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SlotRepository) Claim(ctx context.Context, slotID, applicationID string) error {
	args := m.Called(ctx, slotID, applicationID)
	return args.Error(0)
}

func (m *SlotRepository) Release(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AccountRepository is a mock for repository.AccountRepository.
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Create(ctx context.Context, tokenHash string, account *auth.Account) error {
	args := m.Called(ctx, tokenHash, account)
	return args.Error(0)
}

func (m *AccountRepository) GetByID(ctx context.Context, id string) (*auth.Account, error) {
	args := m.Called(ctx, id)
	if acct, ok := args.Get(0).(*auth.Account); ok {
		return acct, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*auth.Account, error) {
	args := m.Called(ctx, tokenHash)
	if acct, ok := args.Get(0).(*auth.Account); ok {
		return acct, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) TouchLastUsed(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

// AuditRepository is a mock for audit.Repository.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]audit.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Transitioner is a mock for the status transition dependency used by the
// booking and slot services.
type Transitioner struct {
	mock.Mock
}

func (m *Transitioner) SetStatus(ctx context.Context, principal auth.Principal, id string, upd application.StatusUpdate) (*application.Application, error) {
	args := m.Called(ctx, principal, id, upd)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

// Scheduler is a mock for the guarded interview commit used by the booking
// service.
type Scheduler struct {
	mock.Mock
}

func (m *Scheduler) Schedule(ctx context.Context, principal auth.Principal, id string, interviewDate time.Time) (*application.Application, error) {
	args := m.Called(ctx, principal, id, interviewDate)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

// Notifier is a mock for application.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Send(ctx context.Context, app *application.Application, newStatus application.Status) error {
	args := m.Called(ctx, app, newStatus)
	return args.Error(0)
}
