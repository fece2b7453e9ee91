package services_test

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock DocumentGenerator ---
type MockDocumentGenerator struct {
	mock.Mock
}

func (m *MockDocumentGenerator) Generate(ctx context.Context, plan domain.Plan, kind domain.DocumentKind, decisionLabel, remarks string) (*portssvc.GeneratedDocument, error) {
	args := m.Called(ctx, plan, kind, decisionLabel, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.GeneratedDocument), args.Error(1)
}

func (m *MockDocumentGenerator) Discard(ctx context.Context, filePath string) error {
	args := m.Called(ctx, filePath)
	return args.Error(0)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, req domain.NotificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// --- Mock MessageTransport ---
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SendEmail(ctx context.Context, address, subject, body string) error {
	args := m.Called(ctx, address, subject, body)
	return args.Error(0)
}

func (m *MockTransport) SendSMS(ctx context.Context, number, body string) error {
	args := m.Called(ctx, number, body)
	return args.Error(0)
}

// --- Mock PlanRepository ---
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) ListPlansByStatus(ctx context.Context, status domain.PlanStatus) ([]domain.Plan, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) AssignReferenceNo(ctx context.Context, planID string, referenceNo string, updatedBy string) error {
	args := m.Called(ctx, planID, referenceNo, updatedBy)
	return args.Error(0)
}

func (m *MockPlanRepository) ApplyStatusChange(ctx context.Context, change domain.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}
