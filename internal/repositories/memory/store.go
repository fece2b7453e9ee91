// Package memory is an in-process implementation of every repository port, used
// when STORE_DRIVER=memory and by the engine's concurrency tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
)

// Store keeps all records behind one mutex, so a StatusChange is applied as a unit.
type Store struct {
	mu          sync.RWMutex
	plans       map[string]domain.Plan
	planOrder   []string
	logs        map[string][]domain.LogEntry
	documents   map[string]domain.Document
	docOrder    []string
	templates   map[string]domain.MessageTemplate
	messageLogs []domain.MessageLog
	users       map[string]domain.User
	userOrder   []string
	preferences map[string]domain.UserPreference
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		plans:       make(map[string]domain.Plan),
		logs:        make(map[string][]domain.LogEntry),
		documents:   make(map[string]domain.Document),
		templates:   make(map[string]domain.MessageTemplate),
		users:       make(map[string]domain.User),
		preferences: make(map[string]domain.UserPreference),
	}
}

var (
	_ portsrepo.PlanRepositoryFacade    = (*Store)(nil)
	_ portsrepo.AuditRepositoryFacade   = (*Store)(nil)
	_ portsrepo.MessageRepositoryFacade = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade    = (*Store)(nil)
)

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PlanRepo:    s,
		AuditRepo:   s,
		MessageRepo: s,
		UserRepo:    s,
	}
}

// --- Plans ---

func clonePlan(p domain.Plan) *domain.Plan {
	out := p
	if p.ReferenceNo != nil {
		ref := *p.ReferenceNo
		out.ReferenceNo = &ref
	}
	if p.Remarks != nil {
		rem := *p.Remarks
		out.Remarks = &rem
	}
	return &out
}

func (s *Store) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[planID]
	if !ok {
		return nil, apperrors.NewNotFoundError("plan " + planID)
	}
	return clonePlan(p), nil
}

func (s *Store) ListPlansByStatus(ctx context.Context, status domain.PlanStatus) ([]domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Plan{}
	for _, id := range s.planOrder {
		if p := s.plans[id]; p.Status == status {
			out = append(out, *clonePlan(p))
		}
	}
	return out, nil
}

func (s *Store) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Plan, 0, len(s.planOrder))
	for _, id := range s.planOrder {
		out = append(out, *clonePlan(s.plans[id]))
	}
	return out, nil
}

func (s *Store) SavePlan(ctx context.Context, plan domain.Plan) error {
	if !plan.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, plan.Status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.plans[plan.PlanID]; exists {
		return fmt.Errorf("%w: plan %s", apperrors.ErrDuplicate, plan.PlanID)
	}
	s.plans[plan.PlanID] = *clonePlan(plan)
	s.planOrder = append(s.planOrder, plan.PlanID)
	return nil
}

// casLocked checks the expected status and returns the plan with its new status set.
func (s *Store) casLocked(planID string, expected, newStatus domain.PlanStatus) (domain.Plan, error) {
	if !newStatus.IsValid() {
		return domain.Plan{}, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, newStatus)
	}
	p, ok := s.plans[planID]
	if !ok {
		return domain.Plan{}, apperrors.NewNotFoundError("plan " + planID)
	}
	if p.Status != expected {
		return domain.Plan{}, apperrors.NewConflictError(fmt.Sprintf("plan %s is %q, expected %q", planID, p.Status, expected))
	}
	p.Status = newStatus
	return p, nil
}

func (s *Store) AssignReferenceNo(ctx context.Context, planID string, referenceNo string, updatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[planID]
	if !ok {
		return apperrors.NewNotFoundError("plan " + planID)
	}
	if p.ReferenceNo != nil {
		return apperrors.NewConflictError("plan " + planID + " already has a reference number")
	}
	for _, other := range s.plans {
		if other.ReferenceNo != nil && *other.ReferenceNo == referenceNo {
			return fmt.Errorf("%w: reference number %s", apperrors.ErrDuplicate, referenceNo)
		}
	}
	ref := referenceNo
	p.ReferenceNo = &ref
	p.LastUpdatedAt = time.Now()
	p.LastUpdatedBy = updatedBy
	s.plans[planID] = p
	return nil
}

func (s *Store) ApplyStatusChange(ctx context.Context, change domain.StatusChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.casLocked(change.PlanID, change.ExpectedStatus, change.NewStatus)
	if err != nil {
		return err
	}
	p.Remarks = change.Remarks
	p.LastUpdatedAt = change.UpdatedAt
	p.LastUpdatedBy = change.UpdatedBy
	s.plans[change.PlanID] = *clonePlan(p)
	s.logs[change.PlanID] = append(s.logs[change.PlanID], change.Log)
	if change.Document != nil {
		s.documents[change.Document.DocumentID] = *change.Document
		s.docOrder = append(s.docOrder, change.Document.DocumentID)
	}
	return nil
}

// --- Audit trail & documents ---

func (s *Store) ListLogsByPlan(ctx context.Context, planID string) ([]domain.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LogEntry, len(s.logs[planID]))
	copy(out, s.logs[planID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *Store) CountLogsByPlan(ctx context.Context, planID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs[planID]), nil
}

func (s *Store) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[documentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("document " + documentID)
	}
	return &d, nil
}

func (s *Store) ListDocumentsByPlan(ctx context.Context, planID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Document{}
	for _, id := range s.docOrder {
		if d := s.documents[id]; d.PlanID == planID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) SaveDocument(ctx context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[doc.PlanID]; !ok {
		return apperrors.NewNotFoundError("plan " + doc.PlanID)
	}
	if _, exists := s.documents[doc.DocumentID]; exists {
		return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, doc.DocumentID)
	}
	s.documents[doc.DocumentID] = doc
	s.docOrder = append(s.docOrder, doc.DocumentID)
	return nil
}

// --- Messages ---

func (s *Store) FindMessageTemplateByName(ctx context.Context, name string) (*domain.MessageTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("message template " + name)
	}
	return &t, nil
}

func (s *Store) SaveMessageTemplate(ctx context.Context, tmpl domain.MessageTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.templates[tmpl.Name]; ok && tmpl.TemplateID == "" {
		tmpl.TemplateID = existing.TemplateID
	}
	s.templates[tmpl.Name] = tmpl
	return nil
}

func (s *Store) SaveMessageLog(ctx context.Context, entry domain.MessageLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageLogs = append(s.messageLogs, entry)
	return nil
}

func (s *Store) ListMessageLogsByRecipient(ctx context.Context, recipient string) ([]domain.MessageLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.MessageLog{}
	for _, m := range s.messageLogs {
		if m.Recipient == recipient {
			out = append(out, m)
		}
	}
	return out, nil
}

// --- Users ---

func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("user " + userID)
	}
	return &u, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userOrder {
		if u := s.users[id]; u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user " + username)
}

func (s *Store) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.User{}
	for _, id := range s.userOrder {
		if u := s.users[id]; u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id])
	}
	return out, nil
}

func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.UserID]; exists {
		return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.UserID)
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, user.Username)
		}
	}
	s.users[user.UserID] = user
	s.userOrder = append(s.userOrder, user.UserID)
	return nil
}

func (s *Store) FindUserPreference(ctx context.Context, userID string) (*domain.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.preferences[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("preferences for user " + userID)
	}
	return &p, nil
}

func (s *Store) SaveUserPreference(ctx context.Context, pref domain.UserPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences[pref.UserID] = pref
	return nil
}
