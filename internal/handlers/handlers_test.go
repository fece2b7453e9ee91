package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/core/services"
	"github.com/SscSPs/plan_approval_app/internal/core/workflow"
	"github.com/SscSPs/plan_approval_app/internal/documents"
	"github.com/SscSPs/plan_approval_app/internal/dto"
	"github.com/SscSPs/plan_approval_app/internal/handlers"
	"github.com/SscSPs/plan_approval_app/internal/notify"
	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/SscSPs/plan_approval_app/internal/repositories/memory"
	"github.com/SscSPs/plan_approval_app/internal/storage"
	"github.com/SscSPs/plan_approval_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const testPassword = "correct-horse-battery"

type HandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	cfg    *config.Config
	users  map[domain.Role]*domain.User
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.cfg = &config.Config{
		JWTSecret:          "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "plan-approval-test",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		Documents:          config.DocumentConfig{Timeout: 5 * time.Second},
		Notification: config.NotificationConfig{
			EmailEnabled: true,
			SMSEnabled:   true,
			Timeout:      time.Second,
			Workers:      2,
		},
	}

	files, err := storage.NewLocalStorage(s.T().TempDir())
	s.Require().NoError(err)

	store := memory.NewStore()
	container := services.NewServiceContainer(s.cfg, store.Provider(), services.Collaborators{
		Files:     files,
		Generator: documents.NewGenerator(files),
		Transport: notify.NewLogTransport(logger),
	})

	s.users = make(map[domain.Role]*domain.User)
	for _, role := range domain.AllRoles() {
		u, err := container.User.CreateUser(context.Background(), dto.CreateUserRequest{
			Username: "user-" + string(role),
			Password: testPassword,
			Name:     string(role) + " Officer",
			Role:     string(role),
			Email:    string(role) + "@council.example",
		}, "")
		s.Require().NoError(err)
		s.users[role] = u
	}

	s.router, err = handlers.NewRouter(s.cfg, container, logger)
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) token(role domain.Role) string {
	u := s.users[role]
	tok, _, err := utils.GenerateJWT(u.UserID, string(u.Role), s.cfg.JWTSecret, time.Hour, s.cfg.JWTIssuer)
	s.Require().NoError(err)
	return tok
}

func (s *HandlerTestSuite) do(method, path string, role domain.Role, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(role))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) createPlan() dto.PlanResponse {
	w := s.do(http.MethodPost, "/api/v1/plans", domain.RoleReception, map[string]any{
		"applicantName": "A. Builder",
		"plotNo":        "PL-17",
		"plotArea":      "320.5",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var plan dto.PlanResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &plan))
	return plan
}

func (s *HandlerTestSuite) transition(planID string, role domain.Role, action workflow.Action, remarks string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/api/v1/plans/"+planID+"/transitions", role,
		dto.ExecuteTransitionRequest{Action: string(action), Remarks: remarks})
}

func decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var body dto.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestRequiresToken() {
	w := s.do(http.MethodGet, "/api/v1/plans", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(apperrors.KindUnauthorized, decodeError(w).ErrorKind)
}

func (s *HandlerTestSuite) TestCreatePlan_ForbiddenForDirector() {
	w := s.do(http.MethodPost, "/api/v1/plans", domain.RoleDirector, map[string]any{
		"applicantName": "A", "plotNo": "1", "plotArea": "10",
	})
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal(apperrors.KindForbidden, decodeError(w).ErrorKind)
}

func (s *HandlerTestSuite) TestCreatePlan_Validation() {
	w := s.do(http.MethodPost, "/api/v1/plans", domain.RoleReception, map[string]any{"plotNo": "1"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.KindValidation, decodeError(w).ErrorKind)
}

func (s *HandlerTestSuite) TestGetPlan_NotFound() {
	w := s.do(http.MethodGet, "/api/v1/plans/does-not-exist", domain.RolePlanning, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(apperrors.KindNotFound, decodeError(w).ErrorKind)
}

func (s *HandlerTestSuite) TestListPlans_StatusFilter() {
	plan := s.createPlan()
	s.createPlan()
	s.Require().Equal(http.StatusOK, s.transition(plan.PlanID, domain.RolePlanning, workflow.ActionStartReview, "").Code)

	w := s.do(http.MethodGet, "/api/v1/plans?status=Submitted", domain.RolePlanning, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListPlansResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Len(list.Plans, 1)

	w = s.do(http.MethodGet, "/api/v1/plans", domain.RolePlanning, nil)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Len(list.Plans, 2)

	w = s.do(http.MethodGet, "/api/v1/plans?status=Lost", domain.RolePlanning, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestDirectorApprovalFlow() {
	plan := s.createPlan()
	s.Equal(string(domain.StatusSubmitted), plan.Status)

	s.Require().Equal(http.StatusOK, s.transition(plan.PlanID, domain.RolePlanning, workflow.ActionStartReview, "").Code)

	// Director cannot act while the plan is with Planning.
	w := s.transition(plan.PlanID, domain.RoleDirector, workflow.ActionApproveNoStructural, "")
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	errBody := decodeError(w)
	s.Equal(apperrors.KindIllegalTransition, errBody.ErrorKind)
	s.Equal(string(domain.StatusUnderReviewPlanning), errBody.Status)

	s.Require().Equal(http.StatusOK, s.transition(plan.PlanID, domain.RolePlanning, workflow.ActionForwardToDirector, "").Code)

	// Rejection requires remarks.
	w = s.transition(plan.PlanID, domain.RoleDirector, workflow.ActionReject, "   ")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.KindValidation, decodeError(w).ErrorKind)

	w = s.transition(plan.PlanID, domain.RoleDirector, workflow.ActionApproveNoStructural, "Looks good")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var result dto.TransitionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	s.Equal(string(domain.StatusApprovedClientPickup), result.Status)
	s.Require().NotNil(result.Document)
	s.NotNil(result.SoftFailures)
	s.Empty(result.SoftFailures)
	s.Equal(domain.RoleDirector, result.LogEntry.ActorRole)
	s.Equal(domain.StatusUnderReviewDirector, result.LogEntry.FromStatus)

	// Terminal: nothing further is available.
	w = s.do(http.MethodGet, "/api/v1/plans/"+plan.PlanID+"/actions", domain.RoleDirector, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var actions []dto.TransitionRowResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &actions))
	s.Empty(actions)

	w = s.do(http.MethodGet, "/api/v1/plans/"+plan.PlanID+"/logs", domain.RolePlanning, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var logs dto.ListLogsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &logs))
	s.Len(logs.Logs, 3)

	w = s.do(http.MethodGet, "/api/v1/plans/"+plan.PlanID+"/documents", domain.RoleReception, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var docs dto.ListDocumentsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &docs))
	s.Require().Len(docs.Documents, 1)
	s.Equal(result.Document.DocumentID, docs.Documents[0].DocumentID)

	// Local storage cannot presign, so the content is streamed.
	w = s.do(http.MethodGet, "/api/v1/documents/"+docs.Documents[0].DocumentID+"/download", domain.RoleReception, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "PL-17")
	s.Contains(w.Header().Get("Content-Disposition"), "attachment")
}

func (s *HandlerTestSuite) TestAvailableActions_ByRole() {
	plan := s.createPlan()
	w := s.do(http.MethodGet, "/api/v1/plans/"+plan.PlanID+"/actions", domain.RolePlanning, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var actions []dto.TransitionRowResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &actions))
	s.Require().Len(actions, 1)
	s.Equal(string(workflow.ActionStartReview), actions[0].Action)

	w = s.do(http.MethodGet, "/api/v1/plans/"+plan.PlanID+"/actions", domain.RoleDirector, nil)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &actions))
	s.Empty(actions)
}

func (s *HandlerTestSuite) TestTransitionsTable() {
	w := s.do(http.MethodGet, "/api/v1/transitions", domain.RoleClient, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var rows []dto.TransitionRowResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &rows))
	s.Len(rows, len(workflow.DefaultTransitions))
}

func (s *HandlerTestSuite) TestAssignReference() {
	plan := s.createPlan()

	w := s.do(http.MethodPut, "/api/v1/plans/"+plan.PlanID+"/reference", domain.RoleReception, dto.AssignReferenceRequest{ReferenceNo: "REF-1"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, "/api/v1/plans/"+plan.PlanID+"/reference", domain.RolePlanning, dto.AssignReferenceRequest{ReferenceNo: "REF-1"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated dto.PlanResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	s.Require().NotNil(updated.ReferenceNo)
	s.Equal("REF-1", *updated.ReferenceNo)

	w = s.do(http.MethodPut, "/api/v1/plans/"+plan.PlanID+"/reference", domain.RolePlanning, dto.AssignReferenceRequest{ReferenceNo: "REF-2"})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(apperrors.KindConflict, decodeError(w).ErrorKind)
}

func (s *HandlerTestSuite) TestLogin() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "user-Director", Password: testPassword})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var res dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Equal(string(domain.RoleDirector), res.Role)

	claims, err := utils.ParseAndValidateJWT(res.Token, s.cfg.JWTSecret)
	s.Require().NoError(err)
	s.Equal(s.users[domain.RoleDirector].UserID, claims.Subject)
	s.Equal(string(domain.RoleDirector), claims.Role)

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "user-Director", Password: "wrong-password"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestPreferences() {
	w := s.do(http.MethodGet, "/api/v1/users/me/preferences", domain.RoleCommittee, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var pref dto.PreferencesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pref))
	s.True(pref.EmailNotificationsEnabled)
	s.True(pref.SMSNotificationsEnabled)

	off := false
	w = s.do(http.MethodPut, "/api/v1/users/me/preferences", domain.RoleCommittee, dto.UpdatePreferencesRequest{EmailNotificationsEnabled: &off})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/users/me/preferences", domain.RoleCommittee, nil)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pref))
	s.False(pref.EmailNotificationsEnabled)
	s.True(pref.SMSNotificationsEnabled)
}

func (s *HandlerTestSuite) TestCreateUser() {
	body := dto.CreateUserRequest{Username: "new-structural", Password: testPassword, Name: "S", Role: "Structural"}
	w := s.do(http.MethodPost, "/api/v1/users", domain.RoleClient, body)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/users", domain.RolePlanning, body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/users", domain.RolePlanning, body)
	s.Equal(http.StatusConflict, w.Code)

	body.Username, body.Role = "bad-role", "Mayor"
	w = s.do(http.MethodPost, "/api/v1/users", domain.RolePlanning, body)
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
