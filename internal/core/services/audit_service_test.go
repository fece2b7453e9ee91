package services_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/core/services"
	"github.com/SscSPs/plan_approval_app/internal/repositories/memory"
	"github.com/SscSPs/plan_approval_app/internal/storage"
	"github.com/stretchr/testify/suite"
)

type AuditServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	files   storage.FileStorage
	service portssvc.AuditSvc
}

func (suite *AuditServiceTestSuite) SetupTest() {
	var err error
	suite.store = memory.NewStore()
	suite.files, err = storage.NewLocalStorage(suite.T().TempDir())
	suite.Require().NoError(err)
	suite.service = services.NewAuditService(suite.store, suite.store, suite.files)

	ctx := context.Background()
	suite.Require().NoError(suite.store.SavePlan(ctx, domain.Plan{PlanID: "p1", Status: domain.StatusSubmitted}))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.store.ApplyStatusChange(ctx, domain.StatusChange{
		PlanID: "p1", ExpectedStatus: domain.StatusSubmitted, NewStatus: domain.StatusUnderReviewPlanning,
		Log: domain.LogEntry{LogID: "l1", PlanID: "p1", Action: "Start Review", Timestamp: base},
	}))
	suite.Require().NoError(suite.store.ApplyStatusChange(ctx, domain.StatusChange{
		PlanID: "p1", ExpectedStatus: domain.StatusUnderReviewPlanning, NewStatus: domain.StatusUnderReviewDirector,
		Log:      domain.LogEntry{LogID: "l2", PlanID: "p1", Action: "Forward to Director", Timestamp: base.Add(time.Hour)},
		Document: &domain.Document{DocumentID: "d1", PlanID: "p1", Name: "letter", FilePath: "plans/p1/letter.txt", DocumentType: domain.DocumentGenerated},
	}))
	suite.Require().NoError(suite.files.PutObject(ctx, "plans/p1/letter.txt", "text/plain", []byte("hello")))
}

func (suite *AuditServiceTestSuite) TestListLogsByPlan_Ordered() {
	logs, err := suite.service.ListLogsByPlan(context.Background(), "p1")

	suite.Require().NoError(err)
	suite.Require().Len(logs, 2)
	suite.Equal("l1", logs[0].LogID)
	suite.Equal("l2", logs[1].LogID)
}

func (suite *AuditServiceTestSuite) TestListLogsByPlan_UnknownPlan() {
	_, err := suite.service.ListLogsByPlan(context.Background(), "nope")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AuditServiceTestSuite) TestListDocumentsByPlan() {
	docs, err := suite.service.ListDocumentsByPlan(context.Background(), "p1")

	suite.Require().NoError(err)
	suite.Require().Len(docs, 1)
	suite.Equal("d1", docs[0].DocumentID)
}

func (suite *AuditServiceTestSuite) TestDownload_LocalStreamsContent() {
	ctx := context.Background()

	doc, url, err := suite.service.GetDocumentDownloadURL(ctx, "d1")
	suite.Require().NoError(err)
	suite.Equal("d1", doc.DocumentID)
	suite.Empty(url)

	_, r, err := suite.service.OpenDocument(ctx, "d1")
	suite.Require().NoError(err)
	defer r.Close()
	body, err := io.ReadAll(r)
	suite.Require().NoError(err)
	suite.Equal("hello", string(body))
}

func (suite *AuditServiceTestSuite) TestDownload_UnknownDocument() {
	_, _, err := suite.service.OpenDocument(context.Background(), "nope")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
