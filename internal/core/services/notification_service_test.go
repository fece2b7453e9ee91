package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/core/services"
	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/SscSPs/plan_approval_app/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	store     *memory.Store
	transport *MockTransport
	cfg       config.NotificationConfig
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.transport = new(MockTransport)
	suite.cfg = config.NotificationConfig{EmailEnabled: true, SMSEnabled: true, Timeout: time.Second, Workers: 2}

	ctx := context.Background()
	suite.Require().NoError(suite.store.SaveMessageTemplate(ctx, domain.MessageTemplate{
		TemplateID: "t1", Name: "PlanForwarded_Email",
		Subject: "Plan {plotNo} forwarded", Body: "Dear {recipientName}, plan {plotNo} ({referenceNo}) is now {status}.",
	}))
	suite.Require().NoError(suite.store.SaveMessageTemplate(ctx, domain.MessageTemplate{
		TemplateID: "t2", Name: "PlanForwarded_SMS", Body: "Plan {plotNo}: {status}",
	}))
}

func (suite *NotificationServiceTestSuite) service() portssvc.NotifierSvc {
	return services.NewNotificationService(suite.cfg, suite.store, suite.store, suite.transport)
}

func (suite *NotificationServiceTestSuite) addUser(id string, role domain.Role, email, phone string) {
	suite.Require().NoError(suite.store.SaveUser(context.Background(), domain.User{
		UserID: id, Username: id, Name: "User " + id, Role: role, Email: email, Phone: phone,
	}))
}

func (suite *NotificationServiceTestSuite) logsFor(recipient string) map[domain.Channel]domain.MessageLog {
	logs, err := suite.store.ListMessageLogsByRecipient(context.Background(), recipient)
	suite.Require().NoError(err)
	out := make(map[domain.Channel]domain.MessageLog, len(logs))
	for _, l := range logs {
		out[l.Channel] = l
	}
	return out
}

func forwarded(target domain.NotificationTarget) domain.NotificationRequest {
	return domain.NotificationRequest{
		Target:       target,
		TemplateBase: "PlanForwarded",
		Substitutions: []domain.Substitution{
			{Key: "plotNo", Value: "A-12"},
			{Key: "status", Value: "Under Review (Director)"},
		},
	}
}

func (suite *NotificationServiceTestSuite) TestNotify_DeliversAndRenders() {
	suite.addUser("d1", domain.RoleDirector, "d1@example.org", "+15550101")
	suite.transport.On("SendEmail", mock.Anything, "d1@example.org", "Plan A-12 forwarded",
		"Dear User d1, plan A-12 (N/A) is now Under Review (Director).").Return(nil).Once()
	suite.transport.On("SendSMS", mock.Anything, "+15550101", "Plan A-12: Under Review (Director)").Return(nil).Once()

	err := suite.service().Notify(context.Background(), forwarded(domain.RoleTarget(domain.RoleDirector)))

	suite.Require().NoError(err)
	suite.Equal(domain.MessageDelivered, suite.logsFor("d1@example.org")[domain.ChannelEmail].Status)
	suite.Equal(domain.MessageDelivered, suite.logsFor("+15550101")[domain.ChannelSMS].Status)
	suite.transport.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotify_EmailDisabledByUserIsSkipped() {
	ctx := context.Background()
	suite.addUser("d1", domain.RoleDirector, "d1@example.org", "+15550101")
	disabled := false
	suite.Require().NoError(suite.store.SaveUserPreference(ctx, domain.UserPreference{UserID: "d1", EmailNotificationsEnabled: &disabled}))
	suite.transport.On("SendSMS", mock.Anything, "+15550101", mock.Anything).Return(nil).Once()

	err := suite.service().Notify(ctx, forwarded(domain.UserTarget("d1")))

	suite.Require().NoError(err)
	logs, _ := suite.store.ListMessageLogsByRecipient(ctx, "d1@example.org")
	suite.Require().Len(logs, 1)
	suite.Equal(domain.MessageSkippedDisabled, logs[0].Status)
	for _, l := range logs {
		suite.NotEqual(domain.MessageDelivered, l.Status)
	}
	suite.transport.AssertNotCalled(suite.T(), "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestNotify_ChannelDisabledByConfig() {
	suite.cfg.SMSEnabled = false
	suite.addUser("d1", domain.RoleDirector, "d1@example.org", "+15550101")
	suite.transport.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	err := suite.service().Notify(context.Background(), forwarded(domain.UserTarget("d1")))

	suite.Require().NoError(err)
	suite.Equal(domain.MessageSkippedChannelOff, suite.logsFor("+15550101")[domain.ChannelSMS].Status)
	suite.transport.AssertNotCalled(suite.T(), "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestNotify_MissingTemplateIsSkipped() {
	suite.addUser("r1", domain.RoleReception, "r1@example.org", "+15550102")

	err := suite.service().Notify(context.Background(), domain.NotificationRequest{
		Target:       domain.UserTarget("r1"),
		TemplateBase: "PlanApproved",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.MessageSkippedNoTemplate, suite.logsFor("r1@example.org")[domain.ChannelEmail].Status)
	suite.Equal(domain.MessageSkippedNoTemplate, suite.logsFor("+15550102")[domain.ChannelSMS].Status)
	suite.transport.AssertNotCalled(suite.T(), "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestNotify_MissingContactIsSkipped() {
	suite.addUser("d1", domain.RoleDirector, "d1@example.org", "")
	suite.transport.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	err := suite.service().Notify(context.Background(), forwarded(domain.UserTarget("d1")))

	suite.Require().NoError(err)
	suite.Equal(domain.MessageSkippedNoContact, suite.logsFor("d1")[domain.ChannelSMS].Status)
}

func (suite *NotificationServiceTestSuite) TestNotify_TransportFailure() {
	suite.addUser("d1", domain.RoleDirector, "d1@example.org", "+15550101")
	suite.transport.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
	suite.transport.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	err := suite.service().Notify(context.Background(), forwarded(domain.UserTarget("d1")))

	suite.ErrorIs(err, services.ErrDeliveryFailed)
	email := suite.logsFor("d1@example.org")[domain.ChannelEmail]
	suite.Equal(domain.MessageFailed, email.Status)
	suite.Equal("smtp down", email.Detail)
	suite.Equal(domain.MessageDelivered, suite.logsFor("+15550101")[domain.ChannelSMS].Status)
}

func (suite *NotificationServiceTestSuite) TestNotify_BroadcastReachesEveryone() {
	suite.addUser("d1", domain.RoleDirector, "d1@example.org", "")
	suite.addUser("p1", domain.RolePlanning, "p1@example.org", "")
	suite.addUser("c1", domain.RoleCommittee, "c1@example.org", "")
	suite.transport.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(3)

	err := suite.service().Notify(context.Background(), forwarded(domain.BroadcastTarget()))

	suite.Require().NoError(err)
	for _, addr := range []string{"d1@example.org", "p1@example.org", "c1@example.org"} {
		suite.Equal(domain.MessageDelivered, suite.logsFor(addr)[domain.ChannelEmail].Status, addr)
	}
	suite.transport.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotify_UnknownUser() {
	err := suite.service().Notify(context.Background(), forwarded(domain.UserTarget("ghost")))

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *NotificationServiceTestSuite) TestNotify_EmptyRoleIsNotAnError() {
	err := suite.service().Notify(context.Background(), forwarded(domain.RoleTarget(domain.RoleCommittee)))

	suite.NoError(err)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
