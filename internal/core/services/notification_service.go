package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/metrics"
	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrDeliveryFailed is returned by Notify when at least one attempted delivery failed.
var ErrDeliveryFailed = errors.New("notification delivery failed")

var channels = []domain.Channel{domain.ChannelEmail, domain.ChannelSMS}

// notificationService is the bridge between committed transitions and message transports
type notificationService struct {
	BaseService
	cfg         config.NotificationConfig
	userRepo    portsrepo.UserRepositoryFacade
	messageRepo portsrepo.MessageRepositoryFacade
	transport   portssvc.MessageTransport
	now         func() time.Time
}

// NewNotificationService creates the notification bridge. cfg replaces any global switches.
func NewNotificationService(cfg config.NotificationConfig, userRepo portsrepo.UserRepositoryFacade, messageRepo portsrepo.MessageRepositoryFacade, transport portssvc.MessageTransport) portssvc.NotifierSvc {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &notificationService{
		cfg:         cfg,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		transport:   transport,
		now:         time.Now,
	}
}

var _ portssvc.NotifierSvc = (*notificationService)(nil)

func (s *notificationService) Notify(ctx context.Context, req domain.NotificationRequest) error {
	logger := s.GetLogger(ctx).With(slog.String("template", req.TemplateBase), slog.String("target_kind", string(req.Target.Kind)))

	recipients, err := s.resolveTarget(ctx, req.Target)
	if err != nil {
		logger.Error("Failed to resolve notification target", slog.String("error", err.Error()))
		return fmt.Errorf("failed to resolve notification target: %w", err)
	}
	if len(recipients) == 0 {
		logger.Warn("Notification target resolved to no users")
		return nil
	}

	templates := make(map[domain.Channel]*domain.MessageTemplate, len(channels))
	for _, ch := range channels {
		name := ch.TemplateName(req.TemplateBase)
		tmpl, err := s.messageRepo.FindMessageTemplateByName(ctx, name)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error("Failed to load message template", slog.String("name", name), slog.String("error", err.Error()))
			} else {
				logger.Warn("Message template missing", slog.String("name", name))
			}
			continue
		}
		templates[ch] = tmpl
	}

	var attempted, failed atomic.Int32
	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Workers)
	for _, user := range recipients {
		g.Go(func() error {
			pref := s.loadPreference(ctx, user.UserID)
			for _, ch := range channels {
				status := s.deliver(ctx, user, pref, ch, templates[ch], req.Substitutions)
				switch status {
				case domain.MessageDelivered:
					attempted.Add(1)
				case domain.MessageFailed:
					attempted.Add(1)
					failed.Add(1)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		logger.Warn("Some notifications failed", slog.Int("failed", int(n)), slog.Int("attempted", int(attempted.Load())))
		return fmt.Errorf("%w: %d of %d deliveries", ErrDeliveryFailed, n, attempted.Load())
	}
	logger.Debug("Notification processed", slog.Int("recipients", len(recipients)), slog.Int("delivered", int(attempted.Load())))
	return ctx.Err()
}

func (s *notificationService) resolveTarget(ctx context.Context, target domain.NotificationTarget) ([]domain.User, error) {
	switch target.Kind {
	case domain.TargetUser:
		user, err := s.userRepo.FindUserByID(ctx, target.UserID)
		if err != nil {
			return nil, err
		}
		return []domain.User{*user}, nil
	case domain.TargetRole:
		return s.userRepo.ListUsersByRole(ctx, target.Role)
	case domain.TargetAllUsers:
		return s.userRepo.ListUsers(ctx)
	}
	return nil, apperrors.NewValidationError(fmt.Sprintf("unknown notification target kind %q", target.Kind))
}

// loadPreference returns nil (all channels enabled) when the user never saved preferences.
func (s *notificationService) loadPreference(ctx context.Context, userID string) *domain.UserPreference {
	pref, err := s.userRepo.FindUserPreference(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load user preferences, using defaults", slog.String("user_id", userID))
		}
		return nil
	}
	return pref
}

func (s *notificationService) channelEnabled(ch domain.Channel) bool {
	switch ch {
	case domain.ChannelEmail:
		return s.cfg.EmailEnabled
	case domain.ChannelSMS:
		return s.cfg.SMSEnabled
	}
	return false
}

// deliver sends one channel to one user and records the outcome.
func (s *notificationService) deliver(ctx context.Context, user domain.User, pref *domain.UserPreference, ch domain.Channel, tmpl *domain.MessageTemplate, subs []domain.Substitution) domain.MessageStatus {
	address := user.Email
	if ch == domain.ChannelSMS {
		address = user.Phone
	}
	entry := domain.MessageLog{
		MessageLogID: uuid.NewString(),
		Recipient:    address,
		Channel:      ch,
	}
	if entry.Recipient == "" {
		entry.Recipient = user.Username
	}

	switch {
	case !s.channelEnabled(ch):
		entry.Status = domain.MessageSkippedChannelOff
		entry.Detail = string(ch) + " notifications are disabled"
	case !pref.ChannelEnabled(ch):
		entry.Status = domain.MessageSkippedDisabled
		entry.Detail = "user disabled " + string(ch) + " notifications"
	case tmpl == nil:
		entry.Status = domain.MessageSkippedNoTemplate
		entry.Detail = "no " + string(ch) + " template"
		s.LogWarn(ctx, "Skipping delivery without template", slog.String("user_id", user.UserID), slog.String("channel", string(ch)))
	case address == "":
		entry.Status = domain.MessageSkippedNoContact
		entry.Detail = "user has no " + string(ch) + " contact"
		s.LogWarn(ctx, "Skipping delivery without contact", slog.String("user_id", user.UserID), slog.String("channel", string(ch)))
	default:
		userSubs := append(append([]domain.Substitution{}, subs...), domain.Substitution{Key: "recipientName", Value: user.Name})
		entry.Body = RenderPlaceholders(tmpl.Body, userSubs)
		if ch == domain.ChannelEmail {
			entry.Subject = RenderPlaceholders(tmpl.Subject, userSubs)
		}
		entry.Status, entry.Detail = s.send(ctx, ch, address, entry.Subject, entry.Body)
	}

	entry.CreatedAt = s.now()
	if err := s.messageRepo.SaveMessageLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record message log", slog.String("user_id", user.UserID), slog.String("channel", string(ch)))
	}
	metrics.NotificationMessages.WithLabelValues(string(ch), string(entry.Status)).Inc()
	return entry.Status
}

func (s *notificationService) send(ctx context.Context, ch domain.Channel, address, subject, body string) (domain.MessageStatus, string) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	var err error
	if ch == domain.ChannelEmail {
		err = s.transport.SendEmail(ctx, address, subject, body)
	} else {
		err = s.transport.SendSMS(ctx, address, body)
	}
	if err != nil {
		s.LogError(ctx, err, "Message delivery failed", slog.String("channel", string(ch)))
		return domain.MessageFailed, err.Error()
	}
	return domain.MessageDelivered, ""
}
