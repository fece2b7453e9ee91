package mapping

import (
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		Email:        emptyToNull(d.Email),
		Phone:        emptyToNull(d.Phone),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		Email:        m.Email.String,
		Phone:        m.Phone.String,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

func ToModelUserPreference(d domain.UserPreference) models.UserPreference {
	return models.UserPreference{
		UserID:                    d.UserID,
		EmailNotificationsEnabled: toNullBool(d.EmailNotificationsEnabled),
		SMSNotificationsEnabled:   toNullBool(d.SMSNotificationsEnabled),
	}
}

func ToDomainUserPreference(m models.UserPreference) domain.UserPreference {
	return domain.UserPreference{
		UserID:                    m.UserID,
		EmailNotificationsEnabled: fromNullBool(m.EmailNotificationsEnabled),
		SMSNotificationsEnabled:   fromNullBool(m.SMSNotificationsEnabled),
	}
}
