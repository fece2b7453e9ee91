// Package seed loads start-up data such as notification templates.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type templateFile struct {
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	Name    string `yaml:"name"`
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// ParseTemplatesYAML decodes a template seed payload. Names must be unique and bodies non-empty.
func ParseTemplatesYAML(data []byte) ([]domain.MessageTemplate, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("seed: template payload is empty")
	}
	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("seed: decode templates: %w", err)
	}
	seen := make(map[string]struct{}, len(file.Templates))
	out := make([]domain.MessageTemplate, 0, len(file.Templates))
	for i, entry := range file.Templates {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("seed: template %d has no name", i)
		}
		if strings.TrimSpace(entry.Body) == "" {
			return nil, fmt.Errorf("seed: template %s has an empty body", name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("seed: template %s declared twice", name)
		}
		seen[name] = struct{}{}
		out = append(out, domain.MessageTemplate{
			TemplateID: uuid.NewString(),
			Name:       name,
			Subject:    strings.TrimSpace(entry.Subject),
			Body:       strings.TrimRight(entry.Body, "\n"),
		})
	}
	return out, nil
}

// LoadTemplatesFile reads and parses a template seed file. A missing file yields no templates.
func LoadTemplatesFile(path string) ([]domain.MessageTemplate, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("seed: read %s: %w", trimmed, err)
	}
	tmpls, err := ParseTemplatesYAML(data)
	if err != nil {
		return nil, fmt.Errorf("seed: %s: %w", trimmed, err)
	}
	return tmpls, nil
}

// SeedTemplates upserts every template in path into the store and returns how many were written.
func SeedTemplates(ctx context.Context, store portsrepo.MessageTemplateStore, path string, logger *slog.Logger) (int, error) {
	tmpls, err := LoadTemplatesFile(path)
	if err != nil {
		return 0, err
	}
	if len(tmpls) == 0 {
		logger.Warn("No message templates to seed", slog.String("path", path))
		return 0, nil
	}
	for _, tmpl := range tmpls {
		if err := store.SaveMessageTemplate(ctx, tmpl); err != nil {
			return 0, fmt.Errorf("seed: save template %s: %w", tmpl.Name, err)
		}
	}
	logger.Info("Message templates seeded", slog.Int("count", len(tmpls)), slog.String("path", path))
	return len(tmpls), nil
}
