// Package documents renders decision letters and certificates and stores them
// through a storage.FileStorage backend.
package documents

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/storage"
	"github.com/google/uuid"
)

const contentType = "text/plain; charset=utf-8"

var titles = map[domain.DocumentKind]string{
	domain.DocumentApprovalLetter:      "Approval Letter",
	domain.DocumentApprovalCertificate: "Approval Certificate",
	domain.DocumentRejectionLetter:     "Rejection Letter",
	domain.DocumentDeferralLetter:      "Deferral Letter",
}

const letterBody = `{{.Title}}
Date: {{.Date}}

Applicant: {{.Plan.ApplicantName}}
Plot No: {{.Plan.PlotNo}}
Plot Area: {{.Plan.PlotArea}} sq m
Reference No: {{if .Plan.ReferenceNo}}{{deref .Plan.ReferenceNo}}{{else}}Pending{{end}}

Decision: {{.Decision}}
{{- if .Remarks}}
Remarks: {{.Remarks}}
{{- end}}
{{if eq .Kind "ApprovalCertificate"}}
This certifies that the building plan above has been approved by the Committee
and may be collected at Reception.
{{else if eq .Kind "ApprovalLetter"}}
The building plan above has been approved and may be collected at Reception.
{{else if eq .Kind "RejectionLetter"}}
The building plan above has been rejected for the reasons stated.
{{else}}
The building plan above has been deferred pending the clarifications stated.
{{end}}`

var letterTemplate = template.Must(template.New("letter").Funcs(template.FuncMap{
	"deref": func(s *string) string { return *s },
}).Parse(letterBody))

type letterData struct {
	Title    string
	Date     string
	Kind     string
	Plan     domain.Plan
	Decision string
	Remarks  string
}

// Generator implements the document generator boundary.
type Generator struct {
	store storage.FileStorage
	now   func() time.Time
}

// NewGenerator creates a generator writing to store.
func NewGenerator(store storage.FileStorage) *Generator {
	return &Generator{store: store, now: time.Now}
}

var _ portssvc.DocumentGeneratorSvc = (*Generator)(nil)

// Generate renders the letter for kind and stores it under plans/{planID}/.
func (g *Generator) Generate(ctx context.Context, plan domain.Plan, kind domain.DocumentKind, decisionLabel, remarks string) (*portssvc.GeneratedDocument, error) {
	title, ok := titles[kind]
	if !ok {
		return nil, fmt.Errorf("no generator for document kind %q", kind)
	}

	now := g.now()
	var buf bytes.Buffer
	err := letterTemplate.Execute(&buf, letterData{
		Title:    title,
		Date:     now.Format("2006-01-02"),
		Kind:     string(kind),
		Plan:     plan,
		Decision: decisionLabel,
		Remarks:  remarks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", title, err)
	}

	key := fmt.Sprintf("plans/%s/%s_%s_%s.txt", plan.PlanID, kind, now.Format("20060102T150405"), uuid.NewString())
	if err := g.store.PutObject(ctx, key, contentType, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", title, err)
	}

	return &portssvc.GeneratedDocument{
		Name:     title + " - " + strings.TrimSpace(plan.PlotNo),
		FilePath: key,
	}, nil
}

// Discard deletes a stored letter whose transition did not commit.
func (g *Generator) Discard(ctx context.Context, filePath string) error {
	if err := g.store.DeleteObject(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete %s: %w", filePath, err)
	}
	return nil
}
