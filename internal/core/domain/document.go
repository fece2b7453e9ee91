package domain

import "time"

// DocumentType distinguishes system-generated artifacts from user uploads.
type DocumentType string

const (
	DocumentGenerated DocumentType = "Generated"
	DocumentUploaded  DocumentType = "Uploaded"
)

// DocumentKind selects which generator produces the artifact for a transition.
type DocumentKind string

const (
	DocumentNone                DocumentKind = ""
	DocumentApprovalLetter      DocumentKind = "ApprovalLetter"
	DocumentApprovalCertificate DocumentKind = "ApprovalCertificate"
	DocumentRejectionLetter     DocumentKind = "RejectionLetter"
	DocumentDeferralLetter      DocumentKind = "DeferralLetter"
)

// Document is an artifact owned by a plan.
type Document struct {
	DocumentID   string       `json:"documentID"`
	PlanID       string       `json:"planID"`
	Name         string       `json:"name"`
	FilePath     string       `json:"filePath"`
	DocumentType DocumentType `json:"documentType"`
	Attached     bool         `json:"attached"`
	CreatedAt    time.Time    `json:"createdAt"`
}
