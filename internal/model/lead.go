package model

import (
	"time"
)

// LeadStatus is the lifecycle status of a captured lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusLost      LeadStatus = "lost"
)

// Lead is the structured record handed to the CRM when contact information
// is captured from free text.
type Lead struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Status    LeadStatus `json:"status"`

	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`

	Industry     string       `json:"industry,omitempty"`
	CustomerType CustomerType `json:"customer_type"`
	Urgency      Urgency      `json:"urgency"`

	EngagementScore    float64 `json:"engagement_score"`
	QualificationScore float64 `json:"qualification_score"`

	Objections []string `json:"objections,omitempty"`
	Interests  []string `json:"interests,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeadNote is an annotation attached to a lead.
type LeadNote struct {
	LeadID    string    `json:"lead_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLeadsResponse is the response for listing captured leads.
type ListLeadsResponse struct {
	Leads []Lead `json:"leads"`
	Total int    `json:"total"`
}
