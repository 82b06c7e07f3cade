package dto

import (
	"time"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
)

type ClientInput struct {
	Name                   string `json:"name" validate:"required"`
	Age                    int    `json:"age" validate:"gte=0,lte=150"`
	Gender                 string `json:"gender"`
	ContactNo              string `json:"contact_no"`
	AddressCity            string `json:"address_city"`
	CaseType               string `json:"case_type"`
	AssignedTherapistID    string `json:"assigned_therapist_id"`
	Status                 string `json:"status" validate:"omitempty,oneof=Open Closed"`
	CaseHistoryDocument    string `json:"case_history_document" validate:"omitempty,url"`
	SessionSummaryDocument string `json:"session_summary_document" validate:"omitempty,url"`
}

type ClientOutput struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Age                    int       `json:"age"`
	Gender                 string    `json:"gender"`
	ContactNo              string    `json:"contact_no"`
	AddressCity            string    `json:"address_city"`
	CaseType               string    `json:"case_type"`
	AssignedTherapistID    string    `json:"assigned_therapist_id,omitempty"`
	Status                 string    `json:"status"`
	CaseHistoryDocument    string    `json:"case_history_document,omitempty"`
	SessionSummaryDocument string    `json:"session_summary_document,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func NewClientOutput(c *domain.Client) ClientOutput {
	return ClientOutput{
		ID:                     c.ID,
		Name:                   c.Name,
		Age:                    c.Age,
		Gender:                 c.Gender,
		ContactNo:              c.ContactNo,
		AddressCity:            c.AddressCity,
		CaseType:               c.CaseType,
		AssignedTherapistID:    c.AssignedTherapistID,
		Status:                 string(c.Status),
		CaseHistoryDocument:    c.CaseHistoryDocument,
		SessionSummaryDocument: c.SessionSummaryDocument,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}
