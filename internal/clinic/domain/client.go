package domain

import "time"

type ClientStatus string

const (
	ClientOpen   ClientStatus = "Open"
	ClientClosed ClientStatus = "Closed"
)

// Client is a case record. A client is assigned to at most one therapist;
// AssignedTherapistID is empty when unassigned.
type Client struct {
	ID                     string
	Name                   string
	Age                    int
	Gender                 string
	ContactNo              string
	AddressCity            string
	CaseType               string
	AssignedTherapistID    string
	Status                 ClientStatus
	CaseHistoryDocument    string
	SessionSummaryDocument string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ClientScope restricts which client rows a query may return. A nil
// TherapistID means no restriction. The scope is applied in SQL, not by
// filtering rows after the fact.
type ClientScope struct {
	TherapistID *string
}
