package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	"github.com/thenoobgamer12/margawellness/internal/clinic/dto"
	"github.com/thenoobgamer12/margawellness/internal/clinic/policy"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

type ClientService struct {
	repo  domain.ClientRepository
	audit AuditSink
}

func NewClientService(repo domain.ClientRepository, audit AuditSink) *ClientService {
	return &ClientService{repo: repo, audit: audit}
}

// Create adds a client record. Admin only.
func (s *ClientService) Create(ctx context.Context, acting *domain.Claims, input dto.ClientInput) (*domain.Client, error) {
	if err := policy.Authorize(acting, policy.ActionCreateClient, policy.Resource{Type: "client"}); err != nil {
		return nil, err
	}

	status := domain.ClientStatus(input.Status)
	if status == "" {
		status = domain.ClientOpen
	}

	now := time.Now()
	client := &domain.Client{
		ID:                     uuid.NewString(),
		Name:                   input.Name,
		Age:                    input.Age,
		Gender:                 input.Gender,
		ContactNo:              input.ContactNo,
		AddressCity:            input.AddressCity,
		CaseType:               input.CaseType,
		AssignedTherapistID:    input.AssignedTherapistID,
		Status:                 status,
		CaseHistoryDocument:    input.CaseHistoryDocument,
		SessionSummaryDocument: input.SessionSummaryDocument,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: acting.UserID,
		Action:      domain.AuditClientCreated,
		TargetType:  "client",
		TargetID:    client.ID,
	})

	return client, nil
}

// List returns clients visible to the caller. The role-derived scope is
// applied inside the query, so a therapist can never observe out-of-scope
// rows, not even through pagination or timing.
func (s *ClientService) List(ctx context.Context, acting *domain.Claims) ([]domain.Client, error) {
	if acting == nil || acting.Expired(time.Now()) {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.repo.List(ctx, policy.ClientScope(acting))
}

// Get returns a single record for the Admin or the assigned therapist. A
// client outside the caller's scope answers NotFound, the same as a missing
// id; list reads never reveal out-of-scope rows, so point reads must not
// confirm their existence either.
func (s *ClientService) Get(ctx context.Context, acting *domain.Claims, id string) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.ErrNotFound
	}

	res := policy.Resource{Type: "client", ID: id, OwnerTherapistID: client.AssignedTherapistID}
	if err := policy.Authorize(acting, policy.ActionReadClient, res); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

// Update applies a full edit for Admins. An assigned therapist falls back to
// the restricted document-URL subset; everything else in the input is ignored
// for them.
func (s *ClientService) Update(ctx context.Context, acting *domain.Claims, id string, input dto.ClientInput) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.ErrNotFound
	}

	res := policy.Resource{Type: "client", ID: id, OwnerTherapistID: client.AssignedTherapistID}

	if err := policy.Authorize(acting, policy.ActionUpdateClient, res); err == nil {
		status := domain.ClientStatus(input.Status)
		if status == "" {
			status = client.Status
		}
		client.Name = input.Name
		client.Age = input.Age
		client.Gender = input.Gender
		client.ContactNo = input.ContactNo
		client.AddressCity = input.AddressCity
		client.CaseType = input.CaseType
		client.AssignedTherapistID = input.AssignedTherapistID
		client.Status = status
		client.CaseHistoryDocument = input.CaseHistoryDocument
		client.SessionSummaryDocument = input.SessionSummaryDocument
		client.UpdatedAt = time.Now()

		if err := s.repo.Update(ctx, client); err != nil {
			return nil, err
		}
	} else {
		if err := policy.Authorize(acting, policy.ActionUpdateClientDocuments, res); err != nil {
			return nil, err
		}
		client.CaseHistoryDocument = input.CaseHistoryDocument
		client.SessionSummaryDocument = input.SessionSummaryDocument
		client.UpdatedAt = time.Now()

		if err := s.repo.UpdateDocuments(ctx, id, input.CaseHistoryDocument, input.SessionSummaryDocument); err != nil {
			return nil, err
		}
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: acting.UserID,
		Action:      domain.AuditClientUpdated,
		TargetType:  "client",
		TargetID:    id,
	})

	return client, nil
}

// Delete removes a client and, through the store's cascade, their
// appointments. Admin only.
func (s *ClientService) Delete(ctx context.Context, acting *domain.Claims, id string) error {
	if err := policy.Authorize(acting, policy.ActionDeleteClient, policy.Resource{Type: "client", ID: id}); err != nil {
		return err
	}

	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperrors.ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: acting.UserID,
		Action:      domain.AuditClientDeleted,
		TargetType:  "client",
		TargetID:    id,
	})

	return nil
}
