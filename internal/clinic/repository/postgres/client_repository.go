package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

type ClientRepository struct {
	db DB
}

func NewClientRepository(db DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, name, age, gender, contact_no, address_city, case_type,
	assigned_therapist_id, status, case_history_document, session_summary_document,
	created_at, updated_at`

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO clients (id, name, age, gender, contact_no, address_city, case_type,
			assigned_therapist_id, status, case_history_document, session_summary_document,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.Name, c.Age, c.Gender, c.ContactNo, c.AddressCity, c.CaseType,
		nullableID(c.AssignedTherapistID), string(c.Status), c.CaseHistoryDocument,
		c.SessionSummaryDocument, c.CreatedAt, c.UpdatedAt)
	if isPgError(err, codeForeignKeyViolation) {
		return fmt.Errorf("%w: unknown therapist", apperrors.ErrInvalidRequest)
	}
	return err
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE id = $1
		LIMIT 1`, id)

	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE clients
		SET name = $1, age = $2, gender = $3, contact_no = $4, address_city = $5,
			case_type = $6, assigned_therapist_id = $7, status = $8,
			case_history_document = $9, session_summary_document = $10, updated_at = $11
		WHERE id = $12`,
		c.Name, c.Age, c.Gender, c.ContactNo, c.AddressCity, c.CaseType,
		nullableID(c.AssignedTherapistID), string(c.Status), c.CaseHistoryDocument,
		c.SessionSummaryDocument, c.UpdatedAt, c.ID)
	if isPgError(err, codeForeignKeyViolation) {
		return fmt.Errorf("%w: unknown therapist", apperrors.ErrInvalidRequest)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) UpdateDocuments(ctx context.Context, id, caseHistoryDoc, sessionSummaryDoc string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE clients
		SET case_history_document = $1, session_summary_document = $2, updated_at = now()
		WHERE id = $3`, caseHistoryDoc, sessionSummaryDoc, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List applies the caller's scope inside the query; an unrestricted scope
// lists everything.
func (r *ClientRepository) List(ctx context.Context, scope domain.ClientScope) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients`
	var args []any
	if scope.TherapistID != nil {
		query += ` WHERE assigned_therapist_id = $1`
		args = append(args, *scope.TherapistID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var (
		c           domain.Client
		therapistID sql.NullString
		status      string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Age, &c.Gender, &c.ContactNo, &c.AddressCity,
		&c.CaseType, &therapistID, &status, &c.CaseHistoryDocument,
		&c.SessionSummaryDocument, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.AssignedTherapistID = therapistID.String
	c.Status = domain.ClientStatus(status)
	return &c, nil
}

// nullableID maps an empty assignment to SQL NULL so the foreign key stays
// honest.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
