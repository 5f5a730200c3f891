package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"app/internal/model"
)

// LeadListParams narrows a lead listing. Status, Industry and Country are
// exact matches; Search is a substring match across full_name, company and
// email.
type LeadListParams struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	Industry string
	Country  string
}

type LeadRepository interface {
	InsertBatch(ctx context.Context, leads []model.Lead) error
	List(ctx context.Context, userID string, p LeadListParams) ([]model.Lead, int, error)
	GetByID(ctx context.Context, userID, leadID string) (*model.Lead, error)
	GetByIDs(ctx context.Context, userID string, leadIDs []string) ([]model.Lead, error)
	UpdateStatus(ctx context.Context, userID, leadID, status string) (bool, error)
	BulkDelete(ctx context.Context, userID string, leadIDs []string) (int64, error)
}

type leadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `id, user_id, full_name, job_title, company, country, industry, email, phone, linkedin, experience, company_size, language, lead_score, source, status, tags, date_added, created_at`

func (r *leadRepository) InsertBatch(ctx context.Context, leads []model.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES `
	args := make([]interface{}, 0, len(leads)*19)
	placeholders := make([]string, 0, len(leads))
	for i, l := range leads {
		base := i * 19
		ph := make([]string, 19)
		for j := range ph {
			ph[j] = "$" + strconv.Itoa(base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ", ")+")")
		tags, err := json.Marshal(l.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal lead tags: %w", err)
		}
		args = append(args,
			l.ID, l.UserID, l.FullName, l.JobTitle, l.Company, l.Country, l.Industry,
			l.Email, l.Phone, l.LinkedIn, l.Experience, l.CompanySize, l.Language,
			l.LeadScore, l.Source, l.Status, tags, l.DateAdded, l.CreatedAt,
		)
	}
	query += strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert leads: %w", err)
	}
	return nil
}

func (r *leadRepository) List(ctx context.Context, userID string, p LeadListParams) ([]model.Lead, int, error) {
	where := []string{"user_id = $1"}
	args := []interface{}{userID}

	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addFilter("status", p.Status)
	addFilter("industry", p.Industry)
	addFilter("country", p.Country)

	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(full_name ILIKE $%d OR company ILIKE $%d OR email ILIKE $%d)", n, n, n))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM leads WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	offset := (p.Page - 1) * p.Limit
	args = append(args, p.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE %s
		ORDER BY date_added DESC
		LIMIT $%d OFFSET $%d
	`, leadColumns, whereClause, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (r *leadRepository) GetByID(ctx context.Context, userID, leadID string) (*model.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, leadID, userID)
	lead, err := scanLead(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan lead row: %w", err)
	}
	return lead, nil
}

func (r *leadRepository) GetByIDs(ctx context.Context, userID string, leadIDs []string) ([]model.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE user_id = $1 AND id = ANY($2)
		ORDER BY date_added DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, leadIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads by ids: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

func (r *leadRepository) UpdateStatus(ctx context.Context, userID, leadID, status string) (bool, error) {
	query := `UPDATE leads SET status = $1 WHERE id = $2 AND user_id = $3`
	res, err := r.db.ExecContext(ctx, query, status, leadID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update lead status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *leadRepository) BulkDelete(ctx context.Context, userID string, leadIDs []string) (int64, error) {
	query := `DELETE FROM leads WHERE user_id = $1 AND id = ANY($2)`
	res, err := r.db.ExecContext(ctx, query, userID, leadIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leads: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*model.Lead, error) {
	var l model.Lead
	var tags []byte
	if err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.FullName,
		&l.JobTitle,
		&l.Company,
		&l.Country,
		&l.Industry,
		&l.Email,
		&l.Phone,
		&l.LinkedIn,
		&l.Experience,
		&l.CompanySize,
		&l.Language,
		&l.LeadScore,
		&l.Source,
		&l.Status,
		&tags,
		&l.DateAdded,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &l.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lead tags: %w", err)
		}
	}
	return &l, nil
}

func scanLeads(rows *sql.Rows) ([]model.Lead, error) {
	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return leads, nil
}
