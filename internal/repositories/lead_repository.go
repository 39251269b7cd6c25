package repositories

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadRepository{db: db}
}

const leadColumns = `
	id, uuid, name, email, phone, college, branch, domain, status,
	team_assigned_id, handler_id, owner_id, is_self_gen,
	up_front_fee, remaining_fee, ticket_amount, referred_by, comment,
	assigned_at, created_at
`

func scanLead(row interface{ Scan(...any) error }) (*models.Lead, error) {
	l := &models.Lead{}
	var status string
	if err := row.Scan(
		&l.ID, &l.UUID, &l.Name, &l.Email, &l.Phone, &l.College, &l.Branch, &l.Domain, &status,
		&l.TeamAssignedID, &l.HandlerID, &l.OwnerID, &l.IsSelfGen,
		&l.UpFrontFee, &l.RemainingFee, &l.TicketAmount, &l.ReferredBy, &l.Comment,
		&l.AssignedAt, &l.CreatedAt,
	); err != nil {
		return nil, err
	}
	l.Status = authz.Status(status)
	return l, nil
}

func (r *LeadRepository) Create(lead *models.Lead) error {
	const query = `
		INSERT INTO leads (uuid, name, email, phone, college, branch, domain, status,
			owner_id, is_self_gen, up_front_fee, remaining_fee, ticket_amount,
			referred_by, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id
	`
	return r.db.QueryRow(query,
		lead.UUID, lead.Name, lead.Email, lead.Phone, lead.College, lead.Branch, lead.Domain,
		string(lead.Status), lead.OwnerID, lead.IsSelfGen,
		lead.UpFrontFee, lead.RemainingFee, lead.TicketAmount,
		lead.ReferredBy, lead.Comment, lead.CreatedAt,
	).Scan(&lead.ID)
}

func (r *LeadRepository) GetByID(id int64) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1 AND deleted_at IS NULL`
	lead, err := scanLead(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return lead, err
}

func (r *LeadRepository) GetByUUID(u uuid.UUID) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE uuid=$1 AND deleted_at IS NULL`
	lead, err := scanLead(r.db.QueryRow(query, u))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return lead, err
}

// UpdateEditable writes the post-assignment editable fields only.
// Assignment ids, owner and status move through their own paths.
func (r *LeadRepository) UpdateEditable(lead *models.Lead) error {
	const query = `
		UPDATE leads
		SET name=$1, email=$2, phone=$3, college=$4, branch=$5, domain=$6,
			up_front_fee=$7, remaining_fee=$8, ticket_amount=$9,
			referred_by=$10, comment=$11
		WHERE id=$12 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(query,
		lead.Name, lead.Email, lead.Phone, lead.College, lead.Branch, lead.Domain,
		lead.UpFrontFee, lead.RemainingFee, lead.TicketAmount,
		lead.ReferredBy, lead.Comment, lead.ID,
	)
	return err
}

func (r *LeadRepository) UpdateStatus(id int64, status authz.Status) (int64, error) {
	const query = `UPDATE leads SET status=$1 WHERE id=$2 AND deleted_at IS NULL`
	res, err := r.db.Exec(query, string(status), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SoftDelete removes an unassigned lead from the active set. Leads in
// team custody are skipped; the returned count is authoritative.
func (r *LeadRepository) SoftDelete(u uuid.UUID) (int64, error) {
	const query = `
		UPDATE leads SET deleted_at=NOW()
		WHERE uuid=$1 AND team_assigned_id IS NULL AND deleted_at IS NULL
	`
	res, err := r.db.Exec(query, u)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AssignTeam moves UNASSIGNED rows into team custody. Rows already in
// custody (or deleted) are skipped, so the returned count may be
// lower than len(ids).
func (r *LeadRepository) AssignTeam(ids []int64, teamID int64, at time.Time) (int64, error) {
	const query = `
		UPDATE leads SET team_assigned_id=$1, assigned_at=$2
		WHERE id = ANY($3) AND team_assigned_id IS NULL AND deleted_at IS NULL
	`
	res, err := r.db.Exec(query, teamID, at, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AssignMember hands TEAM_ASSIGNED rows of the given team to a
// handler. Rows outside the team or already handled are skipped.
func (r *LeadRepository) AssignMember(ids []int64, memberID, teamID int64) (int64, error) {
	const query = `
		UPDATE leads SET handler_id=$1
		WHERE id = ANY($2) AND team_assigned_id=$3 AND handler_id IS NULL AND deleted_at IS NULL
	`
	res, err := r.db.Exec(query, memberID, pq.Array(ids), teamID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SelfAssign lets a team member claim unhandled rows. An UNASSIGNED
// row gains team custody in the same statement so handler-implies-team
// always holds.
func (r *LeadRepository) SelfAssign(ids []int64, memberID, teamID int64, at time.Time) (int64, error) {
	const query = `
		UPDATE leads
		SET handler_id=$1,
			team_assigned_id=COALESCE(team_assigned_id, $2),
			assigned_at=COALESCE(assigned_at, $3)
		WHERE id = ANY($4) AND handler_id IS NULL AND deleted_at IS NULL
			AND (team_assigned_id=$2 OR team_assigned_id IS NULL)
	`
	res, err := r.db.Exec(query, memberID, teamID, at, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Unassign returns a lead to the unassigned pool, clearing both
// custody ids and the assignment timestamp.
func (r *LeadRepository) Unassign(u uuid.UUID) (int64, error) {
	const query = `
		UPDATE leads
		SET team_assigned_id=NULL, handler_id=NULL, assigned_at=NULL
		WHERE uuid=$1 AND team_assigned_id IS NOT NULL AND deleted_at IS NULL
	`
	res, err := r.db.Exec(query, u)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List applies the filter and returns one page plus the total row
// count for the same predicate.
func (r *LeadRepository) List(f models.LeadFilter) ([]models.Lead, int, error) {
	where := " WHERE deleted_at IS NULL"
	args := []interface{}{}
	i := 1

	if f.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, string(*f.Status))
		i++
	}
	if f.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", i, i, i)
		args = append(args, "%"+f.Search+"%")
		i++
	}
	if f.Day != "" {
		where += fmt.Sprintf(" AND created_at::date = $%d", i)
		args = append(args, f.Day)
		i++
	}
	if f.TeamID != nil {
		where += fmt.Sprintf(" AND team_assigned_id = $%d", i)
		args = append(args, *f.TeamID)
		i++
	}
	if f.HandlerID != nil {
		where += fmt.Sprintf(" AND handler_id = $%d", i)
		args = append(args, *f.HandlerID)
		i++
	}
	if f.OwnerID != nil {
		where += fmt.Sprintf(" AND owner_id = $%d", i)
		args = append(args, *f.OwnerID)
		i++
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM leads`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + leadColumns + ` FROM leads` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *l)
	}
	return out, total, rows.Err()
}

// ListBetween returns active leads created inside the inclusive
// calendar-day window, for analytics rollups.
func (r *LeadRepository) ListBetween(fromDate, toDate string) ([]models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE deleted_at IS NULL AND created_at::date BETWEEN $1 AND $2
		ORDER BY created_at`
	rows, err := r.db.Query(query, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// ExistingContacts returns the emails and phones already present
// among active leads, for upload dedupe.
func (r *LeadRepository) ExistingContacts(emails, phones []string) (map[string]bool, map[string]bool, error) {
	const query = `
		SELECT email, phone FROM leads
		WHERE deleted_at IS NULL AND (email = ANY($1) OR phone = ANY($2))
	`
	rows, err := r.db.Query(query, pq.Array(emails), pq.Array(phones))
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	seenEmail := map[string]bool{}
	seenPhone := map[string]bool{}
	for rows.Next() {
		var e, p string
		if err := rows.Scan(&e, &p); err != nil {
			return nil, nil, err
		}
		if e != "" {
			seenEmail[e] = true
		}
		if p != "" {
			seenPhone[p] = true
		}
	}
	return seenEmail, seenPhone, rows.Err()
}

// InsertBatch inserts uploaded leads in one transaction.
func (r *LeadRepository) InsertBatch(leads []models.Lead) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO leads (uuid, name, email, phone, college, branch, domain, status,
			owner_id, is_self_gen, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	for _, l := range leads {
		if _, err := tx.Exec(query,
			l.UUID, l.Name, l.Email, l.Phone, l.College, l.Branch, l.Domain,
			string(l.Status), l.OwnerID, l.IsSelfGen, l.CreatedAt,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
