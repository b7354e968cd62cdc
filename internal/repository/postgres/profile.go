package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"
)

const profileColumns = `id, email, name, phone, address, company, nationality, vat_number, role, password_hash, created_at`

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (id, email, name, phone, address, company, nationality, vat_number, role, password_hash, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.Name, nullString(p.Phone), nullString(p.Address),
		nullString(p.Company), nullString(p.Nationality), nullString(p.VatNumber),
		p.Role, p.PasswordHash, now)
	if err == nil {
		p.CreatedAt = now.Format(time.RFC3339)
	}
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1)`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, id string, fields repository.Fields) error {
	if len(fields) == 0 {
		return nil
	}
	setClause, args, next := buildSetClause(fields)
	query := fmt.Sprintf("UPDATE profiles SET %s WHERE id=$%d", setClause, next)
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM profiles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	var phone, address, company, nationality, vatNumber sql.NullString
	var createdAt time.Time

	err := row.Scan(&p.ID, &p.Email, &p.Name, &phone, &address, &company,
		&nationality, &vatNumber, &p.Role, &p.PasswordHash, &createdAt)
	if err != nil {
		return nil, err
	}

	p.Phone = phone.String
	p.Address = address.String
	p.Company = company.String
	p.Nationality = nationality.String
	p.VatNumber = vatNumber.String
	p.CreatedAt = createdAt.Format(time.RFC3339)
	return &p, nil
}
