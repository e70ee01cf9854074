package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, owner_id, name, website, description, verified, rating, review_count, created_at, updated_at`

// CreateCompany inserts a new company profile
func (db *DB) CreateCompany(ctx context.Context, input *CompanyCreateInput) (*Company, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO companies (owner_id, name, website, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+companyColumns,
		input.OwnerID, input.Name, input.Website, input.Description,
	)
	company, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// GetCompanyByID retrieves a company by its ID
func (db *DB) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id,
	)
	company, err := scanCompany(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// GetCompanyByOwner retrieves the company owned by an employer
func (db *DB) GetCompanyByOwner(ctx context.Context, ownerID uuid.UUID) (*Company, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE owner_id = $1`, ownerID,
	)
	company, err := scanCompany(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company by owner: %w", err)
	}
	return company, nil
}

// UpsertReview writes a user's review of a company (one review per user per
// company) and recomputes the company's mean rating in the same transaction.
func (db *DB) UpsertReview(ctx context.Context, companyID, userID uuid.UUID, rating int, comment string) (*Review, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var review Review
	err = tx.QueryRow(ctx,
		`INSERT INTO reviews (company_id, user_id, rating, comment)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (company_id, user_id) DO UPDATE SET rating = $3, comment = $4, created_at = NOW()
		 RETURNING id, company_id, user_id, rating, comment, created_at`,
		companyID, userID, rating, comment,
	).Scan(&review.ID, &review.CompanyID, &review.UserID, &review.Rating, &review.Comment, &review.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert review: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE companies SET
			rating = (SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE company_id = $1),
			review_count = (SELECT COUNT(*) FROM reviews WHERE company_id = $1),
			updated_at = NOW()
		 WHERE id = $1`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update company rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit review: %w", err)
	}
	return &review, nil
}

// ListReviewsByCompany lists a company's reviews, newest first
func (db *DB) ListReviewsByCompany(ctx context.Context, companyID uuid.UUID) ([]Review, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, company_id, user_id, rating, comment, created_at
		 FROM reviews WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.CompanyID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Website, &c.Description, &c.Verified,
		&c.Rating, &c.ReviewCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
