package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateCategory inserts a category, deriving its slug from the name
func (db *DB) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := db.pool.QueryRow(ctx,
		`INSERT INTO categories (name, slug) VALUES ($1, $2)
		 RETURNING id, name, slug, job_count`,
		name, Slugify(name),
	).Scan(&c.ID, &c.Name, &c.Slug, &c.JobCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// GetCategoryByID retrieves a category by its ID
func (db *DB) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var c Category
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, slug, job_count FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.JobCount)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

// ListCategories lists all categories with their live job counts
func (db *DB) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT c.id, c.name, c.slug,
			(SELECT COUNT(*) FROM jobs j WHERE j.category_id = c.id AND j.status = 'active')
		 FROM categories c ORDER BY c.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.JobCount); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
