package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	commonerrors "github.com/seo-pirate/backend/internal/common/errors"
	userdomain "github.com/seo-pirate/backend/internal/user/domain"
	"github.com/seo-pirate/backend/internal/website/domain"
)

var ErrWebsiteNotFound = commonerrors.ErrWebsiteNotFound

type Repository interface {
	Create(ctx context.Context, site domain.Website) (domain.Website, error)
	FindByID(ctx context.Context, id domain.ID) (domain.Website, error)
	ListByUserID(ctx context.Context, userID userdomain.ID) ([]domain.Website, error)
	Update(ctx context.Context, site domain.Website) (domain.Website, error)
	Delete(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, site domain.Website) (domain.Website, error) {
	seodata, err := json.Marshal(site.SEOData)
	if err != nil {
		return domain.Website{}, fmt.Errorf("failed to encode seo data: %w", err)
	}

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO websites (id, name, url, user_id, seodatas)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, url, user_id, seodatas, created_at, updated_at`,
		string(site.ID),
		site.Name,
		site.URL,
		string(site.UserID),
		seodata,
	)

	created, err := scanWebsite(row)
	if err != nil {
		return domain.Website{}, fmt.Errorf("failed to create website: %w", err)
	}
	return created, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Website, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, name, url, user_id, seodatas, created_at, updated_at
		 FROM websites WHERE id = $1`,
		string(id),
	)

	site, err := scanWebsite(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Website{}, ErrWebsiteNotFound
		}
		return domain.Website{}, fmt.Errorf("failed to find website: %w", err)
	}
	return site, nil
}

func (r *PgRepository) ListByUserID(ctx context.Context, userID userdomain.ID) ([]domain.Website, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name, url, user_id, seodatas, created_at, updated_at
		 FROM websites WHERE user_id = $1 ORDER BY created_at`,
		string(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list websites: %w", err)
	}
	defer rows.Close()

	sites := make([]domain.Website, 0)
	for rows.Next() {
		site, err := scanWebsite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan website: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read websites: %w", err)
	}
	return sites, nil
}

func (r *PgRepository) Update(ctx context.Context, site domain.Website) (domain.Website, error) {
	seodata, err := json.Marshal(site.SEOData)
	if err != nil {
		return domain.Website{}, fmt.Errorf("failed to encode seo data: %w", err)
	}

	row := r.pool.QueryRow(
		ctx,
		`UPDATE websites
		 SET name = $2, url = $3, user_id = $4, seodatas = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING id, name, url, user_id, seodatas, created_at, updated_at`,
		string(site.ID),
		site.Name,
		site.URL,
		string(site.UserID),
		seodata,
	)

	updated, err := scanWebsite(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Website{}, ErrWebsiteNotFound
		}
		return domain.Website{}, fmt.Errorf("failed to update website: %w", err)
	}
	return updated, nil
}

// Delete does not report whether a row existed: callers treat deleting
// an absent website as success.
func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM websites WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete website: %w", err)
	}
	return nil
}

func scanWebsite(row pgx.Row) (domain.Website, error) {
	var (
		site    domain.Website
		id      string
		userID  string
		seodata []byte
	)

	err := row.Scan(&id, &site.Name, &site.URL, &userID, &seodata, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		return domain.Website{}, err
	}

	site.ID = domain.ID(id)
	site.UserID = userdomain.ID(userID)
	if len(seodata) > 0 {
		if err := json.Unmarshal(seodata, &site.SEOData); err != nil {
			return domain.Website{}, fmt.Errorf("failed to decode seo data: %w", err)
		}
	}
	return site, nil
}
