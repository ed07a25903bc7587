package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"droneport/internal/models"
)

var ErrUploadNotFound = errors.New("upload not found")

type UploadRepository struct {
	pool *pgxpool.Pool
}

func NewUploadRepository(pool *pgxpool.Pool) *UploadRepository {
	return &UploadRepository{pool: pool}
}

func (r *UploadRepository) Create(ctx context.Context, upload models.Upload) error {
	const query = `
		INSERT INTO uploads (
			id, user_name, filename, mime, size_bytes, created_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		upload.ID,
		upload.UserName,
		upload.Filename,
		upload.MIME,
		upload.SizeBytes,
	)
	return err
}

func (r *UploadRepository) GetByFilename(ctx context.Context, filename string) (models.Upload, error) {
	const query = `
		SELECT id, user_name, filename, mime, size_bytes, created_at
		FROM uploads WHERE filename = $1
	`

	row := r.pool.QueryRow(ctx, query, filename)
	var upload models.Upload
	if err := row.Scan(
		&upload.ID,
		&upload.UserName,
		&upload.Filename,
		&upload.MIME,
		&upload.SizeBytes,
		&upload.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Upload{}, ErrUploadNotFound
		}
		return models.Upload{}, err
	}
	return upload, nil
}

func (r *UploadRepository) ListByUser(ctx context.Context, userName string, limit int) ([]models.Upload, error) {
	const query = `
		SELECT id, user_name, filename, mime, size_bytes, created_at
		FROM uploads
		WHERE user_name = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []models.Upload
	for rows.Next() {
		var upload models.Upload
		if err := rows.Scan(
			&upload.ID,
			&upload.UserName,
			&upload.Filename,
			&upload.MIME,
			&upload.SizeBytes,
			&upload.CreatedAt,
		); err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, rows.Err()
}
