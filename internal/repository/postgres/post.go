package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fedblog/blog-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

const postColumns = `id, title, content, owner_id, published_date, updated_date`

func scanPost(row pgx.Row) (model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.OwnerID,
		&post.PublishedDate, &post.UpdatedDate,
	)
	return post, err
}

func (r *PostRepository) Save(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (id, title, content, owner_id, published_date, updated_date)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (id) DO UPDATE SET
			  title = EXCLUDED.title, content = EXCLUDED.content,
			  updated_date = EXCLUDED.updated_date
			  RETURNING ` + postColumns

	savedPost, err := scanPost(r.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Content, post.OwnerID, post.PublishedDate, post.UpdatedDate,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Post{}, model.ErrConflict
		}
		return model.Post{}, fmt.Errorf("failed to save post: %w", err)
	}

	return savedPost, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *PostRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`

	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}

	return exists, nil
}

func (r *PostRepository) ExistsByTitleAndOwner(ctx context.Context, title string, ownerID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE title = $1 AND owner_id = $2)`

	if err := r.db.QueryRow(ctx, query, title, ownerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check post existence by title and owner: %w", err)
	}

	return exists, nil
}

func (r *PostRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE owner_id = $1 ORDER BY published_date DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by owner: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}
