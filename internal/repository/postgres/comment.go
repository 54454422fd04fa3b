package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fedblog/blog-server/internal/model"
)

var _ model.CommentStore = (*CommentRepository)(nil)

type CommentRepository struct {
	db *Connection
}

func NewCommentRepository(db *Connection) *CommentRepository {
	return &CommentRepository{
		db: db,
	}
}

const commentColumns = `id, content, author_id, post_id, commented_at`

func scanComment(row pgx.Row) (model.Comment, error) {
	var comment model.Comment
	err := row.Scan(
		&comment.ID, &comment.Content, &comment.AuthorID, &comment.PostID, &comment.CommentedAt,
	)
	return comment, err
}

func (r *CommentRepository) Save(ctx context.Context, comment model.Comment) (model.Comment, error) {
	query := `INSERT INTO comments (id, content, author_id, post_id, commented_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + commentColumns

	savedComment, err := scanComment(r.db.QueryRow(ctx, query,
		comment.ID, comment.Content, comment.AuthorID, comment.PostID, comment.CommentedAt,
	))
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to save comment: %w", err)
	}

	return savedComment, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY commented_at ASC`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by post: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *CommentRepository) GetByIDAndPostID(ctx context.Context, id uuid.UUID, postID uuid.UUID) (model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1 AND post_id = $2`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to get comment by id and post id: %w", err)
	}

	return comment, nil
}
