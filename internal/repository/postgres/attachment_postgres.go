package postgres

import (
	"context"
	"database/sql"

	"msdsapi/internal/model"
	"msdsapi/internal/repository"
)

// AttachmentPostgres is a PostgreSQL implementation of repository.AttachmentRepository.
type AttachmentPostgres struct {
	db *sql.DB
}

// NewAttachmentPostgres creates a new AttachmentPostgres repository.
func NewAttachmentPostgres(db *sql.DB) *AttachmentPostgres {
	return &AttachmentPostgres{db: db}
}

var _ repository.AttachmentRepository = (*AttachmentPostgres)(nil)

const attachmentColumns = `id, title, type, file_path, created_at`

func scanAttachment(s rowScanner, extra ...any) (*model.Attachment, error) {
	var (
		a   model.Attachment
		typ int
	)
	dest := append([]any{&a.ID, &a.Title, &typ, &a.FilePath, &a.CreatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	a.Type = model.AttachmentType(typ)
	return &a, nil
}

// Create inserts an attachment; explicit IDs are kept, zero IDs come from the identity column.
func (r *AttachmentPostgres) Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error) {
	var row *sql.Row
	if a.ID != 0 {
		const q = `
			INSERT INTO attachments (id, title, type, file_path)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + attachmentColumns
		row = r.db.QueryRowContext(ctx, q, a.ID, a.Title, int(a.Type), a.FilePath)
	} else {
		const q = `
			INSERT INTO attachments (title, type, file_path)
			VALUES ($1, $2, $3)
			RETURNING ` + attachmentColumns
		row = r.db.QueryRowContext(ctx, q, a.Title, int(a.Type), a.FilePath)
	}
	out, err := scanAttachment(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single attachment.
func (r *AttachmentPostgres) FindByID(ctx context.Context, id int64) (*model.Attachment, error) {
	const q = `
		SELECT ` + attachmentColumns + `
		FROM attachments
		WHERE id = $1
	`
	a, err := scanAttachment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

// List returns attachments filtered by linked document and/or type.
// NULL parameters disable the corresponding condition.
func (r *AttachmentPostgres) List(ctx context.Context, f model.AttachmentFilter) ([]model.Attachment, error) {
	const q = `
		SELECT a.id, a.title, a.type, a.file_path, a.created_at
		FROM attachments a
		WHERE ($1::text IS NULL OR EXISTS (
				SELECT 1 FROM document_attachments r
				WHERE r.attachment_id = a.id AND r.document_id = $1
			))
		  AND ($2::smallint IS NULL OR a.type = $2)
		ORDER BY a.created_at DESC, a.id DESC
	`
	var docID, typ any
	if f.DocumentID != "" {
		docID = f.DocumentID
	}
	if f.Type != nil {
		typ = int(*f.Type)
	}
	rows, err := r.db.QueryContext(ctx, q, docID, typ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies the non-nil fields of patch.
func (r *AttachmentPostgres) Update(ctx context.Context, id int64, patch model.AttachmentPatch) (*model.Attachment, error) {
	const q = `
		UPDATE attachments SET
			title = COALESCE($2, title),
			type = COALESCE($3, type),
			file_path = COALESCE($4, file_path)
		WHERE id = $1
		RETURNING ` + attachmentColumns
	var typ any
	if patch.Type != nil {
		typ = int(*patch.Type)
	}
	a, err := scanAttachment(r.db.QueryRowContext(ctx, q, id, patch.Title, typ, patch.FilePath))
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

// Delete removes an attachment row. It does not return an error if the row does not exist.
func (r *AttachmentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM attachments WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return err
	}
	return nil
}

// Link inserts a relation only when both the document and the attachment exist.
func (r *AttachmentPostgres) Link(ctx context.Context, documentID string, attachmentID int64) error {
	const q = `
		INSERT INTO document_attachments (document_id, attachment_id)
		SELECT $1::text, $2::bigint
		WHERE EXISTS (SELECT 1 FROM documents WHERE id = $1)
		  AND EXISTS (SELECT 1 FROM attachments WHERE id = $2)
	`
	res, err := r.db.ExecContext(ctx, q, documentID, attachmentID)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Unlink removes a relation. It does not return an error if the relation does not exist.
func (r *AttachmentPostgres) Unlink(ctx context.Context, documentID string, attachmentID int64) error {
	const q = `DELETE FROM document_attachments WHERE document_id = $1 AND attachment_id = $2`
	if _, err := r.db.ExecContext(ctx, q, documentID, attachmentID); err != nil {
		return err
	}
	return nil
}

// ListByDocument returns a document's attachments ordered by link time, newest first.
func (r *AttachmentPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.LinkedAttachment, error) {
	const q = `
		SELECT a.id, a.title, a.type, a.file_path, a.created_at, r.created_at
		FROM document_attachments r
		JOIN attachments a ON a.id = r.attachment_id
		WHERE r.document_id = $1
		ORDER BY r.created_at DESC, a.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.LinkedAttachment, 0)
	for rows.Next() {
		var la model.LinkedAttachment
		a, err := scanAttachment(rows, &la.LinkedAt)
		if err != nil {
			return nil, err
		}
		la.Attachment = *a
		items = append(items, la)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindLinked fetches an attachment through its relation to documentID.
func (r *AttachmentPostgres) FindLinked(ctx context.Context, documentID string, attachmentID int64) (*model.Attachment, error) {
	const q = `
		SELECT a.id, a.title, a.type, a.file_path, a.created_at
		FROM attachments a
		JOIN document_attachments r ON r.attachment_id = a.id
		WHERE r.document_id = $1 AND a.id = $2
	`
	a, err := scanAttachment(r.db.QueryRowContext(ctx, q, documentID, attachmentID))
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

// DistinctLinkedTitles lists titles of linked attachments of one type.
func (r *AttachmentPostgres) DistinctLinkedTitles(ctx context.Context, t model.AttachmentType) ([]string, error) {
	const q = `
		SELECT DISTINCT a.title
		FROM attachments a
		JOIN document_attachments r ON r.attachment_id = a.id
		WHERE a.type = $1
		ORDER BY a.title ASC
	`
	rows, err := r.db.QueryContext(ctx, q, int(t))
	if err != nil {
		return nil, err
	}
	return scanStrings(rows)
}
