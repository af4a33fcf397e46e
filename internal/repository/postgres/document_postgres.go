package postgres

import (
	"context"
	"database/sql"

	"msdsapi/internal/model"
	"msdsapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, usage, file_path, applies_to_chemical_control_act, applies_to_occupational_safety_act`

func scanDocument(s rowScanner) (*model.Document, error) {
	var d model.Document
	if err := s.Scan(
		&d.ID,
		&d.Title,
		&d.Usage,
		&d.FilePath,
		&d.AppliesToChemicalControlAct,
		&d.AppliesToOccupationalSafetyAct,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDocuments(rows *sql.Rows) ([]model.Document, error) {
	defer rows.Close()
	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Usage,
		doc.FilePath,
		doc.AppliesToChemicalControlAct,
		doc.AppliesToOccupationalSafetyAct,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

// List returns documents using LIMIT/OFFSET pagination ordered by ID.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

// Count returns the number of documents.
func (r *DocumentPostgres) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM documents`
	var total int
	if err := r.db.QueryRowContext(ctx, q).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Search filters by a case-insensitive substring of id, title or usage.
func (r *DocumentPostgres) Search(ctx context.Context, keyword string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const where = `
		WHERE $1::text = ''
		   OR id ILIKE $2
		   OR title ILIKE $2
		   OR usage ILIKE $2
	`
	pattern := containsPattern(keyword)

	const qCount = `SELECT COUNT(*) FROM documents` + where
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, keyword, pattern).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents` + where + `
		ORDER BY id ASC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, qList, keyword, pattern, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collectDocuments(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// ListWithAttachments joins one page of documents with their attachments in a single query.
// The inner join between relation and attachment drops relations whose attachment is gone.
func (r *DocumentPostgres) ListWithAttachments(ctx context.Context, pq repository.PageQuery) ([]model.DocumentAttachmentRow, error) {
	const q = `
		SELECT d.id, d.title, d.usage, d.file_path,
		       d.applies_to_chemical_control_act, d.applies_to_occupational_safety_act,
		       a.id, a.title, a.type, a.file_path
		FROM (
			SELECT ` + documentColumns + `
			FROM documents
			ORDER BY id ASC
			LIMIT $1 OFFSET $2
		) AS d
		LEFT JOIN (document_attachments r JOIN attachments a ON a.id = r.attachment_id)
			ON r.document_id = d.id
		ORDER BY d.id ASC, a.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.DocumentAttachmentRow, 0)
	for rows.Next() {
		var (
			row       model.DocumentAttachmentRow
			aid       *int64
			aTitle    *string
			aType     *int
			aFilePath *string
		)
		if err := rows.Scan(
			&row.Document.ID,
			&row.Document.Title,
			&row.Document.Usage,
			&row.Document.FilePath,
			&row.Document.AppliesToChemicalControlAct,
			&row.Document.AppliesToOccupationalSafetyAct,
			&aid,
			&aTitle,
			&aType,
			&aFilePath,
		); err != nil {
			return nil, err
		}
		if aid != nil {
			ref := &model.AttachmentRef{ID: *aid, FilePath: aFilePath}
			if aTitle != nil {
				ref.Title = *aTitle
			}
			if aType != nil {
				ref.Type = model.AttachmentType(*aType)
			}
			row.Attachment = ref
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil fields of patch.
func (r *DocumentPostgres) Update(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error) {
	const q = `
		UPDATE documents SET
			title = COALESCE($2, title),
			usage = COALESCE($3, usage),
			file_path = COALESCE($4, file_path),
			applies_to_chemical_control_act = COALESCE($5, applies_to_chemical_control_act),
			applies_to_occupational_safety_act = COALESCE($6, applies_to_occupational_safety_act)
		WHERE id = $1
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		id,
		patch.Title,
		patch.Usage,
		patch.FilePath,
		patch.AppliesToChemicalControlAct,
		patch.AppliesToOccupationalSafetyAct,
	)
	d, err := scanDocument(row)
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

// SetFilePath sets the primary file pointer; a nil path stores NULL.
func (r *DocumentPostgres) SetFilePath(ctx context.Context, id string, path *string) error {
	const q = `UPDATE documents SET file_path = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, path)
	if err != nil {
		return err
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

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return err
	}
	return nil
}

// DistinctUsages lists the non-empty usage values.
func (r *DocumentPostgres) DistinctUsages(ctx context.Context) ([]string, error) {
	const q = `
		SELECT DISTINCT usage
		FROM documents
		WHERE usage IS NOT NULL AND usage <> ''
		ORDER BY usage ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanStrings(rows)
}
