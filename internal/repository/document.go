package repository

import (
	"context"

	"msdsapi/internal/model"
)

// DocumentRepository is persistence only; callers own validation.
type DocumentRepository interface {
	// Create inserts a new document. Returns ErrConflict if the ID is taken.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns one page of documents ordered by ID ascending.
	List(ctx context.Context, pq PageQuery) ([]model.Document, error)

	// Count returns the total number of documents.
	Count(ctx context.Context) (int, error)

	// Search returns one page of documents whose id, title or usage contains keyword
	// (case-insensitive), with the total number of matches. An empty keyword matches everything.
	Search(ctx context.Context, keyword string, pq PageQuery) (*PageResult[model.Document], error)

	// ListWithAttachments returns one page of documents outer-joined with their linked
	// attachments, ordered by document ID then attachment ID.
	ListWithAttachments(ctx context.Context, pq PageQuery) ([]model.DocumentAttachmentRow, error)

	// Update applies a partial update and returns the stored record, or ErrNotFound.
	Update(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error)

	// SetFilePath sets or clears (nil) the primary file pointer. Returns ErrNotFound if absent.
	SetFilePath(ctx context.Context, id string, path *string) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// DistinctUsages returns the distinct non-empty usage values in ascending order.
	DistinctUsages(ctx context.Context) ([]string, error)
}
