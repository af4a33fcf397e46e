package repository

import (
	"context"

	"msdsapi/internal/model"
)

// AttachmentRepository defines data access for attachments and the
// document/attachment relation.
type AttachmentRepository interface {
	// Create inserts an attachment. A zero ID lets the database assign one.
	// Returns ErrConflict if an explicit ID is taken.
	Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error)

	FindByID(ctx context.Context, id int64) (*model.Attachment, error)

	// List returns attachments matching the filter, newest first.
	List(ctx context.Context, f model.AttachmentFilter) ([]model.Attachment, error)

	Update(ctx context.Context, id int64, patch model.AttachmentPatch) (*model.Attachment, error)

	// Delete removes an attachment. Relations pointing at it are left in place.
	Delete(ctx context.Context, id int64) error

	// Link relates an attachment to a document. Returns ErrNotFound if either side
	// is missing and ErrConflict if they are already linked.
	Link(ctx context.Context, documentID string, attachmentID int64) error

	// Unlink removes a relation. Missing relations are not an error.
	Unlink(ctx context.Context, documentID string, attachmentID int64) error

	// ListByDocument returns the attachments of a document, most recently linked first.
	ListByDocument(ctx context.Context, documentID string) ([]model.LinkedAttachment, error)

	// FindLinked returns the attachment only if it is linked to the document, else ErrNotFound.
	FindLinked(ctx context.Context, documentID string, attachmentID int64) (*model.Attachment, error)

	// DistinctLinkedTitles returns the distinct titles of attachments of type t that are
	// linked to at least one document, ascending.
	DistinctLinkedTitles(ctx context.Context, t model.AttachmentType) ([]string, error)
}
