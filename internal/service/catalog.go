package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"msdsapi/internal/logger"
	"msdsapi/internal/model"
	"msdsapi/internal/repository"
)

// CreateAttachmentInput is the payload for creating an attachment under a document.
type CreateAttachmentInput struct {
	ID         int64                 `json:"aid"`
	DocumentID string                `json:"documentId"`
	Title      string                `json:"title"`
	Type       *model.AttachmentType `json:"type"`
	FilePath   *string               `json:"filePath"`
}

// CatalogService is the single entry point used by the HTTP layer.
type CatalogService interface {
	ListDocuments(ctx context.Context, page, perPage int) (*Page[model.Document], error)
	ListDocumentsDetailed(ctx context.Context, page, perPage int) (*Page[model.DocumentWithAttachments], error)
	GetDocument(ctx context.Context, id string) (*model.DocumentDetail, error)
	SearchDocuments(ctx context.Context, keyword string, page, perPage int) (*Page[model.Document], error)
	Options(ctx context.Context) (*model.Options, error)

	CreateDocument(ctx context.Context, doc model.Document) (*model.Document, error)
	UpdateDocument(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error)
	// DeleteDocument is idempotent. The primary file, if any, is removed best effort.
	DeleteDocument(ctx context.Context, id string) error

	ListAttachments(ctx context.Context, filter model.AttachmentFilter) ([]model.Attachment, error)
	CreateAttachment(ctx context.Context, in CreateAttachmentInput) (*model.Attachment, error)
	UpdateAttachment(ctx context.Context, id int64, patch model.AttachmentPatch) (*model.Attachment, error)
	DeleteAttachment(ctx context.Context, id int64) error
	LinkAttachment(ctx context.Context, documentID string, attachmentID int64) error
	UnlinkAttachment(ctx context.Context, documentID string, attachmentID int64) error

	UploadPrimaryFile(ctx context.Context, documentID string, r io.Reader, size int64, filename string) (string, error)
	DeletePrimaryFile(ctx context.Context, documentID string) error
	IssueSignedDownloadURL(ctx context.Context, documentID string, forceDownload bool) (string, error)
	StreamPrimaryFile(ctx context.Context, documentID string) (*FileStream, error)
	IssueSignedAttachmentURL(ctx context.Context, documentID string, attachmentID int64) (string, error)
}

type catalogService struct {
	docs  repository.DocumentRepository
	atts  repository.AttachmentRepository
	query *QueryEngine
	files *FileManager
	log   *logger.Logger
}

// NewCatalogService wires the facade over the query engine and the file manager.
func NewCatalogService(docs repository.DocumentRepository, atts repository.AttachmentRepository, query *QueryEngine, files *FileManager, log *logger.Logger) CatalogService {
	if log == nil {
		log = logger.Nop()
	}
	return &catalogService{docs: docs, atts: atts, query: query, files: files, log: log.With("component", "catalog")}
}

func (s *catalogService) ListDocuments(ctx context.Context, page, perPage int) (*Page[model.Document], error) {
	page, perPage = NormalizePage(page, perPage)
	return s.query.List(ctx, page, perPage)
}

func (s *catalogService) ListDocumentsDetailed(ctx context.Context, page, perPage int) (*Page[model.DocumentWithAttachments], error) {
	page, perPage = NormalizePage(page, perPage)
	return s.query.ListDetailed(ctx, page, perPage)
}

func (s *catalogService) GetDocument(ctx context.Context, id string) (*model.DocumentDetail, error) {
	return s.query.Detail(ctx, id)
}

func (s *catalogService) SearchDocuments(ctx context.Context, keyword string, page, perPage int) (*Page[model.Document], error) {
	page, perPage = NormalizePage(page, perPage)
	return s.query.Search(ctx, keyword, page, perPage)
}

func (s *catalogService) Options(ctx context.Context) (*model.Options, error) {
	return s.query.Options(ctx)
}

func (s *catalogService) CreateDocument(ctx context.Context, doc model.Document) (*model.Document, error) {
	doc.ID = strings.TrimSpace(doc.ID)
	doc.Title = strings.TrimSpace(doc.Title)
	if doc.ID == "" {
		return nil, validationError("id is required")
	}
	if doc.Title == "" {
		return nil, validationError("title is required")
	}
	created, err := s.docs.Create(ctx, &doc)
	if err != nil {
		return nil, translate(err, "document "+doc.ID)
	}
	s.query.InvalidateOptions(ctx)
	return created, nil
}

func (s *catalogService) UpdateDocument(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error) {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, validationError("title must not be empty")
		}
		patch.Title = &t
	}
	updated, err := s.docs.Update(ctx, id, patch)
	if err != nil {
		return nil, translate(err, "document "+id)
	}
	s.query.InvalidateOptions(ctx)
	return updated, nil
}

func (s *catalogService) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.docs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load document %s: %w", id, err)
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if doc.HasFile() {
		s.files.RemoveBlob(ctx, id, *doc.FilePath)
	}
	s.query.InvalidateOptions(ctx)
	return nil
}

func (s *catalogService) ListAttachments(ctx context.Context, filter model.AttachmentFilter) ([]model.Attachment, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, validationError(fmt.Sprintf("unknown attachment type %d", *filter.Type))
	}
	filter.DocumentID = strings.TrimSpace(filter.DocumentID)
	items, err := s.atts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	for i := range items {
		items[i].FilePath = items[i].ResolvableFilePath()
	}
	return items, nil
}

func (s *catalogService) CreateAttachment(ctx context.Context, in CreateAttachmentInput) (*model.Attachment, error) {
	in.DocumentID = strings.TrimSpace(in.DocumentID)
	in.Title = strings.TrimSpace(in.Title)
	switch {
	case in.ID <= 0:
		return nil, validationError("aid is required")
	case in.DocumentID == "":
		return nil, validationError("documentId is required")
	case in.Title == "":
		return nil, validationError("title is required")
	}
	typ := model.AttachmentProtectiveEquipment
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, validationError(fmt.Sprintf("unknown attachment type %d", *in.Type))
		}
		typ = *in.Type
	}

	if _, err := s.docs.FindByID(ctx, in.DocumentID); err != nil {
		return nil, translate(err, "document "+in.DocumentID)
	}
	created, err := s.atts.Create(ctx, &model.Attachment{ID: in.ID, Title: in.Title, Type: typ, FilePath: in.FilePath})
	if err != nil {
		return nil, translate(err, fmt.Sprintf("attachment %d", in.ID))
	}
	if err := s.atts.Link(ctx, in.DocumentID, created.ID); err != nil {
		// Drop the unlinked row so a retry with the same aid does not hit ErrConflict.
		if delErr := s.atts.Delete(ctx, created.ID); delErr != nil {
			s.log.Warn("attachment created but not linked", "attachment_id", created.ID, "document_id", in.DocumentID, "error", err, "cleanup_error", delErr)
		}
		return nil, translate(err, fmt.Sprintf("link %s/%d", in.DocumentID, created.ID))
	}
	s.query.InvalidateOptions(ctx)
	return created, nil
}

func (s *catalogService) UpdateAttachment(ctx context.Context, id int64, patch model.AttachmentPatch) (*model.Attachment, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, validationError(fmt.Sprintf("unknown attachment type %d", *patch.Type))
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, validationError("title must not be empty")
		}
		patch.Title = &t
	}
	updated, err := s.atts.Update(ctx, id, patch)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("attachment %d", id))
	}
	s.query.InvalidateOptions(ctx)
	return updated, nil
}

func (s *catalogService) DeleteAttachment(ctx context.Context, id int64) error {
	if err := s.atts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete attachment %d: %w", id, err)
	}
	s.query.InvalidateOptions(ctx)
	return nil
}

func (s *catalogService) LinkAttachment(ctx context.Context, documentID string, attachmentID int64) error {
	if err := s.atts.Link(ctx, documentID, attachmentID); err != nil {
		return translate(err, fmt.Sprintf("link %s/%d", documentID, attachmentID))
	}
	s.query.InvalidateOptions(ctx)
	return nil
}

func (s *catalogService) UnlinkAttachment(ctx context.Context, documentID string, attachmentID int64) error {
	if err := s.atts.Unlink(ctx, documentID, attachmentID); err != nil {
		return fmt.Errorf("unlink %s/%d: %w", documentID, attachmentID, err)
	}
	s.query.InvalidateOptions(ctx)
	return nil
}

func (s *catalogService) UploadPrimaryFile(ctx context.Context, documentID string, r io.Reader, size int64, filename string) (string, error) {
	return s.files.UploadPrimaryFile(ctx, documentID, r, size, filename)
}

func (s *catalogService) DeletePrimaryFile(ctx context.Context, documentID string) error {
	return s.files.DeletePrimaryFile(ctx, documentID)
}

func (s *catalogService) IssueSignedDownloadURL(ctx context.Context, documentID string, forceDownload bool) (string, error) {
	return s.files.IssueSignedDownloadURL(ctx, documentID, forceDownload)
}

func (s *catalogService) StreamPrimaryFile(ctx context.Context, documentID string) (*FileStream, error) {
	return s.files.StreamPrimaryFile(ctx, documentID)
}

func (s *catalogService) IssueSignedAttachmentURL(ctx context.Context, documentID string, attachmentID int64) (string, error) {
	return s.files.IssueSignedAttachmentURL(ctx, documentID, attachmentID)
}
