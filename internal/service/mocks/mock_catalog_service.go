package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"msdsapi/internal/model"
	"msdsapi/internal/service"
)

type MockCatalogService struct {
	mock.Mock
}

var _ service.CatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) ListDocuments(ctx context.Context, page, perPage int) (*service.Page[model.Document], error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Document]), args.Error(1)
}

func (m *MockCatalogService) ListDocumentsDetailed(ctx context.Context, page, perPage int) (*service.Page[model.DocumentWithAttachments], error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.DocumentWithAttachments]), args.Error(1)
}

func (m *MockCatalogService) GetDocument(ctx context.Context, id string) (*model.DocumentDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentDetail), args.Error(1)
}

func (m *MockCatalogService) SearchDocuments(ctx context.Context, keyword string, page, perPage int) (*service.Page[model.Document], error) {
	args := m.Called(ctx, keyword, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Document]), args.Error(1)
}

func (m *MockCatalogService) Options(ctx context.Context) (*model.Options, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Options), args.Error(1)
}

func (m *MockCatalogService) CreateDocument(ctx context.Context, doc model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockCatalogService) UpdateDocument(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockCatalogService) DeleteDocument(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) ListAttachments(ctx context.Context, filter model.AttachmentFilter) ([]model.Attachment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockCatalogService) CreateAttachment(ctx context.Context, in service.CreateAttachmentInput) (*model.Attachment, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockCatalogService) UpdateAttachment(ctx context.Context, id int64, patch model.AttachmentPatch) (*model.Attachment, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockCatalogService) DeleteAttachment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) LinkAttachment(ctx context.Context, documentID string, attachmentID int64) error {
	args := m.Called(ctx, documentID, attachmentID)
	return args.Error(0)
}

func (m *MockCatalogService) UnlinkAttachment(ctx context.Context, documentID string, attachmentID int64) error {
	args := m.Called(ctx, documentID, attachmentID)
	return args.Error(0)
}

func (m *MockCatalogService) UploadPrimaryFile(ctx context.Context, documentID string, r io.Reader, size int64, filename string) (string, error) {
	args := m.Called(ctx, documentID, r, size, filename)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogService) DeletePrimaryFile(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockCatalogService) IssueSignedDownloadURL(ctx context.Context, documentID string, forceDownload bool) (string, error) {
	args := m.Called(ctx, documentID, forceDownload)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogService) StreamPrimaryFile(ctx context.Context, documentID string) (*service.FileStream, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileStream), args.Error(1)
}

func (m *MockCatalogService) IssueSignedAttachmentURL(ctx context.Context, documentID string, attachmentID int64) (string, error) {
	args := m.Called(ctx, documentID, attachmentID)
	return args.String(0), args.Error(1)
}
