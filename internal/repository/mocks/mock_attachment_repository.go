package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"msdsapi/internal/model"
)

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id int64) (*model.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) List(ctx context.Context, f model.AttachmentFilter) ([]model.Attachment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Update(ctx context.Context, id int64, patch model.AttachmentPatch) (*model.Attachment, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttachmentRepository) Link(ctx context.Context, documentID string, attachmentID int64) error {
	args := m.Called(ctx, documentID, attachmentID)
	return args.Error(0)
}

func (m *MockAttachmentRepository) Unlink(ctx context.Context, documentID string, attachmentID int64) error {
	args := m.Called(ctx, documentID, attachmentID)
	return args.Error(0)
}

func (m *MockAttachmentRepository) ListByDocument(ctx context.Context, documentID string) ([]model.LinkedAttachment, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LinkedAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindLinked(ctx context.Context, documentID string, attachmentID int64) (*model.Attachment, error) {
	args := m.Called(ctx, documentID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) DistinctLinkedTitles(ctx context.Context, t model.AttachmentType) ([]string, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
