package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"msdsapi/internal/model"
	"msdsapi/internal/service"
	serviceMocks "msdsapi/internal/service/mocks"
)

func TestListAttachments(t *testing.T) {
	warning := model.AttachmentWarningSymbol

	tests := []struct {
		name       string
		query      string
		setupMocks func(m *serviceMocks.MockCatalogService)
		wantStatus int
		wantCode   string
	}{
		{
			name:  "no filter",
			query: "",
			setupMocks: func(m *serviceMocks.MockCatalogService) {
				m.On("ListAttachments", mock.Anything, model.AttachmentFilter{}).
					Return([]model.Attachment{{ID: 1, Title: "보안경"}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "document and type",
			query: "?documentId=M0001&type=2",
			setupMocks: func(m *serviceMocks.MockCatalogService) {
				m.On("ListAttachments", mock.Anything, model.AttachmentFilter{DocumentID: "M0001", Type: &warning}).
					Return([]model.Attachment{{ID: 4, Title: "독성", Type: warning}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "type is not a number",
			query:      "?type=toxic",
			setupMocks: func(m *serviceMocks.MockCatalogService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:  "unknown type",
			query: "?type=7",
			setupMocks: func(m *serviceMocks.MockCatalogService) {
				m.On("ListAttachments", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: unknown attachment type 7", service.ErrValidation)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockCatalogService)
			tt.setupMocks(mockSvc)
			app := fiber.New()
			app.Get("/attachments", ListAttachments(mockSvc))

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/attachments"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			} else {
				var items []model.Attachment
				json.NewDecoder(resp.Body).Decode(&items)
				assert.Len(t, items, 1)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestCreateAttachment(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := fiber.New()
	app.Post("/attachments", CreateAttachment(mockSvc))

	t.Run("created", func(t *testing.T) {
		warning := model.AttachmentWarningSymbol
		in := service.CreateAttachmentInput{ID: 4, DocumentID: "M0001", Title: "독성", Type: &warning, FilePath: strPtr("images/toxic.png")}
		mockSvc.On("CreateAttachment", mock.Anything, in).
			Return(&model.Attachment{ID: 4, Title: "독성", Type: warning, FilePath: strPtr("images/toxic.png")}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/attachments",
			`{"aid":4,"documentId":"M0001","title":"독성","type":2,"filePath":"images/toxic.png"}`))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var a model.Attachment
		json.NewDecoder(resp.Body).Decode(&a)
		assert.Equal(t, int64(4), a.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown document", func(t *testing.T) {
		mockSvc.On("CreateAttachment", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: document M0404", service.ErrNotFound)).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/attachments", `{"aid":5,"documentId":"M0404","title":"x"}`))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("duplicate aid", func(t *testing.T) {
		mockSvc.On("CreateAttachment", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: attachment 4 already exists", service.ErrConflict)).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/attachments", `{"aid":4,"documentId":"M0001","title":"독성"}`))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "attachment 4 already exists", decodeError(t, resp).Error.Message)
	})
}

func TestUpdateAttachment(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := fiber.New()
	app.Put("/attachments/:aid", UpdateAttachment(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("UpdateAttachment", mock.Anything, int64(1), model.AttachmentPatch{Title: strPtr("방독마스크")}).
			Return(&model.Attachment{ID: 1, Title: "방독마스크"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/attachments/1", `{"title":"방독마스크"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/attachments/0", `{"title":"x"}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("UpdateAttachment", mock.Anything, int64(99), mock.Anything).
			Return(nil, fmt.Errorf("%w: attachment 99", service.ErrNotFound)).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/attachments/99", `{"title":"x"}`))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteAttachment(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := fiber.New()
	app.Delete("/attachments/:aid", DeleteAttachment(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("DeleteAttachment", mock.Anything, int64(1)).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/attachments/1", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("DeleteAttachment", mock.Anything, int64(2)).Return(errors.New("db down")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/attachments/2", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestLinkAndUnlinkAttachment(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := fiber.New()
	app.Put("/documents/:id/attachments/:aid", LinkAttachment(mockSvc))
	app.Delete("/documents/:id/attachments/:aid", UnlinkAttachment(mockSvc))

	t.Run("link", func(t *testing.T) {
		mockSvc.On("LinkAttachment", mock.Anything, "M0001", int64(3)).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPut, "/documents/M0001/attachments/3", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("link twice", func(t *testing.T) {
		mockSvc.On("LinkAttachment", mock.Anything, "M0001", int64(3)).
			Return(fmt.Errorf("%w: link M0001/3 already exists", service.ErrConflict)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPut, "/documents/M0001/attachments/3", nil))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("unlink", func(t *testing.T) {
		mockSvc.On("UnlinkAttachment", mock.Anything, "M0001", int64(3)).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/documents/M0001/attachments/3", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}
