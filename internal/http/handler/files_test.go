package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"msdsapi/internal/service"
	serviceMocks "msdsapi/internal/service/mocks"
)

func multipartRequest(t *testing.T, target, field, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	part.Write(content)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadPrimaryFile(t *testing.T) {
	pdf := []byte("%PDF-1.7 test")

	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		setupMocks func(m *serviceMocks.MockCatalogService)
		wantStatus int
		wantCode   string
		wantPath   string
	}{
		{
			name: "uploaded",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/documents/M0001/file", "file", "sds.pdf", pdf)
			},
			setupMocks: func(m *serviceMocks.MockCatalogService) {
				m.On("UploadPrimaryFile", mock.Anything, "M0001", mock.Anything, int64(len(pdf)), "sds.pdf").
					Return("pdfs/1750328210807_sds.pdf", nil).Once()
			},
			wantStatus: http.StatusOK,
			wantPath:   "pdfs/1750328210807_sds.pdf",
		},
		{
			name: "legacy field name",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/documents/M0001/file", "pdf_file", "sds.pdf", pdf)
			},
			setupMocks: func(m *serviceMocks.MockCatalogService) {
				m.On("UploadPrimaryFile", mock.Anything, "M0001", mock.Anything, int64(len(pdf)), "sds.pdf").
					Return("pdfs/1750328210807_sds.pdf", nil).Once()
			},
			wantStatus: http.StatusOK,
			wantPath:   "pdfs/1750328210807_sds.pdf",
		},
		{
			name: "no file",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/documents/M0001/file", nil)
			},
			setupMocks: func(m *serviceMocks.MockCatalogService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "FILE_REQUIRED",
		},
		{
			name: "not a pdf",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/documents/M0001/file", "file", "sds.docx", pdf)
			},
			setupMocks: func(m *serviceMocks.MockCatalogService) {
				m.On("UploadPrimaryFile", mock.Anything, "M0001", mock.Anything, mock.Anything, "sds.docx").
					Return("", fmt.Errorf("%w: only .pdf files are accepted", service.ErrValidation)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name: "unknown document",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/documents/M0404/file", "file", "sds.pdf", pdf)
			},
			setupMocks: func(m *serviceMocks.MockCatalogService) {
				m.On("UploadPrimaryFile", mock.Anything, "M0404", mock.Anything, mock.Anything, "sds.pdf").
					Return("", fmt.Errorf("%w: document M0404", service.ErrNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name: "store down",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/documents/M0001/file", "file", "sds.pdf", pdf)
			},
			setupMocks: func(m *serviceMocks.MockCatalogService) {
				m.On("UploadPrimaryFile", mock.Anything, "M0001", mock.Anything, mock.Anything, "sds.pdf").
					Return("", fmt.Errorf("%w: put: connection refused", service.ErrStorage)).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "STORAGE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockCatalogService)
			tt.setupMocks(mockSvc)
			app := fiber.New()
			app.Post("/documents/:id/file", UploadPrimaryFile(mockSvc))

			resp, _ := app.Test(tt.request(t))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			} else {
				var body uploadResponse
				json.NewDecoder(resp.Body).Decode(&body)
				assert.Equal(t, tt.wantPath, body.FilePath)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestDeletePrimaryFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := fiber.New()
	app.Delete("/documents/:id/file", DeletePrimaryFile(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("DeletePrimaryFile", mock.Anything, "M0001").Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/documents/M0001/file", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		mockSvc.On("DeletePrimaryFile", mock.Anything, "M0002").
			Return(fmt.Errorf("%w: document M0002 has no file", service.ErrNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/documents/M0002/file", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadPrimaryFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := fiber.New()
	app.Get("/documents/:id/download", DownloadPrimaryFile(mockSvc))

	tests := []struct {
		name  string
		query string
		force bool
	}{
		{name: "inline", query: "", force: false},
		{name: "download=1", query: "?download=1", force: true},
		{name: "download=true", query: "?download=true", force: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed := "https://blob.example.com/msds/pdfs/1_sds.pdf?X-Amz-Signature=abc"
			mockSvc.On("IssueSignedDownloadURL", mock.Anything, "M0001", tt.force).Return(signed, nil).Once()

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0001/download"+tt.query, nil))

			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, signed, resp.Header.Get("Location"))
			mockSvc.AssertExpectations(t)
		})
	}

	t.Run("no file", func(t *testing.T) {
		mockSvc.On("IssueSignedDownloadURL", mock.Anything, "M0002", false).
			Return("", fmt.Errorf("%w: document M0002 has no file", service.ErrNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0002/download", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestStreamPrimaryFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := fiber.New()
	app.Get("/documents/:id/file", StreamPrimaryFile(mockSvc))

	t.Run("streams bytes", func(t *testing.T) {
		content := "%PDF-1.7 acetone"
		mockSvc.On("StreamPrimaryFile", mock.Anything, "M0001").Return(&service.FileStream{
			Body:        io.NopCloser(strings.NewReader(content)),
			Filename:    "Acetone_MSDS.pdf",
			ContentType: "application/pdf",
			Size:        int64(len(content)),
		}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0001/file", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Equal(t, `attachment; filename="Acetone_MSDS.pdf"`, resp.Header.Get("Content-Disposition"))
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, content, string(b))
		mockSvc.AssertExpectations(t)
	})

	t.Run("non-ascii title", func(t *testing.T) {
		mockSvc.On("StreamPrimaryFile", mock.Anything, "M0003").Return(&service.FileStream{
			Body:        io.NopCloser(strings.NewReader("%PDF")),
			Filename:    "염산_MSDS.pdf",
			ContentType: "application/pdf",
			Size:        4,
		}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0003/file", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "filename*=UTF-8''%EC%97%BC%EC%82%B0_MSDS.pdf")
	})

	t.Run("falls back to signed url", func(t *testing.T) {
		signed := "https://blob.example.com/msds/pdfs/1_sds.pdf?sig=1"
		mockSvc.On("StreamPrimaryFile", mock.Anything, "M0002").
			Return(&service.FileStream{Filename: "Benzene_MSDS.pdf", RedirectURL: signed}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0002/file", nil))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, signed, resp.Header.Get("Location"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		mockSvc.On("StreamPrimaryFile", mock.Anything, "M0404").
			Return(nil, fmt.Errorf("%w: document M0404", service.ErrNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0404/file", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAttachmentFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService)
	app := fiber.New()
	app.Get("/documents/:id/attachments/:aid", AttachmentFile(mockSvc))

	t.Run("redirects", func(t *testing.T) {
		signed := "https://blob.example.com/msds/images/toxic.png?sig=1"
		mockSvc.On("IssueSignedAttachmentURL", mock.Anything, "M0001", int64(4)).Return(signed, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0001/attachments/4", nil))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, signed, resp.Header.Get("Location"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not linked", func(t *testing.T) {
		mockSvc.On("IssueSignedAttachmentURL", mock.Anything, "M0001", int64(9)).
			Return("", fmt.Errorf("%w: attachment 9 of document M0001", service.ErrNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0001/attachments/9", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/M0001/attachments/abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}
