package handler

import (
	"github.com/gofiber/fiber/v2"

	"msdsapi/internal/service"
)

// legacyFileField is the multipart field name older clients still send.
const legacyFileField = "pdf_file"

type uploadResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath"`
}

// UploadPrimaryFile godoc
// @Summary     Upload the document PDF
// @Description Stores a .pdf under pdfs/{unixMillis}_{name} and points the document at it.
// @Tags        files
// @Accept      mpfd
// @Produce     json
// @Param       id   path     string true "document id"
// @Param       file formData file   true "PDF file"
// @Success     200 {object} uploadResponse
// @Failure     400 {object} errorPayload
// @Failure     404 {object} errorPayload
// @Failure     500 {object} errorPayload
// @Router      /documents/{id}/file [post]
func UploadPrimaryFile(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			fh, err = c.FormFile(legacyFileField)
		}
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		key, err := svc.UploadPrimaryFile(c.UserContext(), c.Params("id"), f, fh.Size, fh.Filename)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(uploadResponse{Message: "file uploaded", FilePath: key})
	}
}

// DeletePrimaryFile godoc
// @Summary     Delete the document PDF
// @Tags        files
// @Produce     json
// @Param       id path string true "document id"
// @Success     200 {object} messageResponse
// @Failure     404 {object} errorPayload
// @Router      /documents/{id}/file [delete]
func DeletePrimaryFile(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeletePrimaryFile(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(messageResponse{Message: "file deleted"})
	}
}

// DownloadPrimaryFile godoc
// @Summary     Redirect to the document PDF
// @Description 302 to a signed URL. download=1 asks the browser to save instead of display.
// @Tags        files
// @Param       id       path  string true  "document id"
// @Param       download query bool   false "force download"
// @Success     302
// @Failure     404 {object} errorPayload
// @Router      /documents/{id}/download [get]
func DownloadPrimaryFile(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.IssueSignedDownloadURL(c.UserContext(), c.Params("id"), c.QueryBool("download", false))
		if err != nil {
			return serviceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

// StreamPrimaryFile godoc
// @Summary     Stream the document PDF
// @Description Serves the bytes as {title}_MSDS.pdf, or redirects to a signed URL when the store cannot be read.
// @Tags        files
// @Produce     application/pdf
// @Param       id path string true "document id"
// @Success     200 {file} binary
// @Success     302
// @Failure     404 {object} errorPayload
// @Router      /documents/{id}/file [get]
func StreamPrimaryFile(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fs, err := svc.StreamPrimaryFile(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		if fs.RedirectURL != "" {
			return c.Redirect(fs.RedirectURL, fiber.StatusFound)
		}

		c.Set(fiber.HeaderContentType, fs.ContentType)
		c.Set(fiber.HeaderContentDisposition, service.ContentDisposition(fs.Filename))
		size := int(fs.Size)
		if size <= 0 {
			size = -1
		}
		// fasthttp closes the body once it has been written.
		return c.SendStream(fs.Body, size)
	}
}

// AttachmentFile godoc
// @Summary     Redirect to an attachment image
// @Tags        files
// @Param       id  path string true "document id"
// @Param       aid path int    true "attachment id"
// @Success     302
// @Failure     404 {object} errorPayload
// @Router      /documents/{id}/attachments/{aid} [get]
func AttachmentFile(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aid, ok := attachmentIDParam(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid attachment id")
		}
		u, err := svc.IssueSignedAttachmentURL(c.UserContext(), c.Params("id"), aid)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}
