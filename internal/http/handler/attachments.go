package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"msdsapi/internal/model"
	"msdsapi/internal/service"
)

// ListAttachments godoc
// @Summary     List attachments
// @Description Optionally narrowed to one document and/or one type (0 protective, 1 location, 2 warning).
// @Tags        attachments
// @Produce     json
// @Param       documentId query string false "document id"
// @Param       type       query int    false "attachment type"
// @Success     200 {array}  model.Attachment
// @Failure     400 {object} errorPayload
// @Router      /attachments [get]
func ListAttachments(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := model.AttachmentFilter{DocumentID: c.Query("documentId")}
		if raw := c.Query("type"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "type must be 0, 1 or 2")
			}
			typ := model.AttachmentType(n)
			filter.Type = &typ
		}

		items, err := svc.ListAttachments(c.UserContext(), filter)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	}
}

// CreateAttachment godoc
// @Summary     Create an attachment
// @Description Creates the attachment and links it to documentId.
// @Tags        attachments
// @Accept      json
// @Produce     json
// @Param       attachment body service.CreateAttachmentInput true "attachment"
// @Success     201 {object} model.Attachment
// @Failure     400 {object} errorPayload
// @Failure     404 {object} errorPayload
// @Failure     409 {object} errorPayload
// @Router      /attachments [post]
func CreateAttachment(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateAttachmentInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c, err)
		}
		a, err := svc.CreateAttachment(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// UpdateAttachment godoc
// @Summary     Update an attachment
// @Tags        attachments
// @Accept      json
// @Produce     json
// @Param       aid   path int                   true "attachment id"
// @Param       patch body model.AttachmentPatch true "fields to change"
// @Success     200 {object} model.Attachment
// @Failure     400 {object} errorPayload
// @Failure     404 {object} errorPayload
// @Router      /attachments/{aid} [put]
func UpdateAttachment(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aid, ok := attachmentIDParam(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid attachment id")
		}
		var patch model.AttachmentPatch
		if err := c.BodyParser(&patch); err != nil {
			return invalidBody(c, err)
		}
		a, err := svc.UpdateAttachment(c.UserContext(), aid, patch)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(a)
	}
}

// DeleteAttachment godoc
// @Summary     Delete an attachment
// @Description Relations to documents are left in place and stop resolving. Idempotent.
// @Tags        attachments
// @Produce     json
// @Param       aid path int true "attachment id"
// @Success     200 {object} messageResponse
// @Router      /attachments/{aid} [delete]
func DeleteAttachment(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aid, ok := attachmentIDParam(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid attachment id")
		}
		if err := svc.DeleteAttachment(c.UserContext(), aid); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(messageResponse{Message: "attachment deleted"})
	}
}

// LinkAttachment godoc
// @Summary     Link an attachment to a document
// @Tags        attachments
// @Produce     json
// @Param       id  path string true "document id"
// @Param       aid path int    true "attachment id"
// @Success     200 {object} messageResponse
// @Failure     404 {object} errorPayload
// @Failure     409 {object} errorPayload
// @Router      /documents/{id}/attachments/{aid} [put]
func LinkAttachment(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aid, ok := attachmentIDParam(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid attachment id")
		}
		if err := svc.LinkAttachment(c.UserContext(), c.Params("id"), aid); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(messageResponse{Message: "attachment linked"})
	}
}

// UnlinkAttachment godoc
// @Summary     Unlink an attachment from a document
// @Tags        attachments
// @Produce     json
// @Param       id  path string true "document id"
// @Param       aid path int    true "attachment id"
// @Success     200 {object} messageResponse
// @Router      /documents/{id}/attachments/{aid} [delete]
func UnlinkAttachment(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aid, ok := attachmentIDParam(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid attachment id")
		}
		if err := svc.UnlinkAttachment(c.UserContext(), c.Params("id"), aid); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(messageResponse{Message: "attachment unlinked"})
	}
}
