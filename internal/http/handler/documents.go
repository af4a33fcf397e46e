package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"msdsapi/internal/http/middleware"
	"msdsapi/internal/model"
	"msdsapi/internal/service"
)

// pageParams reads page and perPage; unparsable values fall back to the defaults.
func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", service.DefaultPage), c.QueryInt("perPage", service.DefaultPerPage)
}

func invalidBody(c *fiber.Ctx, err error) error {
	c.Locals(middleware.ErrorLocalKey, err)
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

// attachmentIDParam parses the :aid route parameter as a positive integer.
func attachmentIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("aid"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListDocuments godoc
// @Summary     List documents
// @Description Paginated listing ordered by id. With detailed=true every item carries its attachments.
// @Tags        documents
// @Produce     json
// @Param       page     query int  false "page number" default(1)
// @Param       perPage  query int  false "items per page" default(12)
// @Param       detailed query bool false "include attachments"
// @Success     200 {object} service.Page[model.Document]
// @Failure     500 {object} errorPayload
// @Router      /documents [get]
func ListDocuments(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, perPage := pageParams(c)
		if c.QueryBool("detailed", false) {
			res, err := svc.ListDocumentsDetailed(c.UserContext(), page, perPage)
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(res)
		}
		res, err := svc.ListDocuments(c.UserContext(), page, perPage)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetDocument godoc
// @Summary     Get a document
// @Description Returns the document with its attachments, most recently linked first.
// @Tags        documents
// @Produce     json
// @Param       id path string true "document id"
// @Success     200 {object} model.DocumentDetail
// @Failure     404 {object} errorPayload
// @Router      /documents/{id} [get]
func GetDocument(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.GetDocument(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// CreateDocument godoc
// @Summary     Create a document
// @Tags        documents
// @Accept      json
// @Produce     json
// @Param       document body model.Document true "document"
// @Success     201 {object} model.Document
// @Failure     400 {object} errorPayload
// @Failure     409 {object} errorPayload
// @Router      /documents [post]
func CreateDocument(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Document
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c, err)
		}
		doc, err := svc.CreateDocument(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// UpdateDocument godoc
// @Summary     Update a document
// @Description Partial update; omitted fields keep their value.
// @Tags        documents
// @Accept      json
// @Produce     json
// @Param       id    path string              true "document id"
// @Param       patch body model.DocumentPatch true "fields to change"
// @Success     200 {object} model.Document
// @Failure     400 {object} errorPayload
// @Failure     404 {object} errorPayload
// @Router      /documents/{id} [put]
func UpdateDocument(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch model.DocumentPatch
		if err := c.BodyParser(&patch); err != nil {
			return invalidBody(c, err)
		}
		doc, err := svc.UpdateDocument(c.UserContext(), c.Params("id"), patch)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument godoc
// @Summary     Delete a document
// @Description Idempotent. The primary file is removed best effort.
// @Tags        documents
// @Produce     json
// @Param       id path string true "document id"
// @Success     200 {object} messageResponse
// @Router      /documents/{id} [delete]
func DeleteDocument(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteDocument(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(messageResponse{Message: "document deleted"})
	}
}

// SearchDocuments godoc
// @Summary     Search documents
// @Description Case-insensitive substring match on id, title and usage. A blank q matches everything.
// @Tags        documents
// @Produce     json
// @Param       q       query string false "keyword"
// @Param       page    query int    false "page number" default(1)
// @Param       perPage query int    false "items per page" default(12)
// @Success     200 {object} service.Page[model.Document]
// @Router      /search [get]
func SearchDocuments(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, perPage := pageParams(c)
		res, err := svc.SearchDocuments(c.UserContext(), c.Query("q"), page, perPage)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetOptions godoc
// @Summary     Filter options
// @Description Distinct usages and linked attachment titles per attachment type.
// @Tags        documents
// @Produce     json
// @Success     200 {object} model.Options
// @Router      /options [get]
func GetOptions(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, err := svc.Options(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(opts)
	}
}
