package handler

import (
	"qbank/internal/dto"
	"qbank/internal/service"
	"qbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TaxonomyHandler serves the hierarchy view and the administrative node operations.
type TaxonomyHandler struct {
	service   TaxonomyManager
	validator *validation.Validator
}

func NewTaxonomyHandler(service TaxonomyManager) *TaxonomyHandler {
	return &TaxonomyHandler{service: service, validator: validation.NewValidator()}
}

// GetHierarchy godoc
// @Summary Get the taxonomy hierarchy
// @Description Returns themes with their subthemes and groups. The view is rebuilt asynchronously after every taxonomy change.
// @Tags taxonomy
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} domain.Hierarchy
// @Failure 500 {object} middleware.ErrorResponse
// @Router /taxonomy [get]
func (h *TaxonomyHandler) GetHierarchy(c *fiber.Ctx) error {
	hierarchy, err := h.service.GetHierarchy(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(hierarchy)
}

// CreateNode godoc
// @Summary Create a taxonomy node
// @Description Creates a theme, or a child of the parent's child type
// @Tags taxonomy
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateTaxonomyNodeRequest true "Node"
// @Success 201 {object} dto.TaxonomyNodeResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /admin/taxonomy/nodes [post]
func (h *TaxonomyHandler) CreateNode(c *fiber.Ctx) error {
	var req dto.CreateTaxonomyNodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateTaxonomyNode(req.ParentID, req.Name, req.Prefix); len(errs) > 0 {
		return errs
	}

	node, err := h.service.Create(c.UserContext(), service.CreateTaxonomyNodeInput{
		ParentID: req.ParentID,
		Name:     req.Name,
		Prefix:   req.Prefix,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTaxonomyNodeResponse(node))
}

// RenameNode godoc
// @Summary Rename a taxonomy node
// @Description Renames a node and propagates the name into every descendant path
// @Tags taxonomy
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Node ID"
// @Param request body dto.RenameTaxonomyNodeRequest true "New name"
// @Success 200 {object} dto.TaxonomyNodeResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /admin/taxonomy/nodes/{id} [put]
func (h *TaxonomyHandler) RenameNode(c *fiber.Ctx) error {
	var req dto.RenameTaxonomyNodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateTaxonomyNode("", req.Name, req.Prefix); len(errs) > 0 {
		return errs
	}

	node, err := h.service.Rename(c.UserContext(), service.RenameTaxonomyNodeInput{
		ID:     c.Params("id"),
		Name:   req.Name,
		Prefix: req.Prefix,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTaxonomyNodeResponse(node))
}

// DeleteNode godoc
// @Summary Delete a taxonomy node
// @Description Fails with 409 while the node has children, questions or quiz filters referencing it
// @Tags taxonomy
// @Security ApiKeyAuth
// @Param id path string true "Node ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /admin/taxonomy/nodes/{id} [delete]
func (h *TaxonomyHandler) DeleteNode(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
