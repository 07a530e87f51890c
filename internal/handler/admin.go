package handler

import (
	"qbank/internal/domain"
	"qbank/internal/dto"
	"qbank/internal/logger"
	"qbank/internal/middleware"
	"qbank/internal/service"
	"qbank/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler exposes the taxonomy backfill workflow and counter maintenance.
type AdminHandler struct {
	migrations MigrationController
	counters   CounterReconciler
	validator  *validation.Validator
}

func NewAdminHandler(migrations MigrationController, counters CounterReconciler) *AdminHandler {
	return &AdminHandler{migrations: migrations, counters: counters, validator: validation.NewValidator()}
}

// StartMigration godoc
// @Summary Start the taxonomy backfill
// @Description Starts a background run. Only one run may be active at a time.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.StartMigrationRequest false "Run options"
// @Success 202 {object} dto.StartMigrationResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /admin/migrations [post]
func (h *AdminHandler) StartMigration(c *fiber.Ctx) error {
	var req dto.StartMigrationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if errs := h.validator.ValidateBatchSize(req.BatchSize); len(errs) > 0 {
		return errs
	}

	handle, err := h.migrations.Start(c.UserContext(), service.StartMigrationInput{
		BatchSize: req.BatchSize,
		DryRun:    req.DryRun,
		Resume:    req.Resume,
	})
	if err != nil {
		return err
	}
	logger.Get().Info("Migration started via API", zap.String("handle", handle), zap.String("userID", middleware.UserID(c)))
	return c.Status(fiber.StatusAccepted).JSON(dto.StartMigrationResponse{Handle: handle})
}

// MigrationStatus godoc
// @Summary Get a backfill run's status
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Run handle"
// @Success 200 {object} domain.MigrationStatus
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/migrations/{id} [get]
func (h *AdminHandler) MigrationStatus(c *fiber.Ctx) error {
	status, err := h.migrations.Status(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(status)
}

// CancelMigration godoc
// @Summary Cancel a backfill run
// @Description Stops scheduling further batches. Committed batches are kept.
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Run handle"
// @Success 202 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /admin/migrations/{id} [delete]
func (h *AdminHandler) CancelMigration(c *fiber.Ctx) error {
	if err := h.migrations.Cancel(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.MessageResponse{Message: "cancellation requested"})
}

// ReconcileCounter godoc
// @Summary Reconcile an aggregate counter
// @Description Compares a namespace counter with an index-scoped recount and reseeds it on mismatch. An empty body selects the global namespace.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.ReconcileCounterRequest false "Namespace"
// @Success 200 {object} service.ReconcileResult
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/counters/reconcile [post]
func (h *AdminHandler) ReconcileCounter(c *fiber.Ctx) error {
	var req dto.ReconcileCounterRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	var item *domain.SelectionItem
	if req.ID != "" || req.Kind != "" {
		item = &domain.SelectionItem{Kind: domain.NodeType(req.Kind), ID: req.ID}
		if errs := h.validator.ValidateSelection([]domain.SelectionItem{*item}); len(errs) > 0 {
			return errs
		}
	}

	result, err := h.counters.ReconcileCounter(c.UserContext(), item)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
