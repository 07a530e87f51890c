package handler

import (
	"qbank/internal/domain"
	"qbank/internal/dto"
	"qbank/internal/middleware"
	"qbank/internal/service"
	"qbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler serves selection counting and resolution plus question writes.
type QuestionHandler struct {
	queries   QuestionQuerier
	questions QuestionManager
	validator *validation.Validator
}

func NewQuestionHandler(queries QuestionQuerier, questions QuestionManager) *QuestionHandler {
	return &QuestionHandler{queries: queries, questions: questions, validator: validation.NewValidator()}
}

func (h *QuestionHandler) parseQuery(c *fiber.Ctx) ([]domain.SelectionItem, domain.QuestionMode, error) {
	var req dto.QuestionQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	selection := dto.ToSelection(req.Selection)
	errs := h.validator.ValidateSelection(selection)
	errs = append(errs, h.validator.ValidateQuestionMode(req.QuestionMode)...)
	if len(errs) > 0 {
		return nil, "", errs
	}
	mode, _ := domain.ParseQuestionMode(req.QuestionMode)
	return selection, mode, nil
}

// CountQuestions godoc
// @Summary Count qualifying questions
// @Description Applies most-specific-wins to the selection, then the history predicate. An empty selection counts every question.
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.QuestionQueryRequest true "Selection"
// @Success 200 {object} dto.CountQuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/count [post]
func (h *QuestionHandler) CountQuestions(c *fiber.Ctx) error {
	selection, mode, err := h.parseQuery(c)
	if err != nil {
		return err
	}
	count, err := h.queries.Count(c.UserContext(), selection, mode, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.CountQuestionsResponse{Count: count, QuestionMode: string(mode)})
}

// ResolveQuestions godoc
// @Summary Resolve qualifying question ids
// @Description Same selection semantics as the count endpoint, returning the deduplicated ids
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.QuestionQueryRequest true "Selection"
// @Success 200 {object} dto.ResolveQuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/resolve [post]
func (h *QuestionHandler) ResolveQuestions(c *fiber.Ctx) error {
	selection, mode, err := h.parseQuery(c)
	if err != nil {
		return err
	}
	ids, err := h.queries.Resolve(c.UserContext(), selection, mode, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.ResolveQuestionsResponse{QuestionIDs: ids, Count: len(ids)})
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateQuestion(req.ThemeID, req.SubthemeID, req.GroupID, req.Content); len(errs) > 0 {
		return errs
	}

	q, err := h.questions.Create(c.UserContext(), service.CreateQuestionInput{
		ThemeID:    req.ThemeID,
		SubthemeID: req.SubthemeID,
		GroupID:    req.GroupID,
		Content:    req.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuestionResponse(q))
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.questions.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
