package handler

import (
	"qbank/internal/domain"
	"qbank/internal/dto"
	"qbank/internal/middleware"
	"qbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CustomQuizHandler generates custom quizzes and serves them to their authors.
type CustomQuizHandler struct {
	service   CustomQuizManager
	validator *validation.Validator
}

func NewCustomQuizHandler(service CustomQuizManager) *CustomQuizHandler {
	return &CustomQuizHandler{service: service, validator: validation.NewValidator()}
}

// CreateCustomQuiz godoc
// @Summary Generate a custom quiz
// @Description Resolves the selection, samples up to the size cap and stores the quiz with an initial session
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateCustomQuizRequest true "Quiz request"
// @Success 201 {object} dto.CreateCustomQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse "No qualifying questions"
// @Router /quizzes/custom [post]
func (h *CustomQuizHandler) CreateCustomQuiz(c *fiber.Ctx) error {
	var req dto.CreateCustomQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	selection := dto.ToSelection(req.Selection)
	if errs := h.validator.ValidateCustomQuiz(req.Name, req.TestMode, req.QuestionMode, req.Size, selection); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Create(c.UserContext(), domain.CreateCustomQuizInput{
		Name:          req.Name,
		TestMode:      req.TestMode,
		QuestionMode:  req.QuestionMode,
		RequestedSize: req.Size,
		Selection:     selection,
		UserID:        middleware.UserID(c),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateCustomQuizResponse{
		QuizID:        result.QuizID,
		SessionID:     result.SessionID,
		QuestionCount: result.QuestionCount,
	})
}

// GetCustomQuiz godoc
// @Summary Get a custom quiz
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.CustomQuizResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/custom/{id} [get]
func (h *CustomQuizHandler) GetCustomQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.Get(c.UserContext(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCustomQuizResponse(quiz))
}

// DeleteCustomQuiz godoc
// @Summary Delete a custom quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/custom/{id} [delete]
func (h *CustomQuizHandler) DeleteCustomQuiz(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id"), middleware.UserID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
