package controller

import (
	"errors"

	"ai-profiling-be/internal/dto"
	"ai-profiling-be/internal/pkg/serverutils"
	"ai-profiling-be/internal/service"
	"ai-profiling-be/pkg/refine"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRefinementController interface {
	RegisterRoutes(r fiber.Router)
	StartRound(ctx *fiber.Ctx) error
	NextQuestion(ctx *fiber.Ctx) error
	SubmitAnswer(ctx *fiber.Ctx) error
	AbandonRound(ctx *fiber.Ctx) error
}

type refinementController struct {
	service service.IRefinementService
}

func NewRefinementController(service service.IRefinementService) IRefinementController {
	return &refinementController{service: service}
}

func (c *refinementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/refinement/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/rounds", c.StartRound)
	h.Get("/question", c.NextQuestion)
	h.Post("/answers", c.SubmitAnswer)
	h.Delete("/rounds/current", c.AbandonRound)
}

func (c *refinementController) StartRound(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user"))
	}

	res, err := c.service.StartRound(ctx.Context(), userId)
	if err != nil {
		return refinementError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Refinement round", res))
}

func (c *refinementController) NextQuestion(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user"))
	}

	res, err := c.service.GetNextQuestion(ctx.Context(), userId)
	if err != nil {
		return refinementError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Next question", res))
}

func (c *refinementController) SubmitAnswer(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user"))
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.SubmitAnswer(ctx.Context(), userId, &req)
	if err != nil {
		return refinementError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Answer recorded", res))
}

func (c *refinementController) AbandonRound(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user"))
	}

	if err := c.service.Abandon(ctx.Context(), userId); err != nil {
		return refinementError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Round abandoned", nil))
}

// refinementError maps loop errors onto HTTP statuses. Storage failures are
// 503 so clients know a retry is sensible.
func refinementError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, refine.ErrInvalidInput):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	case errors.Is(err, refine.ErrRoundInProgress):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	case errors.Is(err, refine.ErrNoActiveRound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	case errors.Is(err, refine.ErrStorage):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "Storage temporarily unavailable, please retry"))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(userIdStr)
}
