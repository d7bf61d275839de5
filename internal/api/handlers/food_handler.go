package handlers

import (
	"errors"
	"strconv"

	"leftunder/domain"
	"leftunder/internal/api/presenters"
	"leftunder/pkg/food"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		CreateFoodItems(c *fiber.Ctx) error
		ReadFoodItems(c *fiber.Ctx) error
		UpdateFoodItems(c *fiber.Ctx) error
		MarkConsumedDiscarded(c *fiber.Ctx) error
		DeleteFoodItems(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func (h *foodHandler) CreateFoodItems(c *fiber.Ctx) error {
	req := new(domain.CreateFoodItemPayload)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFoodItems, err)
	}

	res, err := h.foodService.CreateFoodItems(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusOK, domain.MessageUserNotFound, nil)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFoodItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *foodHandler) ReadFoodItems(c *fiber.Ctx) error {
	telegramUserID, err := strconv.ParseInt(c.Query("telegram_user_id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.foodService.ReadFoodItems(c.Context(), telegramUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusOK, domain.MessageUserNotFound, nil)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReadFoodItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *foodHandler) UpdateFoodItems(c *fiber.Ctx) error {
	req := new(domain.UpdateFoodItemPayload)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItems, err)
	}

	res, err := h.foodService.UpdateFoodItems(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusOK, domain.MessageUserNotFound, nil)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *foodHandler) MarkConsumedDiscarded(c *fiber.Ctx) error {
	req := new(domain.ConsumedDiscardedPayload)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItems, err)
	}

	res, err := h.foodService.MarkConsumedDiscarded(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusOK, domain.MessageUserNotFound, nil)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *foodHandler) DeleteFoodItems(c *fiber.Ctx) error {
	req := new(domain.DeleteFoodItemPayload)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteFoodItems, err)
	}

	res, err := h.foodService.DeleteFoodItems(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusOK, domain.MessageUserNotFound, nil)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteFoodItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
