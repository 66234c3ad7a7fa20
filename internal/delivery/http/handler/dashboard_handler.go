package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/pkg/utils"
	"github.com/covid-dashboard/internal/pkg/validator"
	"github.com/covid-dashboard/internal/usecase"
	"github.com/covid-dashboard/internal/usecase/dto"
)

// DashboardHandler - обработчик сессий интерактивного дашборда
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

// NewDashboardHandler - создание нового DashboardHandler
func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// CreateSession godoc
// @Summary Создание сессии
// @Description Создает сессию с выбором по умолчанию (последняя дата, национальный ряд, новые случаи) и возвращает все значения первичной отрисовки
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *DashboardHandler) CreateSession(c *fiber.Ctx) error {
	result, err := h.dashboardUC.CreateSession(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, result, nil)
}

// GetSession godoc
// @Summary Состояние сессии
// @Description Возвращает текущий выбор и все значения свойств сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *DashboardHandler) GetSession(c *fiber.Ctx) error {
	result, err := h.dashboardUC.GetSession(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ApplyEvent godoc
// @Summary Изменение входов сессии
// @Description Применяет изменения свойств вида "компонент.свойство" и возвращает только пересчитанные выходы. При ошибке состояние сессии не меняется.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SessionEventRequest true "Изменения входов"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/events [post]
func (h *DashboardHandler) ApplyEvent(c *fiber.Ctx) error {
	var req dto.SessionEventRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Debug("Session event",
		zap.String("session_id", c.Params("id")),
		zap.Int("changes", len(req.Changes)))

	result, err := h.dashboardUC.ApplyEvent(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// DeleteSession godoc
// @Summary Закрытие сессии
// @Tags Sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *DashboardHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.dashboardUC.DeleteSession(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
