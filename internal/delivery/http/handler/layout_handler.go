package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/pkg/utils"
	"github.com/covid-dashboard/internal/pkg/validator"
	"github.com/covid-dashboard/internal/usecase"
	"github.com/covid-dashboard/internal/usecase/dto"
)

// LayoutHandler - обработчик описания страницы
type LayoutHandler struct {
	layoutUC *usecase.LayoutUseCase
	logger   *zap.Logger
}

// NewLayoutHandler - создание нового LayoutHandler
func NewLayoutHandler(layoutUC *usecase.LayoutUseCase, logger *zap.Logger) *LayoutHandler {
	return &LayoutHandler{
		layoutUC: layoutUC,
		logger:   logger,
	}
}

// GetLayout godoc
// @Summary Описание страницы
// @Description Возвращает панели, карточки, варианты показателей, границы выбора даты и подписи на запрошенном языке. Без параметра language используется первый язык из Accept-Language.
// @Tags Layout
// @Produce json
// @Param language query string false "Язык подписей (pt-BR, en)"
// @Success 200 {object} utils.SuccessResponse{data=domain.DashboardLayout}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/layout [get]
func (h *LayoutHandler) GetLayout(c *fiber.Ctx) error {
	var req dto.LayoutRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	language := req.Language
	if language == "" {
		language = preferredLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}

	return utils.SendSuccess(c, h.layoutUC.Layout(language), nil)
}

// GetDateRange godoc
// @Summary Допустимый диапазон дат
// @Description Возвращает минимальную, максимальную и начальную дату выбора и политику их расчета
// @Tags Layout
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.DateRangeResponse}
// @Router /api/v1/date-range [get]
func (h *LayoutHandler) GetDateRange(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.NewDateRangeResponse(h.layoutUC.DateRange()), nil)
}

// preferredLanguage - первый тег заголовка Accept-Language без веса
func preferredLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	tag, _, _ := strings.Cut(first, ";")
	tag = strings.TrimSpace(tag)
	if tag == "*" {
		return ""
	}
	return tag
}
