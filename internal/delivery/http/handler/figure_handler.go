package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/pkg/errors"
	"github.com/covid-dashboard/internal/pkg/utils"
	"github.com/covid-dashboard/internal/pkg/validator"
	"github.com/covid-dashboard/internal/usecase"
	"github.com/covid-dashboard/internal/usecase/dto"
)

// GeoJSONContentType - тип содержимого для геометрии границ
const GeoJSONContentType = "application/geo+json"

// FigureHandler - обработчик карточек, графиков и карты
type FigureHandler struct {
	summaryUC *usecase.SummaryUseCase
	chartUC   *usecase.ChartUseCase
	mapUC     *usecase.MapUseCase
	logger    *zap.Logger
}

// NewFigureHandler - создание нового FigureHandler
func NewFigureHandler(
	summaryUC *usecase.SummaryUseCase,
	chartUC *usecase.ChartUseCase,
	mapUC *usecase.MapUseCase,
	logger *zap.Logger,
) *FigureHandler {
	return &FigureHandler{
		summaryUC: summaryUC,
		chartUC:   chartUC,
		mapUC:     mapUC,
		logger:    logger,
	}
}

// GetSummary godoc
// @Summary Карточки показателей локации
// @Description Возвращает четыре строки карточек (всего случаев, новых случаев, всего смертей, новых смертей) за дату. Отсутствующие значения заменяются на "-".
// @Tags Figures
// @Produce json
// @Param date query string true "Дата в формате YYYY-MM-DD"
// @Param location query string true "ISO-код локации или национальный код"
// @Success 200 {object} utils.SuccessResponse{data=domain.Summary}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/summary [get]
func (h *FigureHandler) GetSummary(c *fiber.Ctx) error {
	var req dto.SummaryRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Debug("Summary request",
		zap.String("date", req.Date),
		zap.String("location", req.Location))

	return utils.SendSuccess(c, h.summaryUC.Summarize(req.Date, req.Location), nil)
}

// GetWorldSummary godoc
// @Summary Мировые карточки
// @Description Возвращает общее и новое число случаев в мире за дату
// @Tags Figures
// @Produce json
// @Param date query string true "Дата в формате YYYY-MM-DD"
// @Success 200 {object} utils.SuccessResponse{data=domain.Summary}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/summary/world [get]
func (h *FigureHandler) GetWorldSummary(c *fiber.Ctx) error {
	var req dto.WorldSummaryRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, h.summaryUC.WorldSummary(req.Date), nil)
}

// GetMetricChart godoc
// @Summary График показателя
// @Description Возвращает фигуру Plotly: столбцы для ежедневных показателей, линию для накопительных. Неизвестная локация дает пустой график.
// @Tags Figures
// @Produce json
// @Param metric query string true "Показатель" Enums(total_cases, new_cases, total_deaths, new_deaths)
// @Param location query string true "ISO-код локации или национальный код"
// @Success 200 {object} utils.SuccessResponse{data=domain.Figure}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/charts/metric [get]
func (h *FigureHandler) GetMetricChart(c *fiber.Ctx) error {
	var req dto.MetricChartRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	fig, err := h.chartUC.MetricChart(c.UserContext(), req.Metric, req.Location)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fig, nil)
}

// GetChoropleth godoc
// @Summary Хороплет-карта
// @Description Возвращает карту новых случаев за дату. Регионы без геометрии не попадают на карту.
// @Tags Figures
// @Produce json
// @Param date query string true "Дата в формате YYYY-MM-DD"
// @Success 200 {object} utils.SuccessResponse{data=domain.Figure}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/maps/choropleth [get]
func (h *FigureHandler) GetChoropleth(c *fiber.Ctx) error {
	var req dto.ChoroplethRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	fig, err := h.mapUC.Choropleth(c.UserContext(), req.Date)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fig, &utils.Meta{Total: fig.RegionCount()})
}

// GetBoundaries godoc
// @Summary Геометрия стран
// @Description Возвращает FeatureCollection, на которую ссылается карта
// @Tags Figures
// @Produce json
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Router /api/v1/boundaries.geojson [get]
func (h *FigureHandler) GetBoundaries(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, GeoJSONContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(h.mapUC.BoundariesGeoJSON())
}

// invalidRequest - ошибка разбора параметров запроса
func invalidRequest(err error) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()})
}
