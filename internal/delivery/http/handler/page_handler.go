package handler

import (
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/usecase"
	"github.com/covid-dashboard/web"
)

// PlotlyURL - адрес Plotly.js, которым страница рисует фигуры
const PlotlyURL = "https://cdn.plot.ly/plotly-2.27.0.min.js"

// PageData - данные шаблона страницы
type PageData struct {
	*domain.DashboardLayout
	PlotlyURL string
}

// PageHandler - хендлер рендеринга страницы дашборда
type PageHandler struct {
	layoutUC  *usecase.LayoutUseCase
	templates *template.Template
	logger    *zap.Logger
}

// NewPageHandler - создание нового хендлера страницы
func NewPageHandler(layoutUC *usecase.LayoutUseCase, logger *zap.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	return &PageHandler{
		layoutUC:  layoutUC,
		templates: tmpl,
		logger:    logger,
	}, nil
}

// RenderDashboard - рендеринг страницы на языке из ?language= или Accept-Language
func (h *PageHandler) RenderDashboard(c *fiber.Ctx) error {
	language := c.Query("language")
	if language == "" {
		language = preferredLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}

	data := PageData{
		DashboardLayout: h.layoutUC.Layout(language),
		PlotlyURL:       PlotlyURL,
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if err := h.templates.ExecuteTemplate(c.Response().BodyWriter(), "index.html", data); err != nil {
		h.logger.Error("Failed to render dashboard page", zap.Error(err))
		return err
	}
	return nil
}
