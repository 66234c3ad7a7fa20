package usecase

import (
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
	"github.com/covid-dashboard/internal/pkg/i18n"
)

// Цвета темы и карточек страницы
const (
	ThemeBackground       = "#242424"
	ThemeHeaderBackground = "#1E1E1E"
	ThemeText             = "#FFFFFF"

	CardColorWorld  = "#adfc92"
	CardColorCases  = "#389fd6"
	CardColorDeaths = "#DF2935"

	datePickerDisplayFormat = "MMMM D, YYYY"
)

// LayoutUseCase описывает расположение панелей страницы
type LayoutUseCase struct {
	dataset       repository.DatasetRepository
	translator    *i18n.Translator
	national      string
	defaultMetric domain.Metric
	logger        *zap.Logger
}

// NewLayoutUseCase создает новый экземпляр LayoutUseCase
func NewLayoutUseCase(
	dataset repository.DatasetRepository,
	translator *i18n.Translator,
	national string,
	defaultMetric domain.Metric,
	logger *zap.Logger,
) *LayoutUseCase {
	return &LayoutUseCase{
		dataset:       dataset,
		translator:    translator,
		national:      national,
		defaultMetric: defaultMetric,
		logger:        logger,
	}
}

// Layout возвращает описание страницы на запрошенном языке.
// Неподдерживаемый язык заменяется языком по умолчанию.
func (uc *LayoutUseCase) Layout(requested string) *domain.DashboardLayout {
	language := uc.translator.Match(requested)
	if requested != "" && language != requested {
		uc.logger.Debug("Layout language resolved",
			zap.String("requested", requested),
			zap.String("language", language))
	}

	t := func(id string) string {
		return uc.translator.T(language, id)
	}

	dates := uc.dataset.DateRange()

	options := make([]domain.MetricOption, 0, len(domain.Metrics))
	for _, m := range domain.Metrics {
		options = append(options, domain.MetricOption{
			Label: t("metric_" + string(m)),
			Value: string(m),
		})
	}

	return &domain.DashboardLayout{
		Title:     t("title"),
		Language:  language,
		Languages: uc.translator.Languages(),
		Theme: domain.Theme{
			Background:       ThemeBackground,
			HeaderBackground: ThemeHeaderBackground,
			Text:             ThemeText,
		},
		DatePicker: domain.DatePickerSpec{
			ID:                  domain.PropDatePicker,
			Prompt:              t("date_prompt"),
			MinDateAllowed:      dates.Min.Format(domain.DateLayout),
			MaxDateAllowed:      dates.Max.Format(domain.DateLayout),
			InitialVisibleMonth: dates.Min.Format(domain.DateLayout),
			Date:                dates.Default.Format(domain.DateLayout),
			DisplayFormat:       datePickerDisplayFormat,
		},
		Cards: []domain.Card{
			{
				Title:      t("card_world_total_cases"),
				ValueID:    domain.PropWorldTotalCasesText,
				Subtitle:   t("card_world_new_cases"),
				SubValueID: domain.PropWorldNewCasesText,
				Color:      CardColorWorld,
			},
			{
				Title:      t("card_total_cases"),
				ValueID:    domain.PropTotalCasesText,
				Subtitle:   t("card_new_cases"),
				SubValueID: domain.PropNewCasesText,
				Color:      CardColorCases,
			},
			{
				Title:      t("card_total_deaths"),
				ValueID:    domain.PropTotalDeathsText,
				Subtitle:   t("card_new_deaths"),
				SubValueID: domain.PropNewDeathsText,
				Color:      CardColorDeaths,
			},
		},
		Metrics: domain.MetricDropdown{
			ID:      domain.PropMetricDropdown,
			Prompt:  t("metric_prompt"),
			Value:   string(uc.defaultMetric),
			Options: options,
		},
		Graphs: []domain.GraphPanel{
			{ID: domain.PropChartFigure, Column: 0, Width: 5},
			{ID: domain.PropMapFigure, Column: 1, Width: 7},
		},
		Toggle: domain.ToggleButton{
			ID:    domain.PropToggleClicks,
			Label: uc.national,
		},
	}
}

// DateRange возвращает границы выбора даты
func (uc *LayoutUseCase) DateRange() domain.DateRange {
	return uc.dataset.DateRange()
}
