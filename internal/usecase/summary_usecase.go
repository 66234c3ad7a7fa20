package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
	"github.com/covid-dashboard/internal/pkg/format"
)

// SummaryUseCase формирует строки карточек
type SummaryUseCase struct {
	dataset repository.DatasetRepository
	logger  *zap.Logger
}

// NewSummaryUseCase создает новый экземпляр SummaryUseCase
func NewSummaryUseCase(dataset repository.DatasetRepository, logger *zap.Logger) *SummaryUseCase {
	return &SummaryUseCase{
		dataset: dataset,
		logger:  logger,
	}
}

// Summarize возвращает четыре значения для даты и локации. Никогда не
// завершается ошибкой: если записи нет (дата вне диапазона, неизвестная
// локация, некорректная дата), все поля - плейсхолдеры.
func (uc *SummaryUseCase) Summarize(date, location string) *domain.Summary {
	summary := &domain.Summary{Date: date, Location: location}

	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		uc.logger.Debug("Summary requested for malformed date", zap.String("date", date))
		return fillSummary(summary, nil)
	}

	return fillSummary(summary, uc.dataset.Row(location, day))
}

// WorldSummary возвращает значения мирового ряда за дату
func (uc *SummaryUseCase) WorldSummary(date string) *domain.Summary {
	summary := &domain.Summary{Date: date}

	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return fillSummary(summary, nil)
	}

	row := uc.dataset.WorldRow(day)
	if row != nil {
		summary.Location = row.Location
	}
	return fillSummary(summary, row)
}

func fillSummary(summary *domain.Summary, row *domain.TimeSeriesRow) *domain.Summary {
	if row == nil {
		summary.TotalCases = format.Placeholder
		summary.NewCases = format.Placeholder
		summary.TotalDeaths = format.Placeholder
		summary.NewDeaths = format.Placeholder
		return summary
	}

	summary.Found = true
	summary.TotalCases = format.Count(row.TotalCases)
	summary.NewCases = format.Count(row.NewCases)
	summary.TotalDeaths = format.Count(row.TotalDeaths)
	summary.NewDeaths = format.Count(row.NewDeaths)
	return summary
}
