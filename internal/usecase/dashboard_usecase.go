package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
	"github.com/covid-dashboard/internal/pkg/errors"
	"github.com/covid-dashboard/internal/reactive"
	"github.com/covid-dashboard/internal/usecase/dto"
)

// DashboardUseCase связывает компоненты страницы через реактивный реестр и
// хранит состояние выбора для каждой сессии браузера
type DashboardUseCase struct {
	dataset       repository.DatasetRepository
	summaryUC     *SummaryUseCase
	chartUC       *ChartUseCase
	mapUC         *MapUseCase
	registry      *reactive.Registry
	dispatcher    *reactive.Dispatcher
	sessions      *sessionStore
	national      string
	defaultMetric domain.Metric
	logger        *zap.Logger
	now           func() time.Time
}

// NewDashboardUseCase создает новый экземпляр DashboardUseCase
func NewDashboardUseCase(
	dataset repository.DatasetRepository,
	summaryUC *SummaryUseCase,
	chartUC *ChartUseCase,
	mapUC *MapUseCase,
	national string,
	defaultMetric domain.Metric,
	logger *zap.Logger,
) (*DashboardUseCase, error) {
	uc := &DashboardUseCase{
		dataset:       dataset,
		summaryUC:     summaryUC,
		chartUC:       chartUC,
		mapUC:         mapUC,
		registry:      reactive.NewRegistry(),
		sessions:      newSessionStore(),
		national:      national,
		defaultMetric: defaultMetric,
		logger:        logger,
		now:           time.Now,
	}

	for _, b := range uc.bindings() {
		if err := uc.registry.Register(b); err != nil {
			return nil, err
		}
	}
	uc.dispatcher = reactive.NewDispatcher(uc.registry, logger)

	return uc, nil
}

func (uc *DashboardUseCase) bindings() []reactive.Binding {
	return []reactive.Binding{
		{
			Name:    "location-selector",
			Outputs: []reactive.PropID{domain.PropLocation},
			Inputs:  []reactive.PropID{domain.PropMapClick, domain.PropToggleClicks},
			Fn: func(_ context.Context, cb *reactive.Callback) ([]interface{}, error) {
				return []interface{}{
					SelectLocation(cb.Input(0), cb.TriggeredBy(domain.PropToggleClicks), uc.national),
				}, nil
			},
		},
		{
			Name: "summary",
			Outputs: []reactive.PropID{
				domain.PropTotalCasesText,
				domain.PropNewCasesText,
				domain.PropTotalDeathsText,
				domain.PropNewDeathsText,
			},
			Inputs: []reactive.PropID{domain.PropDatePicker, domain.PropLocation},
			Fn: func(_ context.Context, cb *reactive.Callback) ([]interface{}, error) {
				s := uc.summaryUC.Summarize(cb.String(0), cb.String(1))
				return []interface{}{s.TotalCases, s.NewCases, s.TotalDeaths, s.NewDeaths}, nil
			},
		},
		{
			Name:    "world-summary",
			Outputs: []reactive.PropID{domain.PropWorldTotalCasesText, domain.PropWorldNewCasesText},
			Inputs:  []reactive.PropID{domain.PropDatePicker},
			Fn: func(_ context.Context, cb *reactive.Callback) ([]interface{}, error) {
				s := uc.summaryUC.WorldSummary(cb.String(0))
				return []interface{}{s.TotalCases, s.NewCases}, nil
			},
		},
		{
			Name:    "metric-chart",
			Outputs: []reactive.PropID{domain.PropChartFigure},
			Inputs:  []reactive.PropID{domain.PropMetricDropdown, domain.PropLocation},
			Fn: func(ctx context.Context, cb *reactive.Callback) ([]interface{}, error) {
				fig, err := uc.chartUC.MetricChart(ctx, cb.String(0), cb.String(1))
				if err != nil {
					return nil, err
				}
				return []interface{}{fig}, nil
			},
		},
		{
			Name:    "choropleth-map",
			Outputs: []reactive.PropID{domain.PropMapFigure},
			Inputs:  []reactive.PropID{domain.PropDatePicker},
			Fn: func(ctx context.Context, cb *reactive.Callback) ([]interface{}, error) {
				fig, err := uc.mapUC.Choropleth(ctx, cb.String(0))
				if err != nil {
					return nil, err
				}
				return []interface{}{fig}, nil
			},
		},
	}
}

// DefaultState - значения входов при открытии страницы
func (uc *DashboardUseCase) DefaultState() reactive.State {
	return reactive.State{
		domain.PropDatePicker:     uc.dataset.DateRange().Default.Format(domain.DateLayout),
		domain.PropMetricDropdown: string(uc.defaultMetric),
		domain.PropMapClick:       nil,
		domain.PropToggleClicks:   int64(0),
		domain.PropLocation:       uc.national,
	}
}

// CreateSession открывает новую сессию и выполняет первичную отрисовку
func (uc *DashboardUseCase) CreateSession(ctx context.Context) (*dto.SessionResponse, error) {
	now := uc.now()
	sess := &session{
		id:        uuid.New(),
		state:     uc.DefaultState(),
		createdAt: now,
		updatedAt: now,
	}

	if _, err := uc.dispatcher.InitialRender(ctx, sess.state); err != nil {
		return nil, callbackError(err)
	}

	uc.sessions.add(sess)

	uc.logger.Info("Dashboard session created",
		zap.String("session_id", sess.id.String()),
		zap.String("date", sess.state[domain.PropDatePicker].(string)))

	return uc.response(sess, reactive.Update(sess.state.Clone())), nil
}

// GetSession возвращает текущее состояние сессии со всеми значениями
func (uc *DashboardUseCase) GetSession(id string) (*dto.SessionResponse, error) {
	sess, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return uc.response(sess, reactive.Update(sess.state.Clone())), nil
}

// ApplyEvent применяет изменения входов сессии и возвращает только
// пересчитанные выходы. При ошибке состояние сессии не меняется.
func (uc *DashboardUseCase) ApplyEvent(ctx context.Context, id string, req *dto.SessionEventRequest) (*dto.SessionResponse, error) {
	sess, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}

	changes, err := uc.normalizeChanges(req.Changes)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	update, err := uc.dispatcher.Dispatch(ctx, sess.state, changes)
	if err != nil {
		if stderrors.Is(err, reactive.ErrUnknownProperty) {
			return nil, errors.ErrUnknownProperty.WithDetails(map[string]interface{}{"reason": err.Error()})
		}
		return nil, callbackError(err)
	}
	sess.updatedAt = uc.now()

	uc.logger.Debug("Dashboard event applied",
		zap.String("session_id", sess.id.String()),
		zap.Int("changes", len(changes)),
		zap.Int("outputs", len(update)))

	return uc.response(sess, update), nil
}

// DeleteSession закрывает сессию
func (uc *DashboardUseCase) DeleteSession(id string) error {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return errors.ErrSessionNotFound
	}
	if !uc.sessions.delete(sessionID) {
		return errors.ErrSessionNotFound
	}
	return nil
}

// EvictIdleSessions удаляет сессии, простаивающие дольше ttl
func (uc *DashboardUseCase) EvictIdleSessions(ttl time.Duration) int {
	evicted := uc.sessions.evictIdle(uc.now(), ttl)
	if evicted > 0 {
		uc.logger.Info("Idle dashboard sessions evicted",
			zap.Int("evicted", evicted),
			zap.Int("active", uc.sessions.len()))
	}
	return evicted
}

// RunSessionJanitor периодически удаляет простаивающие сессии до отмены ctx
func (uc *DashboardUseCase) RunSessionJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			uc.EvictIdleSessions(ttl)
		}
	}
}

func (uc *DashboardUseCase) lookup(id string) (*session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrSessionNotFound.WithDetails(map[string]interface{}{"session_id": id})
	}
	sess, ok := uc.sessions.get(sessionID)
	if !ok {
		return nil, errors.ErrSessionNotFound.WithDetails(map[string]interface{}{"session_id": id})
	}
	return sess, nil
}

// normalizeChanges проверяет значения входов до пересчета. JSON-числа
// приводятся к int64, даты и показатели проверяются на формат.
func (uc *DashboardUseCase) normalizeChanges(raw map[string]interface{}) (map[reactive.PropID]interface{}, error) {
	if len(raw) == 0 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"changes": "required"})
	}

	changes := make(map[reactive.PropID]interface{}, len(raw))
	for key, value := range raw {
		prop := reactive.PropID(key)
		if !uc.registry.IsInput(prop) {
			return nil, errors.ErrUnknownProperty.WithDetails(map[string]interface{}{"property": key})
		}
		if _, owned := uc.registry.Owner(prop); owned {
			return nil, errors.ErrUnknownProperty.WithDetails(map[string]interface{}{
				"property": key,
				"reason":   "property is computed and cannot be set directly",
			})
		}

		switch prop {
		case domain.PropDatePicker:
			date, ok := value.(string)
			if !ok {
				return nil, errors.ErrInvalidDate.WithDetails(map[string]interface{}{"date": value})
			}
			if _, err := time.Parse(domain.DateLayout, date); err != nil {
				return nil, errors.ErrInvalidDate.WithDetails(map[string]interface{}{"date": date})
			}
			changes[prop] = date

		case domain.PropMetricDropdown:
			metric, _ := value.(string)
			if _, err := domain.ParseMetric(metric); err != nil {
				return nil, errors.ErrInvalidMetric.WithDetails(map[string]interface{}{"metric": value})
			}
			changes[prop] = metric

		case domain.PropToggleClicks:
			clicks, ok := toInt64(value)
			if !ok {
				return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"property": key, "reason": "expected a number"})
			}
			changes[prop] = clicks

		case domain.PropMapClick:
			if value != nil {
				if _, ok := value.(map[string]interface{}); !ok {
					return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"property": key, "reason": "expected an object"})
				}
			}
			changes[prop] = value

		default:
			changes[prop] = value
		}
	}
	return changes, nil
}

func (uc *DashboardUseCase) response(sess *session, outputs reactive.Update) *dto.SessionResponse {
	values := make(map[string]interface{}, len(outputs))
	for _, p := range outputs.Props() {
		values[string(p)] = outputs[p]
	}

	return &dto.SessionResponse{
		SessionID: sess.id.String(),
		Selection: selection(sess.state),
		Outputs:   values,
		CreatedAt: sess.createdAt,
		UpdatedAt: sess.updatedAt,
	}
}

func selection(state reactive.State) domain.SelectionState {
	date, _ := state[domain.PropDatePicker].(string)
	location, _ := state[domain.PropLocation].(string)
	metric, _ := state[domain.PropMetricDropdown].(string)
	return domain.SelectionState{
		Date:     date,
		Location: location,
		Metric:   domain.Metric(metric),
	}
}

// callbackError сохраняет AppError из привязки (например, INVALID_DATE),
// остальные ошибки оборачивает в CALLBACK_FAILED
func callbackError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return errors.ErrCallbackFailed.WithDetails(map[string]interface{}{"reason": err.Error()})
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}
