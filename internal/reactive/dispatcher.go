package reactive

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// State - текущие значения свойств страницы
type State map[PropID]interface{}

// Clone возвращает поверхностную копию
func (s State) Clone() State {
	clone := make(State, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// Update - значения выходов, назначенные за один проход
type Update map[PropID]interface{}

// Props возвращает отсортированный список свойств
func (u Update) Props() []PropID {
	props := make([]PropID, 0, len(u))
	for p := range u {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
	return props
}

// Callback - контекст вызова привязки: значения всех ее входов и свойства,
// изменение которых вызвало пересчет. При первичной отрисовке Triggered пуст.
type Callback struct {
	Inputs    []interface{}
	Triggered []PropID
}

// TriggeredBy проверяет, было ли свойство среди вызвавших пересчет
func (c *Callback) TriggeredBy(p PropID) bool {
	for _, t := range c.Triggered {
		if t == p {
			return true
		}
	}
	return false
}

// Input возвращает значение i-го входа
func (c *Callback) Input(i int) interface{} {
	if i < 0 || i >= len(c.Inputs) {
		return nil
	}
	return c.Inputs[i]
}

// String возвращает i-й вход как строку, пустую если это не строка
func (c *Callback) String(i int) string {
	s, _ := c.Input(i).(string)
	return s
}

// Dispatcher выполняет проходы пересчета по реестру.
// Проход синхронный: все привязки завершаются до возврата.
type Dispatcher struct {
	registry *Registry
	logger   *zap.Logger
}

// NewDispatcher создает диспетчер
func NewDispatcher(registry *Registry, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		logger:   logger,
	}
}

// InitialRender вызывает каждую привязку один раз со значениями по умолчанию.
// state обновляется только при успехе.
func (d *Dispatcher) InitialRender(ctx context.Context, state State) (Update, error) {
	return d.run(ctx, state, nil, true)
}

// Dispatch применяет изменения входов и пересчитывает затронутые привязки.
// Изменять можно только свойства, объявленные входами. При ошибке state не меняется.
func (d *Dispatcher) Dispatch(ctx context.Context, state State, changes map[PropID]interface{}) (Update, error) {
	for p := range changes {
		if !d.registry.IsInput(p) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, p)
		}
	}
	return d.run(ctx, state, changes, false)
}

func (d *Dispatcher) run(ctx context.Context, state State, changes map[PropID]interface{}, all bool) (Update, error) {
	working := state.Clone()
	changed := make(map[PropID]struct{}, len(changes))
	for p, v := range changes {
		working[p] = v
		changed[p] = struct{}{}
	}

	update := make(Update)
	for _, b := range d.registry.Ordered() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var triggered []PropID
		if !all {
			for _, in := range b.Inputs {
				if _, ok := changed[in]; ok {
					triggered = append(triggered, in)
				}
			}
			if len(triggered) == 0 {
				continue
			}
		}

		cb := &Callback{
			Inputs:    make([]interface{}, len(b.Inputs)),
			Triggered: triggered,
		}
		for i, in := range b.Inputs {
			cb.Inputs[i] = working[in]
		}

		outputs, err := b.Fn(ctx, cb)
		if err != nil {
			d.logger.Error("Binding failed",
				zap.String("binding", b.Name),
				zap.Error(err))
			return nil, fmt.Errorf("binding %s: %w", b.Name, err)
		}
		if len(outputs) != len(b.Outputs) {
			return nil, fmt.Errorf("binding %s: %w: got %d, want %d", b.Name, ErrOutputCount, len(outputs), len(b.Outputs))
		}

		for i, out := range b.Outputs {
			working[out] = outputs[i]
			update[out] = outputs[i]
			changed[out] = struct{}{}
		}

		d.logger.Debug("Binding recomputed",
			zap.String("binding", b.Name),
			zap.Int("triggered", len(triggered)))
	}

	for p, v := range working {
		state[p] = v
	}
	return update, nil
}
