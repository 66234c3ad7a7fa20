// Package reactive реализует слой реактивных привязок: набор именованных
// выходов, каждый из которых пересчитывается чистой функцией при изменении
// любого из объявленных входов.
//
// Свойства адресуются строкой "компонент.свойство". Выход одной привязки может
// быть входом другой, тогда пересчет распространяется по графу в
// топологическом порядке.
package reactive

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoOutputs       = errors.New("binding has no outputs")
	ErrNoInputs        = errors.New("binding has no inputs")
	ErrDuplicateOutput = errors.New("output is already bound")
	ErrCycle           = errors.New("bindings form a cycle")
	ErrUnknownProperty = errors.New("property is not an input of any binding")
	ErrOutputCount     = errors.New("binding returned wrong number of outputs")
)

// PropID - идентификатор свойства компонента
type PropID string

// Prop собирает PropID из компонента и свойства
func Prop(component, property string) PropID {
	return PropID(component + "." + property)
}

// Component возвращает часть до точки
func (p PropID) Component() string {
	component, _, _ := strings.Cut(string(p), ".")
	return component
}

// Func пересчитывает выходы. Возвращает значения в порядке Binding.Outputs.
type Func func(ctx context.Context, cb *Callback) ([]interface{}, error)

// Binding - связь (выходы, входы, функция пересчета)
type Binding struct {
	Name    string
	Outputs []PropID
	Inputs  []PropID
	Fn      Func
}

// Registry хранит привязки в топологическом порядке
type Registry struct {
	bindings []*Binding
	byOutput map[PropID]*Binding
	inputs   map[PropID]struct{}
	order    []*Binding
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{
		byOutput: make(map[PropID]*Binding),
		inputs:   make(map[PropID]struct{}),
	}
}

// Register добавляет привязку. Один выход может принадлежать только одной
// привязке, циклы запрещены.
func (r *Registry) Register(b Binding) error {
	if len(b.Outputs) == 0 {
		return fmt.Errorf("%s: %w", b.Name, ErrNoOutputs)
	}
	if len(b.Inputs) == 0 {
		return fmt.Errorf("%s: %w", b.Name, ErrNoInputs)
	}
	if b.Fn == nil {
		return fmt.Errorf("%s: binding has no function", b.Name)
	}

	seen := make(map[PropID]struct{}, len(b.Outputs))
	for _, out := range b.Outputs {
		if owner, ok := r.byOutput[out]; ok {
			return fmt.Errorf("%s: %w: %s (owned by %s)", b.Name, ErrDuplicateOutput, out, owner.Name)
		}
		if _, ok := seen[out]; ok {
			return fmt.Errorf("%s: %w: %s", b.Name, ErrDuplicateOutput, out)
		}
		seen[out] = struct{}{}
	}

	binding := &Binding{
		Name:    b.Name,
		Outputs: append([]PropID(nil), b.Outputs...),
		Inputs:  append([]PropID(nil), b.Inputs...),
		Fn:      b.Fn,
	}

	candidate := append(append([]*Binding(nil), r.bindings...), binding)
	order, err := topoSort(candidate)
	if err != nil {
		return fmt.Errorf("%s: %w", b.Name, err)
	}

	r.bindings = candidate
	r.order = order
	for _, out := range binding.Outputs {
		r.byOutput[out] = binding
	}
	for _, in := range binding.Inputs {
		r.inputs[in] = struct{}{}
	}
	return nil
}

// MustRegister - Register, паникующий при ошибке. Для статической разводки при старте.
func (r *Registry) MustRegister(b Binding) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// IsInput проверяет, что свойство объявлено входом хотя бы одной привязки
func (r *Registry) IsInput(p PropID) bool {
	_, ok := r.inputs[p]
	return ok
}

// Owner возвращает привязку, владеющую выходом
func (r *Registry) Owner(p PropID) (*Binding, bool) {
	b, ok := r.byOutput[p]
	return b, ok
}

// Ordered возвращает привязки в порядке вычисления
func (r *Registry) Ordered() []*Binding {
	return r.order
}

// topoSort - алгоритм Кана. Ребро A -> B, если выход A является входом B.
// При равенстве сохраняется порядок регистрации.
func topoSort(bindings []*Binding) ([]*Binding, error) {
	owner := make(map[PropID]int, len(bindings))
	for i, b := range bindings {
		for _, out := range b.Outputs {
			owner[out] = i
		}
	}

	indegree := make([]int, len(bindings))
	edges := make([][]int, len(bindings))
	for j, b := range bindings {
		deps := make(map[int]struct{})
		for _, in := range b.Inputs {
			if i, ok := owner[in]; ok {
				if i == j {
					return nil, ErrCycle
				}
				deps[i] = struct{}{}
			}
		}
		for i := range deps {
			edges[i] = append(edges[i], j)
			indegree[j]++
		}
	}

	order := make([]*Binding, 0, len(bindings))
	done := make([]bool, len(bindings))
	for len(order) < len(bindings) {
		next := -1
		for i := range bindings {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, ErrCycle
		}
		done[next] = true
		order = append(order, bindings[next])
		for _, j := range edges[next] {
			indegree[j]--
		}
	}
	return order, nil
}
