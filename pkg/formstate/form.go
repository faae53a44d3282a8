// Package formstate - явное состояние формы:
// Pristine → Dirty → Submitting → Succeeded | Failed (→ Dirty).
package formstate

import "fmt"

type Phase string

const (
	Pristine   Phase = "pristine"
	Dirty      Phase = "dirty"
	Submitting Phase = "submitting"
	Succeeded  Phase = "succeeded"
	Failed     Phase = "failed"
)

var transitions = map[Phase][]Phase{
	Pristine:   {Dirty},
	Dirty:      {Dirty, Submitting},
	Submitting: {Succeeded, Failed},
	Failed:     {Dirty},
	Succeeded:  {},
}

// Form хранит значения, ошибки полей и общее сообщение.
type Form[T any] struct {
	Values      T
	Phase       Phase
	FieldErrors map[string]string
	Message     string
}

func New[T any](initial T) *Form[T] {
	return &Form[T]{Values: initial, Phase: Pristine}
}

func (f *Form[T]) to(next Phase) error {
	for _, allowed := range transitions[f.Phase] {
		if allowed == next {
			f.Phase = next
			return nil
		}
	}
	return fmt.Errorf("formstate: transition %s -> %s interdite", f.Phase, next)
}

// Edit - пользователь изменил значения.
func (f *Form[T]) Edit(values T) error {
	if err := f.to(Dirty); err != nil {
		return err
	}
	f.Values = values
	f.FieldErrors = nil
	f.Message = ""
	return nil
}

func (f *Form[T]) Submit() error {
	return f.to(Submitting)
}

func (f *Form[T]) Succeed(message string) error {
	if err := f.to(Succeeded); err != nil {
		return err
	}
	f.Message = message
	return nil
}

// Fail фиксирует неудачу; fieldErrors может быть nil.
func (f *Form[T]) Fail(message string, fieldErrors map[string]string) error {
	if err := f.to(Failed); err != nil {
		return err
	}
	f.Message = message
	f.FieldErrors = fieldErrors
	return nil
}

func (f *Form[T]) Settled() bool {
	return f.Phase == Succeeded || f.Phase == Failed
}

func (f *Form[T]) HasError(field string) bool {
	_, ok := f.FieldErrors[field]
	return ok
}

func (f *Form[T]) Error(field string) string {
	return f.FieldErrors[field]
}
