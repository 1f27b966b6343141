package ui

import "github.com/rs/zerolog"

type traceElement struct {
	id      string
	class   Class
	removed bool
}

// TraceView is a headless view that logs every create/update/remove it is
// asked to perform. It stands in for the real paint layer when the client
// runs without one, and doubles as a debugging aid.
type TraceView struct {
	log zerolog.Logger
}

// NewTraceView returns a view that writes element operations to the logger.
func NewTraceView(log zerolog.Logger) *TraceView {
	return &TraceView{log: log}
}

func (v *TraceView) Create(id string, class Class, attrs Attrs) Handle {
	v.log.Debug().
		Str("id", id).
		Str("class", string(class)).
		Int("x", attrs.X).
		Int("y", attrs.Y).
		Msg("view create")
	return &traceElement{id: id, class: class}
}

func (v *TraceView) Update(handle Handle, attrs Attrs) error {
	el, ok := handle.(*traceElement)
	if !ok || el.removed {
		return ErrMissingElement
	}
	v.log.Debug().
		Str("id", el.id).
		Str("class", string(el.class)).
		Int("x", attrs.X).
		Int("y", attrs.Y).
		Bool("hovered", attrs.Hovered).
		Msg("view update")
	return nil
}

func (v *TraceView) Remove(handle Handle) {
	el, ok := handle.(*traceElement)
	if !ok {
		return
	}
	el.removed = true
	v.log.Debug().Str("id", el.id).Msg("view remove")
}
