package tui

import (
	"context"

	"linkdeck/internal/collection"
	"linkdeck/internal/model"
	"linkdeck/internal/reorder"
	"linkdeck/internal/submit"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEdit
	modalConfirmSubmit
)

// Rows start below the title line and a blank line.
const headerLines = 2

type submittedMsg struct {
	links []model.LinkValues
	err   error
}

type editState struct {
	// id follows the record if it moves; the binding is resolved by current index.
	id       string
	focus    int
	inputs   []textinput.Model
	original model.LinkValues
}

type appModel struct {
	ctx     context.Context
	store   *collection.Store
	drag    *reorder.Controller
	binding collection.Binding
	sink    submit.Sink
	log     zerolog.Logger

	newLink model.LinkValues
	initial []model.LinkValues

	width  int
	height int

	keys     keyMap
	help     help.Model
	showHelp bool
	preview  bool

	cursor int
	offset int

	// mouseDrag is set while the left button is held after pressing on a row.
	mouseDrag bool

	modal        modalKind
	edit         *editState
	confirmFocus confirmModalFocus

	submitting     bool
	lastSubmitted  []model.LinkValues
	minibufferText string
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	s := opts.Store
	if s == nil {
		s = collection.New(opts.Initial, collection.WithLogger(opts.Logger))
	}
	sink := opts.Sink
	if sink == nil {
		sink = submit.LogSink{Logger: opts.Logger}
	}
	h := help.New()
	h.ShortSeparator = "  "
	return appModel{
		ctx:     ctx,
		store:   s,
		drag:    reorder.New(s, reorder.WithLogger(opts.Logger)),
		binding: collection.NewBinding(s),
		sink:    sink,
		log:     opts.Logger,
		newLink: opts.NewLink,
		initial: opts.Initial,
		keys:    newKeyMap(),
		help:    h,
		width:   80,
		height:  24,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) submitCmd() tea.Cmd {
	ctx, s, sink := m.ctx, m.store, m.sink
	links := submit.Export(s)
	return func() tea.Msg {
		err := sink.Submit(ctx, links)
		return submittedMsg{links: links, err: err}
	}
}

func newEditState(id string, v model.LinkValues, width int) *editState {
	e := &editState{id: id, original: v}
	for _, f := range model.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 2048
		ti.Width = modalBodyWidth(width) - 4
		switch f {
		case model.FieldTitle:
			ti.Placeholder = "Title"
			ti.SetValue(v.Title)
		case model.FieldURL:
			ti.Placeholder = "https://"
			ti.SetValue(v.URL)
		}
		e.inputs = append(e.inputs, ti)
	}
	e.inputs[0].Focus()
	return e
}

func (e *editState) setFocus(i int) {
	n := len(e.inputs)
	e.focus = ((i % n) + n) % n
	for j := range e.inputs {
		if j == e.focus {
			e.inputs[j].Focus()
		} else {
			e.inputs[j].Blur()
		}
	}
}
