// Package tui implements the interactive certificate installer.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tyemirov/teaminstall/internal/catalog"
	"github.com/tyemirov/teaminstall/internal/installation"
	"github.com/tyemirov/teaminstall/internal/selection"
)

// Screen represents the current screen.
type Screen int

const (
	ScreenBrowse     Screen = iota // Certificate list and filters
	ScreenConfirm                  // Yes/No before installing
	ScreenProcessing               // Import of one record in progress
	ScreenNotice                   // Modal message that must be dismissed
)

// NoticeKind selects the notice styling.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeFailure
)

// Notice is a modal message.
type Notice struct {
	Kind  NoticeKind
	Title string
	Body  string
}

// Installer installs one record.
type Installer interface {
	Install(ctx context.Context, record catalog.Record, options installation.Options) installation.Outcome
}

// Options configure a new Model.
type Options struct {
	CategoryTokens  []string
	CreateShortcuts bool
}

type installCompleteMsg struct {
	outcome installation.Outcome
}

// Model is the bubbletea model of the installer.
type Model struct {
	ctx       context.Context
	catalog   catalog.Catalog
	installer Installer

	categories      []string
	categoryIndex   int
	showHidden      bool
	createShortcuts bool
	view            selection.View
	list            *RecordList

	screen        Screen
	confirmCursor int
	pending       []catalog.Record
	current       int
	outcomes      []installation.Outcome
	notice        Notice

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	status  string
	width   int
	height  int
}

// New creates the model. ctx is passed to every import.
func New(ctx context.Context, records catalog.Catalog, installer Installer, options Options) *Model {
	tokens := options.CategoryTokens
	if len(tokens) == 0 {
		tokens = selection.DefaultCategoryTokens
	}
	loadingSpinner := spinner.New()
	loadingSpinner.Spinner = spinner.Dot
	loadingSpinner.Style = LabelStyle

	m := &Model{
		ctx:             ctx,
		catalog:         records,
		installer:       installer,
		categories:      selection.Categories(records.Records, tokens),
		createShortcuts: options.CreateShortcuts,
		list:            NewRecordList(),
		screen:          ScreenBrowse,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		spinner:         loadingSpinner,
	}
	m.rebuildView()
	m.status = fmt.Sprintf("Loaded %d sections from %s", len(records.Records), records.Path)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Screen returns the active screen.
func (m *Model) Screen() Screen {
	return m.screen
}

// Notice returns the notice on display.
func (m *Model) Notice() Notice {
	return m.notice
}

// Outcomes returns the outcomes of the last install action.
func (m *Model) Outcomes() []installation.Outcome {
	return m.outcomes
}

// Category returns the active category.
func (m *Model) Category() string {
	return m.categories[m.categoryIndex]
}

// Rows returns the displayed rows.
func (m *Model) Rows() []selection.Row {
	return m.view.Rows
}

func (m *Model) rebuildView() {
	m.view = selection.Build(m.catalog.Records, selection.Criteria{
		Category:   m.Category(),
		ShowHidden: m.showHidden,
	})
	m.list.SetRows(m.view.Rows)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.Height = max(3, msg.Height-12)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if m.screen != ScreenProcessing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case installCompleteMsg:
		m.outcomes = append(m.outcomes, msg.outcome)
		m.notice = noticeForOutcome(msg.outcome)
		m.screen = ScreenNotice
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenConfirm:
		return m.handleConfirmKeys(msg)
	case ScreenProcessing:
		return m, nil
	case ScreenNotice:
		return m.handleNoticeKeys(msg)
	}
	return m.handleBrowseKeys(msg)
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.list.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.list.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.list.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.list.GoToLast()
	case key.Matches(msg, m.keys.PrevCategory):
		m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
		m.rebuildView()
		m.status = "Category: " + m.Category()
	case key.Matches(msg, m.keys.NextCategory):
		m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
		m.rebuildView()
		m.status = "Category: " + m.Category()
	case key.Matches(msg, m.keys.ToggleHidden):
		m.showHidden = !m.showHidden
		m.rebuildView()
		m.status = fmt.Sprintf("Inactive offices shown: %t", m.showHidden)
	case key.Matches(msg, m.keys.ToggleShortcut):
		m.createShortcuts = !m.createShortcuts
		m.status = fmt.Sprintf("Desktop shortcuts: %t", m.createShortcuts)
	case key.Matches(msg, m.keys.Toggle):
		m.list.Toggle()
	case key.Matches(msg, m.keys.SelectAll):
		m.list.SelectAll()
	case key.Matches(msg, m.keys.DeselectAll):
		m.list.DeselectAll()
	case key.Matches(msg, m.keys.Install):
		return m.startInstall()
	}
	return m, nil
}

func (m *Model) startInstall() (tea.Model, tea.Cmd) {
	records, resolveErr := m.view.Resolve(m.list.SelectedRows())
	if resolveErr != nil {
		m.showNotice(Notice{Kind: NoticeFailure, Title: "Error", Body: resolveErr.Error()})
		return m, nil
	}
	if len(records) == 0 {
		m.showNotice(Notice{Kind: NoticeFailure, Title: "Error", Body: "Select the certificates to install."})
		return m, nil
	}
	m.pending = records
	m.current = 0
	m.outcomes = nil
	m.confirmCursor = 0
	m.screen = ScreenConfirm
	return m, nil
}

func (m *Model) showNotice(notice Notice) {
	m.pending = nil
	m.current = 0
	m.notice = notice
	m.screen = ScreenNotice
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		return m.beginProcessing()
	case key.Matches(msg, m.keys.No):
		return m.cancelInstall()
	case key.Matches(msg, m.keys.PrevCategory, m.keys.Up):
		m.confirmCursor = 0
	case key.Matches(msg, m.keys.NextCategory, m.keys.Down):
		m.confirmCursor = 1
	case key.Matches(msg, m.keys.Install):
		if m.confirmCursor == 0 {
			return m.beginProcessing()
		}
		return m.cancelInstall()
	}
	return m, nil
}

func (m *Model) cancelInstall() (tea.Model, tea.Cmd) {
	m.pending = nil
	m.screen = ScreenBrowse
	m.status = "Installation cancelled"
	return m, nil
}

func (m *Model) beginProcessing() (tea.Model, tea.Cmd) {
	m.screen = ScreenProcessing
	return m, tea.Batch(m.spinner.Tick, m.installCurrent())
}

// installCurrent imports the record at the head of the queue. The next record
// is only started after its notice has been dismissed.
func (m *Model) installCurrent() tea.Cmd {
	record := m.pending[m.current]
	options := installation.Options{CreateShortcut: m.createShortcuts}
	ctx := m.ctx
	installer := m.installer
	m.status = fmt.Sprintf("Installing %s (%d/%d)", record.DisplayLabel(), m.current+1, len(m.pending))
	return func() tea.Msg {
		return installCompleteMsg{outcome: installer.Install(ctx, record, options)}
	}
}

func (m *Model) handleNoticeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Dismiss) {
		return m, nil
	}
	if len(m.pending) > 0 && m.current+1 < len(m.pending) {
		m.current++
		m.screen = ScreenProcessing
		return m, tea.Batch(m.spinner.Tick, m.installCurrent())
	}
	if len(m.pending) > 0 {
		m.status = summarize(m.outcomes)
	}
	m.pending = nil
	m.current = 0
	m.screen = ScreenBrowse
	return m, nil
}

func noticeForOutcome(outcome installation.Outcome) Notice {
	switch outcome.Status {
	case installation.StatusInstalled:
		return Notice{Kind: NoticeSuccess, Title: "Success", Body: outcome.Message()}
	case installation.StatusFailed:
		return Notice{Kind: NoticeFailure, Title: "Installation failed", Body: outcome.Message()}
	default:
		return Notice{Kind: NoticeFailure, Title: "Error", Body: outcome.Message()}
	}
}

func summarize(outcomes []installation.Outcome) string {
	installed := 0
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			installed++
		}
	}
	return fmt.Sprintf("Installed %d of %d certificates", installed, len(outcomes))
}
