// Package app contains the root application model.
package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/campus/internal/campus/application"
	campus "github.com/zjrosen/campus/internal/campus/domain"
	"github.com/zjrosen/campus/internal/config"
	"github.com/zjrosen/campus/internal/keys"
	"github.com/zjrosen/campus/internal/log"
	"github.com/zjrosen/campus/internal/pubsub"
	"github.com/zjrosen/campus/internal/ui/form"
	"github.com/zjrosen/campus/internal/ui/logview"
	"github.com/zjrosen/campus/internal/ui/picker"
	"github.com/zjrosen/campus/internal/ui/styles"
	"github.com/zjrosen/campus/internal/ui/toaster"
)

const (
	WelcomeText  = "Welcome to University Management System"
	FarewellText = "Thank you for using University Management System!"

	defaultWidth = 80
)

type screen int

const (
	screenMenu screen = iota
	screenForm
	screenPicker
	screenList
)

func (s screen) String() string {
	switch s {
	case screenMenu:
		return "menu"
	case screenForm:
		return "form"
	case screenPicker:
		return "picker"
	case screenList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigReloadedMsg is sent when the config file changes on disk. Err is set
// when the new file could not be loaded; the running config is kept.
type ConfigReloadedMsg struct {
	Config config.Config
	Err    error
}

// Model is the root application state.
type Model struct {
	svc *application.Service
	cfg config.Config

	ctx    context.Context
	cancel context.CancelFunc

	screen  screen
	menu    picker.Model
	form    form.Model
	picker  picker.Model
	pending int // first selection of a two-step link flow

	listKind campus.EntityKind
	list     string

	status    string
	statusErr bool

	toaster toaster.Model
	help    help.Model

	changes *pubsub.ContinuousListener[campus.Change]

	debugMode bool
	logs      *log.LogListener
	lastLog   string
	logView   logview.Model

	width  int
	height int

	quitting bool
	farewell bool
}

// New creates the root model. debugMode shows the latest log line in the
// footer; it needs the logger to be initialised first.
func New(svc *application.Service, cfg config.Config, debugMode bool) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		svc:       svc,
		cfg:       cfg,
		ctx:       ctx,
		cancel:    cancel,
		screen:    screenMenu,
		menu:      newMenu(),
		toaster:   toaster.New().SetWidth(defaultWidth),
		help:      help.New(),
		changes:   pubsub.NewContinuousListener(ctx, svc.Broker()),
		debugMode: debugMode,
		logView:   logview.New(logview.DefaultLimit),
		width:     defaultWidth,
	}
	if debugMode {
		m.logs = log.NewListener(ctx)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.changes.Listen()}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.toaster = m.toaster.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.logView = m.logView.SetSize(msg.Width, msg.Height)
		m.menu = m.menu.SetBoxWidth(m.pickerWidth())
		m.picker = m.picker.SetBoxWidth(m.pickerWidth())
		if m.screen == screenList {
			m.list = m.renderList(m.listKind)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Default.Quit) {
			log.Info(log.CatUI, "interrupted")
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}
		if m.logView.Visible() {
			var cmd tea.Cmd
			m.logView, cmd = m.logView.Update(msg)
			return m, cmd
		}
		if m.debugMode && key.Matches(msg, keys.Default.Logs) {
			m.logView = m.logView.Toggle()
			return m, nil
		}
		if key.Matches(msg, keys.Default.Escape) && m.screen != screenMenu {
			return m.toMenu(), nil
		}
		if m.screen == screenList && key.Matches(msg, keys.Default.Enter) {
			return m.toMenu(), nil
		}

	case pubsub.Event[campus.Change]:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(changeMessage(msg), toaster.StyleSuccess, toaster.DefaultDuration)
		return m, tea.Batch(cmd, m.changes.Listen())

	case log.LogEvent:
		m.lastLog = strings.TrimSpace(msg.Payload)
		m.logView = m.logView.Append(msg.Payload)
		return m, m.logs.Listen()

	case logview.ClosedMsg:
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case ConfigReloadedMsg:
		return m.applyConfig(msg)

	case picker.ChosenMsg:
		return m.handleChosen(msg)

	case form.SubmittedMsg:
		return m.handleSubmitted(msg)
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenMenu:
		m.menu, cmd = m.menu.Update(msg)
	case screenPicker:
		m.picker, cmd = m.picker.Update(msg)
	case screenForm:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m Model) applyConfig(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.Err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", msg.Err)
		m.toaster, cmd = m.toaster.Show("Config not reloaded: "+msg.Err.Error(), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}
	if err := styles.ApplyTheme(msg.Config.Theme.Colors()); err != nil {
		log.ErrorErr(log.CatConfig, "theme rejected", err)
		m.toaster, cmd = m.toaster.Show("Theme not applied: "+err.Error(), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}

	m.cfg = msg.Config
	m.menu = newMenu().SetSelected(m.menu.Selected().Value).SetBoxWidth(m.pickerWidth())
	if m.screen == screenList {
		m.list = m.renderList(m.listKind)
	}
	log.Info(log.CatConfig, "config reloaded")
	m.toaster, cmd = m.toaster.Show("Configuration reloaded", toaster.StyleInfo, toaster.DefaultDuration)
	return m, cmd
}

func (m Model) toMenu() Model {
	m.screen = screenMenu
	m.pending = 0
	m.list = ""
	return m
}

func (m Model) setStatus(msg string, isErr bool) Model {
	m.status = msg
	m.statusErr = isErr
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		if m.farewell {
			return styles.BannerStyle.Foreground(styles.HighlightColor).Render(FarewellText) + "\n"
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.BannerStyle.Render(WelcomeText))
	b.WriteString("\n\n")

	switch m.screen {
	case screenMenu:
		b.WriteString(m.menu.View())
	case screenForm:
		b.WriteString(m.form.View())
	case screenPicker:
		b.WriteString(m.picker.View())
	case screenList:
		b.WriteString(m.list)
	}
	b.WriteString("\n")

	if m.status != "" && m.screen == screenMenu {
		style := styles.MutedStyle
		if m.statusErr {
			style = styles.ErrorTextStyle
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}
	if toast := m.toaster.View(); toast != "" {
		b.WriteString("\n" + toast + "\n")
	}

	b.WriteString("\n" + m.help.View(keys.Default))
	if m.debugMode && m.lastLog != "" {
		b.WriteString("\n" + styles.MutedStyle.Render(ansi.Truncate(m.lastLog, max(m.width-1, 10), "…")))
	}

	view := lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	return zone.Scan(m.logView.Overlay(view))
}

// Close stops the event listeners.
func (m *Model) Close() error {
	m.cancel()
	return nil
}

// Farewell reports whether the user left through the Exit menu entry. The
// alternate screen is gone once the program returns, so the caller prints
// FarewellText itself.
func (m Model) Farewell() bool {
	return m.farewell
}
