package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/horizon/internal/app"
	"github.com/josephgoksu/horizon/internal/chat"
	"github.com/josephgoksu/horizon/internal/llm"
	"github.com/josephgoksu/horizon/internal/logger"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/research"
	"github.com/josephgoksu/horizon/internal/task"
)

type view int

const (
	viewDashboard view = iota
	viewCreate
	viewProject
)

func (v view) String() string {
	switch v {
	case viewCreate:
		return "create"
	case viewProject:
		return "project"
	default:
		return "dashboard"
	}
}

// Tab is a panel of the project view.
type Tab int

const (
	TabBoard Tab = iota
	TabChat
	TabResearch
)

var tabNames = []string{"Task Board", "Co-Founder Chat", "Research"}

// tabSlugs name each tab in crash reports.
var tabSlugs = []string{"board", "chat", "research"}

func (t Tab) String() string { return tabNames[t] }

// Layout constants
const (
	DefaultWidth       = 80
	DefaultHeight      = 24
	HeaderFooterHeight = 8
	MinViewportHeight  = 6
)

// CreateFailedText is shown when planning a new project fails.
const CreateFailedText = "Failed to generate project. Check API Key."

// ChatNoKeyText is shown when a chat reply fails for lack of an API key.
const ChatNoKeyText = "Chat needs an API key. Set HORIZON_API_KEY or GEMINI_API_KEY and restart."

type msgCreateStep struct {
	Step  string
	steps <-chan string
}

type msgCreateDone struct {
	Project *project.Project
	Err     error
}

// msgChatUpdate carries the conversation after one streamed fragment.
type msgChatUpdate struct {
	Epoch     int
	ProjectID string
	Messages  []chat.Message
	updates   <-chan []chat.Message
}

type msgChatDone struct {
	Epoch     int
	ProjectID string
	Messages  []chat.Message
	Err       error
}

type msgResearchDone struct {
	Epoch     int
	ProjectID string
	Result    *research.Result
	Err       error
}

// WorkspaceModel is the terminal workspace: a dashboard of projects, the
// create modal and a per-project view with board, chat and research tabs.
type WorkspaceModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	hasKey bool

	projects  *app.ProjectApp
	workspace *app.WorkspaceApp

	view          view
	tab           Tab
	width, height int
	notice        string

	// Dashboard
	list    []project.Project
	cursor  int
	compact bool

	// Create modal
	idea         textarea.Model
	creating     bool
	createStep   string
	cancelCreate context.CancelFunc

	// Project view. epoch changes whenever a project is opened or closed so
	// completions from an earlier visit are dropped.
	epoch         int
	current       *project.Project
	taskCursor    int
	chatInput     textinput.Model
	chatMsgs      []chat.Message
	chatView      viewport.Model
	streaming     bool
	cancelChat    context.CancelFunc
	researchInput textinput.Model
	researching   bool
	research      *research.Result

	spinner spinner.Model
}

// NewWorkspaceModel builds the workspace over an app context.
func NewWorkspaceModel(ctx context.Context, appCtx *app.Context) WorkspaceModel {
	ctx, cancel := context.WithCancel(ctx)

	idea := textarea.New()
	idea.Placeholder = "e.g. I want to build a smart mirror with a raspberry pi that shows my calendar and weather..."
	idea.ShowLineNumbers = false
	idea.CharLimit = 0
	idea.SetWidth(DefaultWidth - 10)
	idea.SetHeight(4)

	ci := textinput.New()
	ci.Placeholder = "Ask for advice, code snippets, or ideas..."
	ci.Prompt = "› "

	ri := textinput.New()
	ri.Placeholder = "Search for libraries, tools, or tutorials..."
	ri.Prompt = "⌕ "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StylePrimary

	m := WorkspaceModel{
		ctx:           ctx,
		cancel:        cancel,
		hasKey:        appCtx.LLMCfg.HasCredential(),
		projects:      app.NewProjectApp(appCtx),
		workspace:     app.NewWorkspaceApp(appCtx),
		width:         DefaultWidth,
		height:        DefaultHeight,
		idea:          idea,
		chatInput:     ci,
		chatView:      viewport.New(DefaultWidth, DefaultHeight-HeaderFooterHeight),
		researchInput: ri,
		spinner:       s,
	}
	m.list = m.projects.List()
	return m
}

func (m WorkspaceModel) Init() tea.Cmd {
	logger.SetView(viewDashboard.String())
	return nil
}

// RunWorkspace runs the workspace until the user quits.
func RunWorkspace(ctx context.Context, appCtx *app.Context) error {
	_, err := tea.NewProgram(NewWorkspaceModel(ctx, appCtx), tea.WithAltScreen()).Run()
	return err
}

func runCreate(ctx context.Context, projects *app.ProjectApp, idea string, steps chan<- string) tea.Cmd {
	return func() tea.Msg {
		defer close(steps)
		p, err := projects.Create(ctx, idea, func(step string) { steps <- step })
		return msgCreateDone{Project: p, Err: err}
	}
}

func listenForSteps(steps <-chan string) tea.Cmd {
	return func() tea.Msg {
		step, ok := <-steps
		if !ok {
			return nil
		}
		return msgCreateStep{Step: step, steps: steps}
	}
}

func runChat(ctx context.Context, ws *app.WorkspaceApp, epoch int, projectID, text string, updates chan<- []chat.Message) tea.Cmd {
	return func() tea.Msg {
		defer close(updates)
		msgs, err := ws.Send(ctx, projectID, text, func(msgs []chat.Message) { updates <- msgs })
		return msgChatDone{Epoch: epoch, ProjectID: projectID, Messages: msgs, Err: err}
	}
}

// listenForChat relays streamed snapshots until the send closes the channel.
func listenForChat(epoch int, projectID string, updates <-chan []chat.Message) tea.Cmd {
	return func() tea.Msg {
		msgs, ok := <-updates
		if !ok {
			return nil
		}
		return msgChatUpdate{Epoch: epoch, ProjectID: projectID, Messages: msgs, updates: updates}
	}
}

func runResearch(ctx context.Context, ws *app.WorkspaceApp, epoch int, projectID, query string) tea.Cmd {
	return func() tea.Msg {
		res, err := ws.Research(ctx, query)
		return msgResearchDone{Epoch: epoch, ProjectID: projectID, Result: res, Err: err}
	}
}

func (m WorkspaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.creating && !m.streaming && !m.researching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case msgCreateStep:
		m.createStep = msg.Step
		return m, listenForSteps(msg.steps)

	case msgCreateDone:
		return m.finishCreate(msg)

	case msgChatUpdate:
		// Always drain; only the live send of the open project is shown.
		if m.streaming && m.isCurrent(msg.Epoch, msg.ProjectID) {
			m.setChat(msg.Messages)
		}
		return m, listenForChat(msg.Epoch, msg.ProjectID, msg.updates)

	case msgChatDone:
		if !m.isCurrent(msg.Epoch, msg.ProjectID) {
			return m, nil
		}
		m.streaming = false
		m.cancelChat = nil
		if msg.Messages != nil {
			m.setChat(msg.Messages)
		}
		if llm.IsConfigurationError(msg.Err) {
			m.notice = ChatNoKeyText
		}
		return m, nil

	case msgResearchDone:
		if !m.isCurrent(msg.Epoch, msg.ProjectID) {
			return m, nil
		}
		m.researching = false
		if msg.Err != nil {
			// Prior results stay on screen.
			m.notice = "Research failed: " + msg.Err.Error()
			return m, nil
		}
		m.research = msg.Result
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			return m, tea.Quit
		}
		switch m.view {
		case viewCreate:
			return m.updateCreate(msg)
		case viewProject:
			return m.updateProject(msg)
		default:
			return m.updateDashboard(msg)
		}
	}
	return m, nil
}

func (m *WorkspaceModel) resize(width, height int) {
	m.width, m.height = width, height
	m.idea.SetWidth(min(width-10, 100))
	m.chatInput.Width = width - 6
	m.researchInput.Width = width - 6
	m.chatView.Width = width - 2
	m.chatView.Height = max(height-HeaderFooterHeight, MinViewportHeight)
	m.chatView.SetContent(RenderChat(m.chatMsgs, m.chatView.Width))
}

func (m *WorkspaceModel) setView(v view) {
	m.view = v
	logger.SetView(v.String())
}

func (m WorkspaceModel) isCurrent(epoch int, projectID string) bool {
	return m.view == viewProject && m.epoch == epoch && m.current != nil && m.current.ID == projectID
}

func (m *WorkspaceModel) setChat(msgs []chat.Message) {
	m.chatMsgs = msgs
	m.chatView.SetContent(RenderChat(msgs, m.chatView.Width))
	m.chatView.GotoBottom()
}

func (m WorkspaceModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.cancel()
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "t":
		m.compact = !m.compact
	case "n":
		m.notice = ""
		m.idea.Reset()
		m.setView(viewCreate)
		cmd := m.idea.Focus()
		return m, cmd
	case "enter":
		if m.cursor < len(m.list) {
			return m.openProject(m.list[m.cursor].ID)
		}
	}
	return m, nil
}

func (m WorkspaceModel) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.creating {
		if msg.Type == tea.KeyEsc && m.cancelCreate != nil {
			m.cancelCreate()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.idea.Blur()
		m.setView(viewDashboard)
		return m, nil
	case tea.KeyEnter:
		idea := strings.TrimSpace(m.idea.Value())
		if idea == "" {
			return m, nil
		}
		logger.SetLastInput(logger.InputIdea, idea)
		ctx, cancel := context.WithCancel(m.ctx)
		steps := make(chan string, 2)
		m.creating = true
		m.createStep = app.StepPlanning
		m.cancelCreate = cancel
		m.idea.Blur()
		return m, tea.Batch(
			m.spinner.Tick,
			runCreate(ctx, m.projects, idea, steps),
			listenForSteps(steps),
		)
	}

	var cmd tea.Cmd
	m.idea, cmd = m.idea.Update(msg)
	return m, cmd
}

func (m WorkspaceModel) finishCreate(msg msgCreateDone) (tea.Model, tea.Cmd) {
	if m.cancelCreate != nil {
		m.cancelCreate()
		m.cancelCreate = nil
	}
	m.creating = false
	m.createStep = ""
	m.idea.Reset()
	m.list = m.projects.List()

	if msg.Err != nil {
		m.setView(viewDashboard)
		if !errors.Is(msg.Err, context.Canceled) {
			m.notice = CreateFailedText
		}
		return m, nil
	}
	m.cursor = 0
	return m.openProject(msg.Project.ID)
}

func (m WorkspaceModel) openProject(id string) (tea.Model, tea.Cmd) {
	p, err := m.projects.Get(id)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	session, err := m.workspace.Open(p.ID)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}

	m.epoch++
	m.current = p
	trackProject(p)
	m.tab = TabBoard
	m.taskCursor = 0
	m.research = nil
	m.researching = false
	m.streaming = false
	m.notice = ""
	m.chatInput.Reset()
	m.researchInput.Reset()
	m.setChat(session.Messages())
	m.setView(viewProject)
	return m, nil
}

func (m WorkspaceModel) closeProject() (tea.Model, tea.Cmd) {
	if m.cancelChat != nil {
		m.cancelChat()
		m.cancelChat = nil
	}
	if m.current != nil {
		m.workspace.Close(m.current.ID)
	}
	m.epoch++
	m.current = nil
	logger.ClearProject()
	m.chatMsgs = nil
	m.streaming = false
	m.researching = false
	m.chatInput.Blur()
	m.researchInput.Blur()
	m.list = m.projects.List()
	m.setView(viewDashboard)
	return m, nil
}

func (m WorkspaceModel) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.chatInput.Blur()
	m.researchInput.Blur()
	logger.SetView(tabSlugs[t])
	var cmd tea.Cmd
	switch t {
	case TabChat:
		cmd = m.chatInput.Focus()
	case TabResearch:
		cmd = m.researchInput.Focus()
	}
	return m, cmd
}

func (m WorkspaceModel) updateProject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.closeProject()
	case tea.KeyTab:
		return m.switchTab((m.tab + 1) % Tab(len(tabNames)))
	case tea.KeyShiftTab:
		return m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	}

	switch m.tab {
	case TabChat:
		return m.updateChat(msg)
	case TabResearch:
		return m.updateResearch(msg)
	default:
		return m.updateBoard(msg)
	}
}

func (m WorkspaceModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.current.Tasks
	switch msg.String() {
	case "q":
		return m.closeProject()
	case "j", "down":
		if m.taskCursor < len(tasks)-1 {
			m.taskCursor++
		}
	case "k", "up":
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case " ", "enter", "x":
		if m.taskCursor < len(tasks) {
			p, _, err := m.projects.ToggleTask(m.current.ID, tasks[m.taskCursor].ID)
			if err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.current = p
			trackProject(p)
		}
	case "s", "S":
		step := 1
		if msg.String() == "S" {
			step = len(project.Statuses) - 1
		}
		p, err := m.projects.SetStatus(m.current.ID, nextStatus(m.current.Status, step))
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.current = p
		trackProject(p)
	}
	return m, nil
}

// trackProject records the open project for crash reports.
func trackProject(p *project.Project) {
	logger.SetProject(logger.ProjectState{
		ID:     p.ID,
		Title:  p.Title,
		Status: p.Status.Label(),
		Done:   task.CompletedCount(p.Tasks),
		Total:  len(p.Tasks),
	})
}

// nextStatus steps through project.Statuses, wrapping around.
func nextStatus(s project.Status, step int) project.Status {
	n := len(project.Statuses)
	for i, st := range project.Statuses {
		if st == s {
			return project.Statuses[(i+step)%n]
		}
	}
	return project.Statuses[0]
}

func (m WorkspaceModel) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "pgup":
		m.chatView.ScrollUp(m.chatView.Height / 2)
		return m, nil
	case "pgdown":
		m.chatView.ScrollDown(m.chatView.Height / 2)
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" || m.streaming {
			return m, nil
		}
		logger.SetLastInput(logger.InputChat, text)
		m.chatInput.Reset()
		m.streaming = true
		m.notice = ""

		ctx, cancel := context.WithCancel(m.ctx)
		m.cancelChat = cancel
		updates := make(chan []chat.Message, 16)
		return m, tea.Batch(
			m.spinner.Tick,
			runChat(ctx, m.workspace, m.epoch, m.current.ID, text, updates),
			listenForChat(m.epoch, m.current.ID, updates),
		)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m WorkspaceModel) updateResearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		query := strings.TrimSpace(m.researchInput.Value())
		if query == "" || m.researching {
			return m, nil
		}
		logger.SetLastInput(logger.InputResearch, query)
		m.researching = true
		m.notice = ""
		return m, tea.Batch(m.spinner.Tick, runResearch(m.ctx, m.workspace, m.epoch, m.current.ID, query))
	}

	var cmd tea.Cmd
	m.researchInput, cmd = m.researchInput.Update(msg)
	return m, cmd
}

func (m WorkspaceModel) View() string {
	var s strings.Builder

	s.WriteString(StyleHeader.Render("◆ Horizon"))
	if !m.hasKey {
		s.WriteString(" " + StyleWarning.Render("API Key Missing"))
	}
	s.WriteString("\n\n")

	switch m.view {
	case viewCreate:
		s.WriteString(m.createView())
	case viewProject:
		s.WriteString(m.projectView())
	default:
		s.WriteString(m.dashboardView() + "\n\n")
		s.WriteString(StyleSubtle.Render("[n] New Project | [Enter] Open | [j/k] Move | [t] Layout | [q] Quit"))
	}

	if m.notice != "" {
		s.WriteString("\n" + Icon("✗", StylePrefixError) + " " + StyleError.Render(m.notice))
	}
	s.WriteString("\n")
	return s.String()
}

func (m WorkspaceModel) dashboardView() string {
	if !m.compact || len(m.list) == 0 {
		return RenderDashboard(m.list, m.cursor, m.width)
	}
	t := ProjectTable(m.list)
	if m.cursor < len(t.Rows) {
		row := t.Rows[m.cursor]
		row[1] = StyleSelected.Render(cursorMark + " " + row[1])
	}
	return t.Render()
}

func (m WorkspaceModel) createView() string {
	if m.creating {
		return StyleModal.Render(m.spinner.View() + " " + m.createStep + "\n\n" +
			StyleSubtle.Render("[Esc] Cancel"))
	}
	body := StyleTitle.Render("New Project") + "\n" +
		StyleSubtle.Render("Describe your idea. Horizon will plan it.") + "\n\n" +
		StyleInputBox.Render(m.idea.View()) + "\n" +
		StyleSubtle.Render("[Enter] Generate Plan | [Esc] Cancel")
	return StyleModal.Render(body)
}

func (m WorkspaceModel) projectView() string {
	p := m.current
	var s strings.Builder

	s.WriteString(StyleTitle.Render(p.Title) + "  " + StatusBadge(p.Status) + "\n")
	if tags := FormatTags(p.Tags, 0); tags != "" {
		s.WriteString(StyleTag.Render(tags) + "\n")
	}
	s.WriteString(ProgressBar(p.Progress(), 30) + "\n\n")

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		style := StyleTabInactive
		if Tab(i) == m.tab {
			style = StyleTabActive
		}
		tabs[i] = style.Render(name)
	}
	s.WriteString(strings.Join(tabs, " ") + "\n\n")

	switch m.tab {
	case TabChat:
		s.WriteString(m.chatView.View() + "\n")
		box := StyleReadyBox
		if m.streaming {
			box = StyleInputBox
		}
		s.WriteString(box.Render(m.chatInput.View()) + "\n")
		if m.streaming {
			s.WriteString(m.spinner.View() + StylePrimary.Render(" Thinking..."))
		} else {
			s.WriteString(StyleSubtle.Render("[Enter] Send | [PgUp/PgDn] Scroll | [Tab] Next | [Esc] Back"))
		}

	case TabResearch:
		s.WriteString(StyleSectionTitle.Render("Resource Laboratory") + "\n")
		s.WriteString(StyleInputBox.Render(m.researchInput.View()) + "\n")
		if m.researching {
			s.WriteString(m.spinner.View() + StylePrimary.Render(" Scanning...") + "\n\n")
		}
		s.WriteString(RenderResearch(m.research, m.width) + "\n\n")
		s.WriteString(StyleSubtle.Render("[Enter] Search | [Tab] Next | [Esc] Back"))

	default:
		s.WriteString(RenderBoard(p.Tasks, m.taskCursor, m.width) + "\n\n")
		if p.Notes != "" {
			s.WriteString(StyleSubtle.Render(fmt.Sprintf("Notes: %s", Truncate(p.Notes, max(m.width-8, 20)))) + "\n")
		}
		s.WriteString(StyleSubtle.Render("[Space] Toggle | [s/S] Status | [Tab] Next | [Esc] Back"))
	}
	return s.String()
}
