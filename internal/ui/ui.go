package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/services"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/desertthunder/tunebridge/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	StationListView ViewState = iota
	ValidatingView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	directory   services.DirectoryService
	engine      tasks.Engine
	search      services.StationSearch
	width       int
	height      int
	stationList list.Model
	stations    []models.RadioStation
	results     map[string]*tasks.StationValidation
	selected    *models.RadioStation
	validation  *tasks.StationValidation
	status      string
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
// Stations are fetched from the directory using the given search on startup.
func NewModel(ctx context.Context, directory services.DirectoryService, engine tasks.Engine, search services.StationSearch) *Model {
	return &Model{
		ctx:       ctx,
		view:      StationListView,
		directory: directory,
		engine:    engine,
		search:    search,
		results:   map[string]*tasks.StationValidation{},
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init initializes the TUI by fetching stations from the directory.
func (m *Model) Init() tea.Cmd {
	return m.fetchStations()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.stationList.Width() == 0 {
			m.stationList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case StationListView:
			return m.handleStationListKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}
		return m, nil

	case Msg:
		return m.handleAppMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleAppMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgStationsFetched:
		data := msg.data.(struct {
			stations []models.RadioStation
			err      error
		})
		if data.err != nil {
			m.err = data.err
			return m, tea.Quit
		}
		m.stations = data.stations
		m.rebuildList()
		return m, nil

	case MsgValidationComplete:
		data := msg.data.(struct {
			validation *tasks.StationValidation
			err        error
		})
		m.validation = data.validation
		m.err = data.err
		if data.validation != nil {
			m.results[data.validation.Station.UUID] = data.validation
			m.rebuildList()
		}
		m.view = ResultView
		return m, nil

	case MsgVoteRecorded:
		if err, ok := msg.data.(error); ok && err != nil {
			m.status = styles.err.Render(fmt.Sprintf("vote failed: %v", err))
		} else {
			m.status = styles.ok.Render("vote recorded")
		}
		return m, nil

	case MsgBrowserOpened:
		if err, ok := msg.data.(error); ok && err != nil {
			m.status = styles.err.Render(fmt.Sprintf("could not open browser: %v", err))
		}
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case StationListView:
		return m.renderStationList()
	case ValidatingView:
		return m.renderValidating()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleStationListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if station := m.selectedStation(); station != nil {
			m.selected = station
			m.view = ValidatingView
			return m, m.validateStation(*station)
		}
	case "o":
		if station := m.selectedStation(); station != nil && station.Homepage != "" {
			return m, m.openHomepage(station.Homepage)
		}
	case "v":
		if station := m.selectedStation(); station != nil {
			return m, m.voteStation(station.UUID)
		}
	}

	var cmd tea.Cmd
	m.stationList, cmd = m.stationList.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = StationListView
		m.validation = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == StationListView {
		m.stationList, cmd = m.stationList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedStation() *models.RadioStation {
	selected := m.stationList.SelectedItem()
	if selected == nil {
		return nil
	}
	if item, ok := selected.(stationItem); ok {
		station := item.station
		return &station
	}
	return nil
}

func (m *Model) rebuildList() {
	items := make([]list.Item, len(m.stations))
	for i, station := range m.stations {
		item := stationItem{station: station}
		if validation, ok := m.results[station.UUID]; ok {
			item.result = validation.Result
		}
		items[i] = item
	}

	index := m.stationList.Index()
	m.stationList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.stationList.Title = "Radio Stations"
	m.stationList.SetSize(m.width-4, m.height-8)
	m.stationList.Select(index)
}

func (m *Model) fetchStations() tea.Cmd {
	return func() tea.Msg {
		stations, err := m.directory.SearchStations(m.ctx, m.search)
		return stationsFetchedMsg(stations, err)
	}
}

func (m *Model) validateStation(station models.RadioStation) tea.Cmd {
	return func() tea.Msg {
		validation, err := m.engine.ValidateStation(m.ctx, station, tasks.ValidateOpts{ReportListen: true})
		return validationCompleteMsg(validation, err)
	}
}

func (m *Model) voteStation(uuid string) tea.Cmd {
	return func() tea.Msg {
		return voteRecordedMsg(m.directory.VoteStation(m.ctx, uuid))
	}
}

func (m *Model) openHomepage(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg(shared.OpenBrowser(url))
	}
}

func (m *Model) renderStationList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.homepage, m.keys.vote, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	view := fmt.Sprintf("%s\n\n%s", m.stationList.View(), helpView)
	if m.status != "" {
		view = fmt.Sprintf("%s\n%s", view, m.status)
	}
	return view
}

func (m *Model) renderValidating() string {
	title := styles.title.Render("Validating Stream")
	name := ""
	if m.selected != nil {
		name = fmt.Sprintf("%s\n%s", m.selected.Name, m.selected.StreamURL)
	}
	return fmt.Sprintf("%s\n\n%s\n\nProbing stream, this can take a few seconds...", title, name)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Validation failed: %v\n\nPress esc to go back, q to quit", m.err))
	}
	if m.validation == nil || m.validation.Result == nil {
		return styles.err.Render("No result available\n\nPress esc to go back, q to quit")
	}

	result := m.validation.Result

	var title string
	if result.Success {
		title = styles.ok.Render(fmt.Sprintf("✓ %s is streaming", m.validation.Station.Name))
	} else {
		title = styles.err.Render(fmt.Sprintf("✗ %s failed validation", m.validation.Station.Name))
	}

	info := fmt.Sprintf(
		"\nStatus: %s\nAccessible: %s\nContent-Type: %s\nFormat: %s\nStreaming headers: %s\nDuration: %dms",
		result.Status,
		shared.BoolLabel(result.HTTPAccessible),
		result.ContentType,
		result.AudioFormat,
		shared.BoolLabel(result.HasStreamingHeaders),
		result.TestDurationMs,
	)

	var remarks string
	if len(result.Recommendations) > 0 {
		remarks = "\n\n" + styles.warn.Render("Recommendations:")
		for _, rec := range result.Recommendations {
			remarks += fmt.Sprintf("\n  • %s", rec)
		}
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, remarks, helpView)
}
