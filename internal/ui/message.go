package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgStationsFetched MsgKind = iota
	MsgValidationComplete
	MsgVoteRecorded
	MsgBrowserOpened
)

// stationsFetchedMsg is the constructor for [MsgStationsFetched]
func stationsFetchedMsg(stations []models.RadioStation, err error) Msg {
	return Msg{
		kind: MsgStationsFetched,
		data: struct {
			stations []models.RadioStation
			err      error
		}{stations, err},
	}
}

// validationCompleteMsg is the constructor for [MsgValidationComplete]
func validationCompleteMsg(validation *tasks.StationValidation, err error) Msg {
	return Msg{
		kind: MsgValidationComplete,
		data: struct {
			validation *tasks.StationValidation
			err        error
		}{validation, err},
	}
}

// voteRecordedMsg is the constructor for [MsgVoteRecorded]
func voteRecordedMsg(err error) Msg {
	return Msg{kind: MsgVoteRecorded, data: err}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}
