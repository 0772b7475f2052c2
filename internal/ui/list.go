package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/streamcheck"
)

var _ list.Item = stationItem{}

// stationItem wraps [models.RadioStation] to implement [list.Item].
// The badge reflects the last validation verdict, if any.
type stationItem struct {
	station models.RadioStation
	result  *streamcheck.Result
}

func (i stationItem) FilterValue() string { return i.station.Name }

func (i stationItem) Title() string {
	return fmt.Sprintf("%s %s", i.badge(), i.station.Name)
}

func (i stationItem) Description() string {
	desc := i.station.Country
	if i.station.Genre != "" {
		if desc != "" {
			desc = fmt.Sprintf("%s • %s", desc, i.station.Genre)
		} else {
			desc = i.station.Genre
		}
	}
	if i.station.Codec != "" {
		part := i.station.Codec
		if i.station.Bitrate > 0 {
			part = fmt.Sprintf("%s %dkbps", part, i.station.Bitrate)
		}
		desc = fmt.Sprintf("%s • %s", desc, part)
	}
	return desc
}

func (i stationItem) badge() string {
	if i.result == nil {
		return "○"
	}
	switch i.result.Status {
	case streamcheck.StatusValid:
		return styles.ok.Render("✓")
	case streamcheck.StatusInvalid:
		return styles.warn.Render("✗")
	default:
		return styles.err.Render("!")
	}
}
