// Package icalexport writes the generated shift calendar as an iCalendar
// document, one VEVENT per shift.
package icalexport

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/reinka/oncall-scheduler/pkg/roster"
)

// uidNamespace roots the deterministic per-shift UIDs. Stable across runs so
// that re-generating an unchanged roster produces byte-identical calendars.
var uidNamespace = uuid.MustParse("6f1a6e6c-6e9b-4e7f-8a6f-6f6f6f6f6f6f")

// Write emits a VCALENDAR with one VEVENT per shift. SUMMARY is
// "RoleName — EngineerName"; DTSTART/DTEND carry shifts' own zone (the
// roster's configured zone, since every Shift.Start/End is already in it);
// UID is derived from (block, week, role id, entry index, weekday) so it is
// stable across runs given identical input.
func Write(path string, shifts []roster.Shift) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//oncall-scheduler//roster//EN")

	for _, s := range shifts {
		cal.Children = append(cal.Children, eventFor(s).Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return roster.WrapError(roster.KindIO, "encoding ical calendar", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return roster.WrapError(roster.KindIO, "writing ical file", err)
	}
	return nil
}

func eventFor(s roster.Shift) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uidFor(s))
	event.Props.SetDateTime(ical.PropDateTimeStamp, s.Start)
	event.Props.SetDateTime(ical.PropDateTimeStart, s.Start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, s.End)
	event.Props.SetText(ical.PropSummary, fmt.Sprintf("%s — %s", s.RoleName, s.Engineer))
	return event
}

func uidFor(s roster.Shift) string {
	name := fmt.Sprintf("%d/%d/%s/%d/%d", s.Block, s.Week, s.Role, s.EntryIndex, int(s.Weekday))
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

// Event is the subset of a Shift that survives a round trip through the
// iCalendar encoding: the engineer/role summary plus the absolute interval.
// EntryIndex, Weekday, Block and per-slot role id are not recoverable from
// SUMMARY alone; round-trip comparison against the CSV export works on
// role/engineer/start/end.
type Event struct {
	RoleName string
	Engineer string
	Start    string
	End      string
}

// Read parses an iCalendar document written by Write back into Events, for
// round-trip comparison against the CSV export.
func Read(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, roster.WrapError(roster.KindIO, "reading ical file", err)
	}
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	if err != nil {
		return nil, roster.WrapError(roster.KindIO, "decoding ical calendar", err)
	}

	var events []Event
	for _, child := range cal.Children {
		if child.Name != ical.CompEvent {
			continue
		}
		event := &ical.Event{Component: child}
		summary, err := event.Props.Text(ical.PropSummary)
		if err != nil {
			return nil, roster.WrapError(roster.KindIO, "reading VEVENT SUMMARY", err)
		}
		start, err := event.Props.DateTime(ical.PropDateTimeStart, nil)
		if err != nil {
			return nil, roster.WrapError(roster.KindIO, "reading VEVENT DTSTART", err)
		}
		end, err := event.Props.DateTime(ical.PropDateTimeEnd, nil)
		if err != nil {
			return nil, roster.WrapError(roster.KindIO, "reading VEVENT DTEND", err)
		}
		role, engineer, _ := strings.Cut(summary, " — ")
		events = append(events, Event{
			RoleName: role,
			Engineer: engineer,
			Start:    start.Format(dateTimeLayout),
			End:      end.Format(dateTimeLayout),
		})
	}
	return events, nil
}

const dateTimeLayout = "2006-01-02 15:04"
