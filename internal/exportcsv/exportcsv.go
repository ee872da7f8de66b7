// Package exportcsv writes the generated shift calendar as CSV.
package exportcsv

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/reinka/oncall-scheduler/pkg/roster"
)

const dateTimeLayout = "2006-01-02 15:04"

// Write emits one row per shift, header "Week,Role,Engineer,Start DateTime,End DateTime",
// in the order shifts is given (callers pass it already in (block, week, role) order).
func Write(path string, shifts []roster.Shift) error {
	f, err := os.Create(path)
	if err != nil {
		return roster.WrapError(roster.KindIO, "creating schedule csv", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Week", "Role", "Engineer", "Start DateTime", "End DateTime"}); err != nil {
		return roster.WrapError(roster.KindIO, "writing schedule csv header", err)
	}
	for _, s := range shifts {
		row := []string{
			weekLabel(s),
			s.RoleName,
			string(s.Engineer),
			s.Start.Format(dateTimeLayout),
			s.End.Format(dateTimeLayout),
		}
		if err := w.Write(row); err != nil {
			return roster.WrapError(roster.KindIO, "writing schedule csv row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return roster.WrapError(roster.KindIO, "flushing schedule csv", err)
	}
	return nil
}

func weekLabel(s roster.Shift) string {
	return strconv.Itoa(s.Block) + "." + strconv.Itoa(s.Week)
}

// Row is one parsed schedule CSV row, used for round-trip comparison against
// the iCal export.
type Row struct {
	RoleName string
	Engineer string
	Start    string
	End      string
}

// Read parses a schedule CSV written by Write back into Rows.
func Read(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, roster.WrapError(roster.KindIO, "opening schedule csv", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, roster.WrapError(roster.KindIO, "reading schedule csv", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]Row, 0, len(rows)-1)
	for _, r := range rows[1:] {
		out = append(out, Row{RoleName: r[1], Engineer: r[2], Start: r[3], End: r[4]})
	}
	return out, nil
}
