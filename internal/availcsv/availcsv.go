// Package availcsv loads engineer unavailability records from CSV.
package availcsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/reinka/oncall-scheduler/pkg/roster"
)

const dateLayout = "2006-01-02"

// Load reads an availability CSV with header "engineer,start_date,end_date"
// and inclusive ISO-8601 date endpoints. Rows naming unknown engineers are
// not filtered here; that check belongs to the Validator and Availability
// Resolver, which warn rather than fail.
func Load(path string, loc *time.Location) ([]roster.UnavailabilityRecord, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, roster.WrapError(roster.KindIO, "opening availability csv", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, roster.WrapError(roster.KindIO, "reading availability csv", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]roster.UnavailabilityRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != 3 {
			return nil, roster.NewError(roster.KindIO, fmt.Sprintf("availability csv row %d: want 3 columns, got %d", i+2, len(row)))
		}
		start, err := time.ParseInLocation(dateLayout, row[1], loc)
		if err != nil {
			return nil, roster.WrapError(roster.KindIO, fmt.Sprintf("availability csv row %d: start_date", i+2), err)
		}
		end, err := time.ParseInLocation(dateLayout, row[2], loc)
		if err != nil {
			return nil, roster.WrapError(roster.KindIO, fmt.Sprintf("availability csv row %d: end_date", i+2), err)
		}
		if end.Before(start) {
			return nil, roster.NewError(roster.KindIO, fmt.Sprintf("availability csv row %d: end_date before start_date", i+2))
		}
		records = append(records, roster.UnavailabilityRecord{
			Engineer: roster.Engineer(row[0]),
			Start:    start,
			End:      end,
		})
	}
	return records, nil
}
