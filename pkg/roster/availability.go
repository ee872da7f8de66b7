package roster

// ResolveAvailability converts unavailability records into per-block
// ForbiddenPairs by intersecting each record's inclusive date range with
// every week's half-open 7-day window in block. Any nonzero overlap, even a
// single day, forbids the entire week for that engineer. Records naming an
// engineer outside team are skipped and reported as a warning, never an
// error.
func ResolveAvailability(records []UnavailabilityRecord, team Team, block Block) ([]ForbiddenPair, []Problem) {
	known := make(map[Engineer]bool, len(team))
	for _, e := range team {
		known[e] = true
	}

	var pairs []ForbiddenPair
	var problems []Problem
	seen := make(map[ForbiddenPair]bool)

	for i, rec := range records {
		if !known[rec.Engineer] {
			problems = append(problems, AvailabilityWarning(rec.Engineer, i+1))
			continue
		}
		for w := 0; w < block.Weeks; w++ {
			weekStart := block.Start.AddDate(0, 0, 7*w)
			weekEnd := weekStart.AddDate(0, 0, 7)
			if rec.Start.Before(weekEnd) && !rec.End.Before(weekStart) {
				pair := ForbiddenPair{Engineer: rec.Engineer, Week: w}
				if !seen[pair] {
					seen[pair] = true
					pairs = append(pairs, pair)
				}
			}
		}
	}
	return pairs, problems
}
