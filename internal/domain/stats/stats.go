package stats

import (
	"sort"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
)

// Aggregate holds per-team totals reduced from a result set.
type Aggregate struct {
	PointsFor      float64
	PointsAgainst  float64
	TopScoreWeeks  int
	TopPlayerWeeks int
}

// Streak returns a signed run of same-outcome results ending at the most
// recent played week: +N for N straight wins, -N for N straight losses,
// 0 for an empty set. Equal points count as a loss.
func Streak(results []result.Result) int {
	if len(results) == 0 {
		return 0
	}

	sorted := append([]result.Result(nil), results...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Week > sorted[j].Week
	})

	streak := 0
	for _, r := range sorted {
		won := r.Points > r.OpponentPoints
		switch {
		case streak == 0:
			if won {
				streak = 1
			} else {
				streak = -1
			}
		case won && streak > 0:
			streak++
		case !won && streak < 0:
			streak--
		default:
			return streak
		}
	}

	return streak
}

// Summarize reduces a team's results into totals. Order independent;
// an empty set yields the zero value.
func Summarize(results []result.Result) Aggregate {
	var agg Aggregate
	for _, r := range results {
		agg.PointsFor += r.Points
		agg.PointsAgainst += r.OpponentPoints
		if r.TopPoints {
			agg.TopScoreWeeks++
		}
		if r.TopPlayer {
			agg.TopPlayerWeeks++
		}
	}

	return agg
}

// TopScoringTeam returns the team with the highest points in the given
// week. Among exact ties the first row encountered wins, so callers must
// not rely on a particular winner. The second return is false when the
// week has no rows.
func TopScoringTeam(results []result.Result, week int) (string, bool) {
	var (
		teamID string
		best   float64
		found  bool
	)
	for _, r := range results {
		if r.Week != week {
			continue
		}
		if !found || r.Points > best {
			teamID = r.TeamID
			best = r.Points
			found = true
		}
	}

	return teamID, found
}

// WeeklyTopScorers groups results by week and returns, per week, every
// team matching that week's maximum points. Unlike TopScoringTeam, ties
// are all reported; the batch recompute flags each of them.
func WeeklyTopScorers(results []result.Result) map[int][]string {
	maxByWeek := make(map[int]float64)
	for _, r := range results {
		if best, ok := maxByWeek[r.Week]; !ok || r.Points > best {
			maxByWeek[r.Week] = r.Points
		}
	}

	winners := make(map[int][]string, len(maxByWeek))
	for _, r := range results {
		if r.Points == maxByWeek[r.Week] {
			winners[r.Week] = append(winners[r.Week], r.TeamID)
		}
	}

	return winners
}
