package memory

import (
	"time"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/history"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/team"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/writeup"
)

// Seed data for dev mode when no database is configured.

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "wlf.t.1", Name: "Moon Howlers", Manager: "Dana", Wins: 3, Losses: 0},
		{ID: "wlf.t.2", Name: "Gridiron Ghosts", Manager: "Marcus", Wins: 2, Losses: 1},
		{ID: "wlf.t.3", Name: "Blitz Bandits", Manager: "Priya", Wins: 1, Losses: 2},
		{ID: "wlf.t.4", Name: "End Zone Elks", Manager: "Tom", Wins: 0, Losses: 3},
	}
}

func SeedResults() []result.Result {
	return []result.Result{
		{TeamID: "wlf.t.1", OpponentID: "wlf.t.2", Week: 1, Points: 132.4, OpponentPoints: 110.1, TopPoints: true},
		{TeamID: "wlf.t.2", OpponentID: "wlf.t.1", Week: 1, Points: 110.1, OpponentPoints: 132.4},
		{TeamID: "wlf.t.3", OpponentID: "wlf.t.4", Week: 1, Points: 98.7, OpponentPoints: 91.2},
		{TeamID: "wlf.t.4", OpponentID: "wlf.t.3", Week: 1, Points: 91.2, OpponentPoints: 98.7},
		{TeamID: "wlf.t.1", OpponentID: "wlf.t.3", Week: 2, Points: 120.9, OpponentPoints: 104.5},
		{TeamID: "wlf.t.3", OpponentID: "wlf.t.1", Week: 2, Points: 104.5, OpponentPoints: 120.9},
		{TeamID: "wlf.t.2", OpponentID: "wlf.t.4", Week: 2, Points: 127.3, OpponentPoints: 88.6, TopPoints: true, TopPlayer: true},
		{TeamID: "wlf.t.4", OpponentID: "wlf.t.2", Week: 2, Points: 88.6, OpponentPoints: 127.3},
		{TeamID: "wlf.t.1", OpponentID: "wlf.t.4", Week: 3, Points: 140.2, OpponentPoints: 97.8, TopPoints: true},
		{TeamID: "wlf.t.4", OpponentID: "wlf.t.1", Week: 3, Points: 97.8, OpponentPoints: 140.2},
		{TeamID: "wlf.t.2", OpponentID: "wlf.t.3", Week: 3, Points: 115.5, OpponentPoints: 101.3},
		{TeamID: "wlf.t.3", OpponentID: "wlf.t.2", Week: 3, Points: 101.3, OpponentPoints: 115.5},
	}
}

func SeedWriteups() []writeup.Writeup {
	return []writeup.Writeup{
		{
			Week:      3,
			Title:     "Week 3: Howlers stay perfect",
			Content:   "The Moon Howlers put up a season-high 140.2 and remain the only unbeaten team.",
			CreatedAt: time.Date(2025, 9, 23, 9, 0, 0, 0, time.UTC),
		},
	}
}

func SeedHistory() []history.Record {
	return []history.Record{
		{Year: 2023, Champion: "Gridiron Ghosts", Manager: "Marcus"},
		{Year: 2024, Champion: "Moon Howlers", Manager: "Dana"},
	}
}
