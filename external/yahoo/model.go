package yahoo

type fantasyContent struct {
	League *league `xml:"league"`
}

type league struct {
	Key         string      `xml:"league_key"`
	Name        string      `xml:"name"`
	CurrentWeek int         `xml:"current_week"`
	Standings   *standings  `xml:"standings"`
	Scoreboard  *scoreboard `xml:"scoreboard"`
}

type standings struct {
	Teams *teams `xml:"teams"`
}

type teams struct {
	Teams []team `xml:"team"`
}

type team struct {
	Key           string         `xml:"team_key"`
	Name          string         `xml:"name"`
	Managers      *managers      `xml:"managers"`
	TeamPoints    *teamPoints    `xml:"team_points"`
	TeamStandings *teamStandings `xml:"team_standings"`
}

type managers struct {
	Managers []manager `xml:"manager"`
}

type manager struct {
	Nickname string `xml:"nickname"`
}

type teamPoints struct {
	Total float64 `xml:"total"`
}

type teamStandings struct {
	OutcomeTotals *outcomeTotals `xml:"outcome_totals"`
}

type outcomeTotals struct {
	Wins   int `xml:"wins"`
	Losses int `xml:"losses"`
}

type scoreboard struct {
	Week     int       `xml:"week"`
	Matchups *matchups `xml:"matchups"`
}

type matchups struct {
	Matchups []matchup `xml:"matchup"`
}

type matchup struct {
	Teams *teams `xml:"teams"`
}
