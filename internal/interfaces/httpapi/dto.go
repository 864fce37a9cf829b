package httpapi

import (
	"time"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/standings"
	"github.com/riskibarqy/community-league/internal/domain/team"
	"github.com/riskibarqy/community-league/internal/usecase"
)

const dateLayout = "2006-01-02"

type teamStatsDTO struct {
	Points         int `json:"points"`
	GamesPlayed    int `json:"games_played"`
	Wins           int `json:"wins"`
	Draws          int `json:"draws"`
	Losses         int `json:"losses"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`
	GoalDifference int `json:"goal_difference"`
}

type teamDTO struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Organization string       `json:"organization,omitempty"`
	Stats        teamStatsDTO `json:"stats"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type teamDetailDTO struct {
	Team    teamDTO          `json:"team"`
	Players []rosterEntryDTO `json:"players"`
}

type gameDTO struct {
	ID          string `json:"id"`
	MatchLabel  string `json:"match_label"`
	Week        int    `json:"week"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Location    string `json:"location,omitempty"`
	HomeTeamID  string `json:"home_team_id"`
	AwayTeamID  string `json:"away_team_id"`
	HomeScore   *int   `json:"home_score"`
	AwayScore   *int   `json:"away_score"`
	Status      string `json:"status"`
	IsPlayoff   bool   `json:"is_playoff"`
	IsPublished bool   `json:"is_published"`
}

type goalScorerDTO struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamID     string `json:"team_id"`
	Goals      int    `json:"goals"`
}

type gameSummaryDTO struct {
	Game         gameDTO         `json:"game"`
	HomeTeamName string          `json:"home_team_name"`
	AwayTeamName string          `json:"away_team_name"`
	GoalScorers  []goalScorerDTO `json:"goal_scorers,omitempty"`
}

type scheduleWeekDTO struct {
	Week  int              `json:"week"`
	Games []gameSummaryDTO `json:"games"`
}

type scoreBoardDTO struct {
	Games              []gameSummaryDTO `json:"games"`
	ScorersUnavailable bool             `json:"scorers_unavailable"`
}

type standingRowDTO struct {
	Position int          `json:"position"`
	TeamID   string       `json:"team_id"`
	TeamName string       `json:"team_name"`
	Stats    teamStatsDTO `json:"stats"`
	Form     string       `json:"form"`
}

type skippedGameDTO struct {
	GameID string `json:"game_id"`
	Reason string `json:"reason"`
}

type standingsDTO struct {
	Records []standingRowDTO `json:"records"`
	Skipped []skippedGameDTO `json:"skipped,omitempty"`
}

type rosterEntryDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"team_id"`
	PlayerName   string `json:"player_name"`
	JerseyNumber *int   `json:"jersey_number"`
	Goals        int    `json:"goals"`
	Assists      int    `json:"assists"`
	YellowCards  int    `json:"yellow_cards"`
	RedCards     int    `json:"red_cards"`
}

type leadersDTO struct {
	TopScorers         []rosterEntryDTO `json:"top_scorers"`
	CardLeaders        []rosterEntryDTO `json:"card_leaders"`
	FeatureUnavailable bool             `json:"feature_unavailable"`
}

type homeDTO struct {
	Recent    scoreBoardDTO    `json:"recent"`
	Upcoming  []gameSummaryDTO `json:"upcoming"`
	Standings standingsDTO     `json:"standings"`
}

type bracketSlotDTO struct {
	Seed   int    `json:"seed,omitempty"`
	TeamID string `json:"team_id,omitempty"`
}

type matchupDTO struct {
	Round        int            `json:"round"`
	Index        int            `json:"index"`
	Home         bracketSlotDTO `json:"home"`
	Away         bracketSlotDTO `json:"away"`
	Bye          bool           `json:"bye,omitempty"`
	GameID       string         `json:"game_id,omitempty"`
	WinnerTeamID string         `json:"winner_team_id,omitempty"`
}

type bracketDTO struct {
	Size           int            `json:"size"`
	Byes           int            `json:"byes"`
	Rounds         [][]matchupDTO `json:"rounds"`
	ChampionTeamID string         `json:"champion_team_id,omitempty"`
}

type gameEventDTO struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	PlayerID  string    `json:"player_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type gameEventsDTO struct {
	GameID             string         `json:"game_id"`
	Items              []gameEventDTO `json:"items"`
	FeatureUnavailable bool           `json:"feature_unavailable"`
}

type adminDashboardDTO struct {
	Teams             []teamDTO        `json:"teams"`
	Games             []gameDTO        `json:"games"`
	Roster            []rosterEntryDTO `json:"roster"`
	Standings         standingsDTO     `json:"standings"`
	EventsUnavailable bool             `json:"events_unavailable"`
	StatsWriteFailed  int              `json:"stats_write_failed"`
}

type writeBackDTO struct {
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

type recomputeDTO struct {
	Teams              writeBackDTO `json:"teams"`
	Roster             writeBackDTO `json:"roster"`
	FeatureUnavailable bool         `json:"feature_unavailable"`
}

type nextLabelDTO struct {
	Week       int    `json:"week"`
	MatchLabel string `json:"match_label"`
}

func teamStatsToDTO(s team.Stats) teamStatsDTO {
	return teamStatsDTO{
		Points:         s.Points,
		GamesPlayed:    s.GamesPlayed,
		Wins:           s.Wins,
		Draws:          s.Draws,
		Losses:         s.Losses,
		GoalsFor:       s.GoalsFor,
		GoalsAgainst:   s.GoalsAgainst,
		GoalDifference: s.GoalDifference,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:           v.ID,
		Name:         v.Name,
		Organization: v.Organization,
		Stats:        teamStatsToDTO(v.Stats),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	return out
}

func gameToDTO(v game.Game) gameDTO {
	return gameDTO{
		ID:          v.ID,
		MatchLabel:  v.MatchLabel,
		Week:        v.Week,
		Date:        v.Date.Format(dateLayout),
		Time:        v.Time,
		Location:    v.Location,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		HomeScore:   v.HomeScore,
		AwayScore:   v.AwayScore,
		Status:      string(v.Status),
		IsPlayoff:   v.IsPlayoff,
		IsPublished: v.IsPublished,
	}
}

func gamesToDTO(items []game.Game) []gameDTO {
	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(item))
	}
	return out
}

func gameSummaryToDTO(v usecase.GameSummary) gameSummaryDTO {
	out := gameSummaryDTO{
		Game:         gameToDTO(v.Game),
		HomeTeamName: v.HomeTeamName,
		AwayTeamName: v.AwayTeamName,
	}
	for _, s := range v.GoalScorers {
		out.GoalScorers = append(out.GoalScorers, goalScorerDTO{
			PlayerID:   s.PlayerID,
			PlayerName: s.PlayerName,
			TeamID:     s.TeamID,
			Goals:      s.Goals,
		})
	}
	return out
}

func gameSummariesToDTO(items []usecase.GameSummary) []gameSummaryDTO {
	out := make([]gameSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameSummaryToDTO(item))
	}
	return out
}

func scoreBoardToDTO(v usecase.ScoreBoard) scoreBoardDTO {
	return scoreBoardDTO{
		Games:              gameSummariesToDTO(v.Games),
		ScorersUnavailable: v.ScorersUnavailable,
	}
}

func standingsToDTO(v standings.Table) standingsDTO {
	out := standingsDTO{Records: make([]standingRowDTO, 0, len(v.Records))}
	for _, r := range v.Records {
		out.Records = append(out.Records, standingRowDTO{
			Position: r.Position,
			TeamID:   r.TeamID,
			TeamName: r.TeamName,
			Stats:    teamStatsToDTO(r.Stats),
			Form:     standings.FormString(r.Form),
		})
	}
	for _, s := range v.Skipped {
		out.Skipped = append(out.Skipped, skippedGameDTO{GameID: s.GameID, Reason: string(s.Reason)})
	}
	return out
}

func rosterEntryToDTO(v roster.Entry) rosterEntryDTO {
	return rosterEntryDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		PlayerName:   v.PlayerName,
		JerseyNumber: v.JerseyNumber,
		Goals:        v.Counters.Goals,
		Assists:      v.Counters.Assists,
		YellowCards:  v.Counters.YellowCards,
		RedCards:     v.Counters.RedCards,
	}
}

func rosterToDTO(items []roster.Entry) []rosterEntryDTO {
	out := make([]rosterEntryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, rosterEntryToDTO(item))
	}
	return out
}

func bracketToDTO(v standings.Bracket) bracketDTO {
	out := bracketDTO{
		Size:           v.Size,
		Byes:           v.Byes,
		Rounds:         make([][]matchupDTO, 0, len(v.Rounds)),
		ChampionTeamID: v.ChampionTeamID,
	}
	for _, round := range v.Rounds {
		items := make([]matchupDTO, 0, len(round))
		for _, m := range round {
			items = append(items, matchupDTO{
				Round:        m.Round,
				Index:        m.Index,
				Home:         bracketSlotDTO{Seed: m.Home.Seed, TeamID: m.Home.TeamID},
				Away:         bracketSlotDTO{Seed: m.Away.Seed, TeamID: m.Away.TeamID},
				Bye:          m.Bye,
				GameID:       m.GameID,
				WinnerTeamID: m.WinnerTeamID,
			})
		}
		out.Rounds = append(out.Rounds, items)
	}
	return out
}

func gameEventToDTO(v gameevent.Event) gameEventDTO {
	return gameEventDTO{
		ID:        v.ID,
		GameID:    v.GameID,
		PlayerID:  v.PlayerID,
		Type:      string(v.Type),
		CreatedAt: v.CreatedAt,
	}
}

func gameEventsToDTO(items []gameevent.Event) []gameEventDTO {
	out := make([]gameEventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameEventToDTO(item))
	}
	return out
}
