package sharepic

import (
	"github.com/young-islanders/sharepic/pkg/fixture"
)

// FromFixtures maps grouped game records onto cards for one render pass.
//
// The value field follows the mode: kickoff times for previews, raw
// scores for results. Divisions that don't report scores keep their raw
// opponent column (it holds the venue, not an abbreviation) and get no
// value in results mode, which excludes them from the slot count.
func FromFixtures(groups []fixture.TeamGames, opponents fixture.Opponents, mode Mode, scoresReported func(team string) bool) []Card {
	cards := make([]Card, 0, len(groups))
	for _, group := range groups {
		card := Card{Team: group.Team}
		reported := scoresReported == nil || scoresReported(group.Team)

		for _, g := range group.Games {
			row := Row{
				Date:     g.Date.Format(fixture.DateLayout),
				Opponent: g.Opponent,
				Away:     g.Away,
			}
			if reported {
				row.Opponent = opponents.Expand(g.Opponent)
			}

			switch mode {
			case ModeResults:
				if reported {
					row.Value = g.Score
				}
			default:
				row.Value = g.Time
			}
			card.Rows = append(card.Rows, row)
		}
		cards = append(cards, card)
	}
	return cards
}
