package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"president/internal/app"
	"president/internal/domain"
)

// tableView prints game events as they happen.
type tableView struct {
	human bool
}

func (v *tableView) render(ev app.Event) {
	switch p := ev.Payload.(type) {
	case app.HandDealtPayload:
		if v.human && p.UserID == humanID {
			pterm.Info.Printfln("Your hand: %s", pterm.LightGreen(domain.FormatCards(p.Hand)))
		}
	case app.CardsExchangedPayload:
		pterm.Info.Printfln("%s gives %s to %s", pterm.LightCyan(p.FromUserID), domain.FormatCards(p.Cards), pterm.LightCyan(p.ToUserID))
	case app.CardPlayedPayload:
		pterm.Printfln("  %s plays %s (%d left)", pterm.LightCyan(p.UserID), pterm.LightYellow(domain.FormatCards(p.Cards)), p.CardsLeft)
	case app.TurnPassedPayload:
		if p.Forced {
			pterm.Printfln("  %s cannot follow", pterm.LightCyan(p.UserID))
		} else {
			pterm.Printfln("  %s passes", pterm.LightCyan(p.UserID))
		}
	case app.TrickWonPayload:
		if p.WinnerUserID == "" {
			pterm.Printfln("  everyone passed, %s leads", p.NextLeader)
			return
		}
		pterm.Success.Printfln("%s wins the trick (%s), %s leads", p.WinnerUserID, p.Reason, p.NextLeader)
	case app.PlayerFinishedPayload:
		pterm.Info.Printfln("%s is out in position %d", pterm.LightGreen(p.UserID), p.Position)
	case app.RoundEndedPayload:
		renderRanking(p)
	}
}

func renderRanking(p app.RoundEndedPayload) {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	var b strings.Builder
	for i, r := range p.Ranking {
		b.WriteString(pterm.Sprintfln("%d. %s  %s  %+d", i+1, pterm.LightCyan(r.UserID), r.Role, r.Points))
	}
	panel := pterm.Panel{Data: pbox.WithTitle(pterm.LightYellow(fmt.Sprintf("|ROUND %d|", p.Round))).WithTitleTopCenter().Sprint(b.String())}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{{panel}}).Render()
}

func printTotals(seats []app.Seat, totals map[string]int64) {
	ids := make([]string, 0, len(seats))
	for _, s := range seats {
		ids = append(ids, s.UserID)
	}
	sort.SliceStable(ids, func(i, j int) bool { return totals[ids[i]] > totals[ids[j]] })

	data := pterm.TableData{{"Player", "Points"}}
	for _, id := range ids {
		data = append(data, []string{id, fmt.Sprintf("%+d", totals[id])})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
