package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"holdem-table/card"
	"holdem-table/holdem"
)

func cardsLine(cards []card.Card) string {
	if len(cards) == 0 {
		return "—"
	}
	line := ""
	for i, c := range cards {
		if i > 0 {
			line += " "
		}
		line += c.String()
	}
	return line
}

// printTurnState draws the view the player decides from: own cards,
// board, pot and what a call costs.
func printTurnState(view holdem.TableView) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := pterm.Sprintf("Stage: %s\nHand: %s\nBoard: %s\nPot: %d   To call: %d   Stack: %d",
		view.Stage, pterm.BgGreen.Sprint(cardsLine(view.HoleCards)), cardsLine(view.Community),
		view.Pot, view.BetToCall, view.Funds)
	pterm.Println(pbox.WithTitle(pterm.LightYellow("|YOUR TURN|")).WithTitleTopCenter().Sprint(body))
}

func printEvent(ev holdem.RoundEvent, round *holdem.Round, humanID uint64) {
	switch ev.Kind {
	case holdem.EventPlayerTurn:
		actor := ev.PlayerName
		if ev.PlayerID == humanID {
			actor = pterm.LightCyan(actor)
		}
		switch ev.Action.Kind {
		case holdem.ActionFold:
			pterm.Info.Printfln("%s folds", actor)
		case holdem.ActionCheck:
			pterm.Info.Printfln("%s checks", actor)
		case holdem.ActionBet:
			suffix := ""
			if ev.AllIn {
				suffix = " (all-in)"
			}
			pterm.Info.Printfln("%s puts in %d%s — pot %d", actor, ev.Contributed, suffix, round.Pot())
		}
		if ev.Result != nil && ev.Result.Walkover {
			printResult(ev.Result, humanID)
		}
	case holdem.EventStageAdvance:
		pterm.Info.Printfln("%s: %s", ev.Stage, cardsLine(round.CommunityCards()))
	case holdem.EventShowdown:
		printResult(ev.Result, humanID)
	}
}

func printResult(result *holdem.RoundResult, humanID uint64) {
	if result == nil {
		return
	}
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := ""
	for _, pr := range result.PlayerResults {
		name := pr.Name
		if pr.PlayerID == humanID {
			name = pterm.LightCyan(name)
		}
		switch {
		case pr.IsWinner && result.Walkover:
			body += pterm.Sprintfln("%s wins %d — everyone else folded", name, pr.WinAmount)
		case pr.IsWinner:
			body += pterm.Sprintfln("%s wins %d with %s (%s)", name, pr.WinAmount,
				holdem.HandTypeDictionary[pr.Category], cardsLine(pr.BestFive))
		case pr.Category > 0:
			body += pterm.Sprintfln("%s shows %s (%s)", name,
				holdem.HandTypeDictionary[pr.Category], cardsLine(pr.BestFive))
		}
	}
	if result.RefundAmount > 0 {
		body += pterm.Sprintfln("Uncalled %d returned", result.RefundAmount)
	}
	title := pterm.LightGreen("|SHOWDOWN|")
	if result.Walkover {
		title = pterm.LightGreen("|POT TAKEN|")
	}
	pterm.Println(pbox.WithTitle(title).WithTitleTopCenter().Sprint(body))
}

func printStandings(game *holdem.Game, humanID uint64) {
	body := ""
	for _, p := range game.Players() {
		name := p.Name()
		if p.ID() == humanID {
			name = pterm.LightCyan(name)
		}
		body += fmt.Sprintf("%s: %d\n", name, p.Funds())
	}
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	pterm.Println(pbox.WithTitle("|STACKS|").WithTitleTopLeft().Sprint(body))
}
