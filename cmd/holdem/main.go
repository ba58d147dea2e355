package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"holdem-table/brain"
	"holdem-table/holdem"
)

func main() {
	seatsFlag := flag.Int("seats", 4, "number of seats at the table")
	smallFlag := flag.Int64("small", 1, "small blind")
	bigFlag := flag.Int64("big", 2, "big blind")
	anteFlag := flag.Int64("ante", 0, "ante per player")
	buyInFlag := flag.Int64("buyin", 200, "starting chips per player")
	seedFlag := flag.Int64("seed", 0, "deck seed (0 = random)")
	flag.Parse()

	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("HOLD", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("EM", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").WithDefaultValue("you").Show()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "you"
	}
	pterm.Println()

	seatCount := *seatsFlag
	if seatCount < 2 {
		seatCount = 2
	}

	human := brain.NewInteractive(name)
	seats := []holdem.Seat{{
		Name:     name,
		Funds:    *buyInFlag,
		Behavior: holdem.BehaviorInteractive,
		Policy:   human,
	}}
	botBehaviors := []holdem.Behavior{
		holdem.BehaviorStandard,
		holdem.BehaviorRisky,
		holdem.BehaviorConservative,
	}
	for i := 1; i < seatCount; i++ {
		behavior := botBehaviors[(i-1)%len(botBehaviors)]
		botName := fmt.Sprintf("%s_%d", strings.ToLower(string(behavior)), i)
		seats = append(seats, holdem.Seat{
			Name:     botName,
			Funds:    *buyInFlag,
			Behavior: behavior,
			Policy:   brain.ForBehavior(botName, behavior, *seedFlag+int64(i)),
		})
	}

	game, err := holdem.NewGame(holdem.Config{
		SmallBlind: *smallFlag,
		BigBlind:   *bigFlag,
		Ante:       *anteFlag,
		Seed:       *seedFlag,
	}, seats)
	if err != nil {
		pterm.Error.Printfln("Cannot start game: %v", err)
		return
	}

	// The roster fronts the random dealer; initial seating order is the
	// stable way to find the seat created first.
	humanPlayer := game.InitialPlayers()[0]
	humanID := humanPlayer.ID()
	go servePrompts(human)

	for {
		round, err := game.PlayRound()
		if err != nil {
			if !errors.Is(err, holdem.ErrGameOver) {
				pterm.Error.Printfln("Round setup failed: %v", err)
			}
			break
		}

		dealer := game.Dealer()
		pterm.DefaultSection.Printfln("Hand %d — dealer: %s", game.RoundsPlayed(), dealer.Name())

		for {
			ev, err := round.Advance()
			if err != nil {
				if !errors.Is(err, holdem.ErrRoundOver) {
					pterm.Error.Printfln("Round failed: %v", err)
				}
				break
			}
			printEvent(ev, round, humanID)
		}

		// Busted players leave the roster only on the next PlayRound, so
		// funds are checked directly to end on the hand that decided it.
		if humanPlayer.Funds() == 0 {
			pterm.Error.Println("You have been eliminated, better luck next time!")
			break
		}
		if remainingWithChips(game) == 1 {
			pterm.Success.Println("You are the last player standing, congratulations!")
			break
		}

		printStandings(game, humanID)
		again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Deal the next hand?").WithDefaultValue(true).Show()
		if !again {
			break
		}
	}

	pterm.Println("Thanks for playing...")
}

// remainingWithChips counts players who can still be dealt in.
func remainingWithChips(game *holdem.Game) int {
	n := 0
	for _, p := range game.Players() {
		if p.Funds() > 0 {
			n++
		}
	}
	return n
}

// servePrompts answers the engine's blocking decision requests with
// interactive input. It runs for the lifetime of the process.
func servePrompts(human *brain.Interactive) {
	for view := range human.Requests() {
		printTurnState(view)
		human.Submit(askAction(view))
	}
}

func askAction(view holdem.TableView) holdem.Action {
	options := buildOptions(view)
	for {
		choice, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Your action").WithOptions(options).Show()
		switch {
		case choice == "Fold":
			return holdem.Fold()
		case choice == "Check":
			return holdem.Check()
		case strings.HasPrefix(choice, "Call"):
			return holdem.Bet(view.BetToCall)
		case choice == "All-In":
			return holdem.Bet(view.Funds)
		case choice == "Bet", choice == "Raise":
			raw, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Amount to put in beyond the call").Show()
			amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil || amount <= 0 {
				pterm.Error.Println("Enter a positive number")
				continue
			}
			return holdem.Bet(view.BetToCall + amount)
		}
	}
}

func buildOptions(view holdem.TableView) []string {
	if view.BetToCall == 0 {
		return []string{"Check", "Bet", "All-In", "Fold"}
	}
	if view.BetToCall >= view.Funds {
		return []string{"All-In", "Fold"}
	}
	return []string{fmt.Sprintf("Call (%d)", view.BetToCall), "Raise", "All-In", "Fold"}
}
