// Package simulation implements the Kelly criterion betting game: a gambler
// repeatedly stakes a fixed proportion of their money on a biased coin.
package simulation

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/ygrebnov/errorc"
)

var epsilon = math.Nextafter(1, 2) - 1

// Game configures a single play-through.
type Game struct {
	MoneyStart      float64 `yaml:"money_start"`
	ChanceOfWinning float64 `yaml:"chance_of_winning"`
	MaxBets         int     `yaml:"max_bets"`
	MoneyMax        float64 `yaml:"money_max"`
	BetProportion   float64 `yaml:"bet_proportion"`
}

// DefaultGame is the template swept by the kelly command.
func DefaultGame() Game {
	return Game{
		MoneyStart:      25,
		ChanceOfWinning: 0.60,
		MaxBets:         300,
		MoneyMax:        250,
	}
}

// Outcome is the state a game ended in.
type Outcome struct {
	Money  float64
	Rounds int
	Lost   bool
	Maxed  bool
}

// Validate rejects games that cannot be played.
func (g Game) Validate() error {
	switch {
	case g.MoneyStart < 0:
		return errorc.With(ErrInvalidParams, errorc.String("money_start", ftoa(g.MoneyStart)))
	case g.ChanceOfWinning < 0 || g.ChanceOfWinning > 1:
		return errorc.With(ErrInvalidParams, errorc.String("chance_of_winning", ftoa(g.ChanceOfWinning)))
	case g.MaxBets < 0:
		return errorc.With(ErrInvalidParams, errorc.String("max_bets", strconv.Itoa(g.MaxBets)))
	case g.MoneyMax < g.MoneyStart:
		return errorc.With(ErrInvalidParams, errorc.String("money_max", ftoa(g.MoneyMax)))
	case g.BetProportion < 0 || g.BetProportion > 1:
		return errorc.With(ErrInvalidParams, errorc.String("bet_proportion", ftoa(g.BetProportion)))
	}
	return nil
}

// Play runs the game until the gambler goes bust, reaches MoneyMax, or runs out of bets.
// Going bust resets the reported money to MoneyStart; reaching the cap clamps it to MoneyMax.
func (g Game) Play(rng *rand.Rand) Outcome {
	money := g.MoneyStart
	out := Outcome{
		Lost:  money <= epsilon,
		Maxed: money >= g.MoneyMax-epsilon,
	}

	for out.Rounds < g.MaxBets {
		bet := g.BetProportion * money
		out.Rounds++

		if rng.Float64() < g.ChanceOfWinning {
			money += bet
		} else {
			money -= bet
		}

		out.Lost = money <= epsilon
		out.Maxed = money >= g.MoneyMax-epsilon

		if out.Lost {
			money = g.MoneyStart
			break
		}
		if out.Maxed {
			money = g.MoneyMax
			break
		}
	}

	out.Money = money
	return out
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
