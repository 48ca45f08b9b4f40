package simulation

import (
	"errors"
	"math/rand/v2"
	"strconv"

	"github.com/ygrebnov/errorc"
)

var ErrInvalidParams = errors.New("simulation: invalid parameters")

// Params describes one task: a game repeated Repetitions times.
// Seed fully determines the random draws, so a task yields the same Summary on any worker.
type Params struct {
	Game        Game
	Repetitions int
	Seed        uint64
}

// Summary aggregates the outcomes of all repetitions of one Params.
type Summary struct {
	BetProportion float64
	AvgMoney      float64
	AvgRounds     float64
	PropLost      float64
	PropMaxed     float64
}

// Compute plays p.Repetitions games with a generator private to this call.
// It is safe for concurrent use.
func Compute(p Params) Summary {
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))

	s := Summary{BetProportion: p.Game.BetProportion}
	if p.Repetitions <= 0 {
		return s
	}

	for i := 0; i < p.Repetitions; i++ {
		o := p.Game.Play(rng)
		if o.Lost {
			s.PropLost++
		}
		if o.Maxed {
			s.PropMaxed++
		}
		s.AvgMoney += o.Money
		s.AvgRounds += float64(o.Rounds)
	}

	n := float64(p.Repetitions)
	s.AvgMoney /= n
	s.AvgRounds /= n
	s.PropLost /= n
	s.PropMaxed /= n
	return s
}

// Sweep builds steps+1 Params whose bet proportions run from 0 to 1 in equal increments.
// Entry i is seeded with seed+i.
func Sweep(template Game, repetitions, steps int, seed uint64) ([]Params, error) {
	if repetitions <= 0 {
		return nil, errorc.With(ErrInvalidParams, errorc.String("repetitions", strconv.Itoa(repetitions)))
	}
	if steps <= 0 {
		return nil, errorc.With(ErrInvalidParams, errorc.String("steps", strconv.Itoa(steps)))
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}

	params := make([]Params, 0, steps+1)
	for i := 0; i <= steps; i++ {
		g := template
		g.BetProportion = float64(i) / float64(steps)
		params = append(params, Params{Game: g, Repetitions: repetitions, Seed: seed + uint64(i)})
	}
	return params, nil
}
