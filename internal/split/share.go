// Package split computes what each participant owes for an order and
// converts the participant text box to and from participant records.
package split

import (
	"errors"
	"math"

	"github.com/Makepad-fr/pizza/internal/model"
)

// ErrNoParticipants is returned when there is nobody to split the total between.
var ErrNoParticipants = errors.New("order has no participants")

// ErrBadTotal is returned for a total that is not a finite amount small
// enough to count exactly in subunits.
var ErrBadTotal = errors.New("order total out of range")

const (
	subunits = 100
	// largest subunit count a float64 holds exactly
	maxSubunits = 1 << 53
)

// Weight is 2 for a full portion and 1 for a half portion.
func Weight(p model.Participant) int {
	if p.Half {
		return 1
	}
	return 2
}

// TotalWeight sums the weights of every participant.
func TotalWeight(participants []model.Participant) int {
	w := 0
	for _, p := range participants {
		w += Weight(p)
	}
	return w
}

// unitSubunits is the price of one half portion, in rounded subunits.
func unitSubunits(total float64, participants []model.Participant) (int64, error) {
	w := TotalWeight(participants)
	if w == 0 {
		return 0, ErrNoParticipants
	}
	if math.IsNaN(total) || math.Abs(total*subunits) > maxSubunits {
		return 0, ErrBadTotal
	}
	return int64(math.Round(total / float64(w) * subunits)), nil
}

// UnitPrice is the price of one half portion, rounded once to the nearest
// subunit with ties away from zero.
func UnitPrice(total float64, participants []model.Participant) (float64, error) {
	u, err := unitSubunits(total, participants)
	if err != nil {
		return 0, err
	}
	return float64(u) / subunits, nil
}

// Share is what who owes: the rounded unit price times their weight.
// A full share is exactly twice a half share; it is not rounded again.
func Share(total float64, participants []model.Participant, who model.Participant) (float64, error) {
	u, err := unitSubunits(total, participants)
	if err != nil {
		return 0, err
	}
	return float64(u*int64(Weight(who))) / subunits, nil
}

// Shares returns one share per participant, in order.
func Shares(total float64, participants []model.Participant) ([]float64, error) {
	u, err := unitSubunits(total, participants)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(participants))
	for i, p := range participants {
		out[i] = float64(u*int64(Weight(p))) / subunits
	}
	return out, nil
}

// Residue is total minus the sum of all shares. It is never corrected;
// its magnitude stays under one subunit per unit of total weight.
func Residue(total float64, participants []model.Participant) (float64, error) {
	u, err := unitSubunits(total, participants)
	if err != nil {
		return 0, err
	}
	collected := u * int64(TotalWeight(participants))
	return float64(int64(math.Round(total*subunits))-collected) / subunits, nil
}
