package reservations

import (
	"errors"
	"regexp"
	"strings"

	"eltablero/dates"
	"eltablero/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GameTBD is stored when the customer leaves the game choice open.
const GameTBD = "A decidir en el local"

const (
	MinPeople = 1
	MaxPeople = 6
)

var phoneRe = regexp.MustCompile(`^\+?[0-9\s-]+$`)

var (
	ErrBadDate   = errors.New("date must be YYYY-MM-DD")
	ErrBadTime   = errors.New("time slot is required")
	ErrBadPeople = errors.New("party size must be between 1 and 6")
	ErrBadPhone  = errors.New("phone number is invalid")
	ErrBadStatus = errors.New("unknown status")
)

type bookingInput struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	People   int    `json:"people"`
	Game     string `json:"game"`
	Phone    string `json:"phone"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

// validateBooking checks the customer-editable fields shared by create and
// edit. It does not look at price fields; those are never client input.
func validateBooking(in bookingInput) error {
	if !dates.Valid(in.Date) {
		return ErrBadDate
	}
	if strings.TrimSpace(in.Time) == "" {
		return ErrBadTime
	}
	if in.People < MinPeople || in.People > MaxPeople {
		return ErrBadPeople
	}
	if !phoneRe.MatchString(strings.TrimSpace(in.Phone)) {
		return ErrBadPhone
	}
	return nil
}

// gameOrDefault substitutes the open-choice sentinel for a blank game.
func gameOrDefault(game string) string {
	game = strings.TrimSpace(game)
	if game == "" {
		return GameTBD
	}
	return game
}

// editSet builds the update document for an admin edit. Price and total are
// deliberately absent: the amounts snapshotted at booking time stay fixed no
// matter what the current price is.
func editSet(in bookingInput) (bson.M, error) {
	if err := validateBooking(in); err != nil {
		return nil, err
	}
	if !models.ValidStatus(in.Status) {
		return nil, ErrBadStatus
	}
	return bson.M{
		"date":      dates.Normalize(in.Date),
		"time":      in.Time,
		"people":    in.People,
		"game":      gameOrDefault(in.Game),
		"phone":     strings.TrimSpace(in.Phone),
		"userName":  strings.TrimSpace(in.UserName),
		"userEmail": strings.TrimSpace(in.Email),
		"status":    in.Status,
	}, nil
}
