package delivery

import (
	"time"

	"fleetops/internal/pkg/errs"
)

const (
	// RatingMinStars and RatingMaxStars bound a customer rating.
	RatingMinStars = 1
	RatingMaxStars = 5
)

// Rating is the customer's one-time rating of a delivered shipment.
type Rating struct {
	stars    int
	feedback string
	ratedAt  time.Time
}

// NewRating creates a validated rating.
func NewRating(stars int, feedback string, at time.Time) (Rating, error) {
	if stars < RatingMinStars || stars > RatingMaxStars {
		return Rating{}, errs.NewValueIsOutOfRangeError("stars", stars, RatingMinStars, RatingMaxStars)
	}
	return Rating{stars: stars, feedback: feedback, ratedAt: at}, nil
}

// Stars returns the star count, 1 to 5.
func (r Rating) Stars() int { return r.stars }

// Feedback returns the free-text feedback.
func (r Rating) Feedback() string { return r.feedback }

// RatedAt returns when the rating was submitted.
func (r Rating) RatedAt() time.Time { return r.ratedAt }
