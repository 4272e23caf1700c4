package records

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// StatusApproved is the only status a catalog submission is written with;
// there is no review step.
const StatusApproved = "approved"

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// CatalogSubmission is one contributor submission in submissions.json.
type CatalogSubmission struct {
	ID              string  `json:"id"`
	ContributorName string  `json:"contributorName"`
	CharacterName   string  `json:"characterName"`
	Series          string  `json:"series"`
	Rarity          string  `json:"rarity"`
	EstimatedValue  Number  `json:"estimatedValue"`
	Notes           string  `json:"notes"`
	ImagePath       *string `json:"imagePath"`
	SubmittedAt     string  `json:"submittedAt"`
	Status          string  `json:"status"`
}

// NewCatalogSubmission builds a submission from form fields. An
// unparsable estimatedValue is kept as NaN, not rejected.
func NewCatalogSubmission(fields map[string]string, imagePath *string, now time.Time) CatalogSubmission {
	return CatalogSubmission{
		ID:              NewSubmissionID(now),
		ContributorName: fields["contributorName"],
		CharacterName:   fields["characterName"],
		Series:          fields["series"],
		Rarity:          fields["rarity"],
		EstimatedValue:  ParseNumber(fields["estimatedValue"]),
		Notes:           fields["notes"],
		ImagePath:       imagePath,
		SubmittedAt:     now.UTC().Format(TimestampLayout),
		Status:          StatusApproved,
	}
}

// NewSubmissionID returns "sub-<unix millis>-<9 base-36 chars>".
func NewSubmissionID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("sub-%d-%s", now.UnixMilli(), suffix)
}
