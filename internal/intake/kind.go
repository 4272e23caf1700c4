package intake

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/ghintake/internal/records"
)

// Kind names accepted in configuration.
const (
	KindPrices  = "prices"
	KindCatalog = "catalog"
)

// Built is a record ready to append, with the commit message for the list
// write and the payload returned to the submitter.
type Built struct {
	Record   any
	Message  string
	Response map[string]any
}

// Kind describes one form schema and the files it maintains.
type Kind struct {
	Name     string
	ListPath string
	ImageDir string
	Required []string

	// SlugField names the form field image paths are derived from;
	// SlugFallback is used when it slugifies to nothing.
	SlugField    string
	SlugFallback string

	// MissingListOK treats an absent record list as empty instead of
	// failing the submission.
	MissingListOK bool

	// Columns are shown by the records listing, in order.
	Columns []string

	ImageMessage func(f Form) string
	Build        func(f Form, imagePath *string, now time.Time) Built
}

// Prices is the price-entry schema. A missing list file is an error.
func Prices(listPath, imageDir string) Kind {
	return Kind{
		Name:         KindPrices,
		ListPath:     listPath,
		ImageDir:     imageDir,
		Required:     []string{"set_name", "store", "price", "date_seen"},
		SlugField:    "set_name",
		SlugFallback: "set",
		Columns:      []string{"set_name", "store", "price", "date_seen", "notes", "image_path"},
		ImageMessage: func(f Form) string {
			return "Add image for set " + f.Fields["set_name"]
		},
		Build: func(f Form, imagePath *string, _ time.Time) Built {
			return Built{
				Record:   records.NewPriceEntry(f.Fields, imagePath),
				Message:  "Add price entry for " + f.Fields["set_name"],
				Response: map[string]any{"ok": true, "image_path": imagePath},
			}
		},
	}
}

// Catalog is the catalog-submission schema. A missing list file is
// treated as an empty list.
func Catalog(listPath, imageDir string) Kind {
	return Kind{
		Name:          KindCatalog,
		ListPath:      listPath,
		ImageDir:      imageDir,
		Required:      []string{"contributorName", "series", "rarity", "estimatedValue"},
		SlugField:     "characterName",
		SlugFallback:  "submission",
		MissingListOK: true,
		Columns:       []string{"id", "contributorName", "characterName", "series", "rarity", "estimatedValue", "submittedAt"},
		ImageMessage: func(f Form) string {
			subject := f.Fields["characterName"]
			if subject == "" {
				subject = f.Fields["series"]
			}
			return "Add image for submission " + subject
		},
		Build: func(f Form, imagePath *string, now time.Time) Built {
			sub := records.NewCatalogSubmission(f.Fields, imagePath, now)
			return Built{
				Record:  sub,
				Message: "Add catalog submission from " + f.Fields["contributorName"],
				Response: map[string]any{
					"success":      true,
					"submissionId": sub.ID,
					"imagePath":    imagePath,
				},
			}
		},
	}
}

// KindByName returns the named schema with its paths filled in.
func KindByName(name, listPath, imageDir string) (Kind, error) {
	switch name {
	case KindPrices:
		return Prices(listPath, imageDir), nil
	case KindCatalog:
		return Catalog(listPath, imageDir), nil
	default:
		return Kind{}, fmt.Errorf("unknown intake kind %q (want %q or %q)", name, KindPrices, KindCatalog)
	}
}
