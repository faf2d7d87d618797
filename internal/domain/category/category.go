// Package category holds the coarse catalog taxonomy and the keyword
// heuristic that assigns items to it.
package category

import "strings"

// The storefront taxonomy. Other is the fallback bucket.
const (
	Bedroom    = "Bedroom"
	LivingRoom = "Living Room"
	Study      = "Study"
	Other      = "Other"
)

// Known returns the taxonomy in display order.
func Known() []string {
	return []string{Bedroom, LivingRoom, Study, Other}
}

var bedroomKeywords = []string{
	"nightstand",
	"bedside",
	"bed room",
	"bedroom",
	"dresser",
	"chest",
	"armoire",
}

var livingKeywords = []string{
	"sofa",
	"couch",
	"coffee table",
	"side table",
	"end table",
	"console",
	"console table",
	"tv stand",
	"media console",
	"pedestal table",
	"accent table",
	"bench",
	"stool",
	"chair",
	"recliner",
}

var studyKeywords = []string{
	"desk",
	"writing desk",
	"office",
	"study",
	"bookcase",
	"bookshelf",
}

// Infer assigns a coarse category from an item's name and description by
// substring keyword matching against the lowercased combined text. Bucket
// precedence is fixed: Bedroom, then Living Room, then Study, else Other.
func Infer(name, description string) string {
	text := strings.ToLower(name + " " + description)

	if containsAny(text, bedroomKeywords) {
		return Bedroom
	}
	if containsAny(text, livingKeywords) {
		return LivingRoom
	}
	if containsAny(text, studyKeywords) {
		return Study
	}
	return Other
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
