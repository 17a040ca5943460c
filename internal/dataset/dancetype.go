package dataset

import "strings"

// Dance types assigned from a category
const (
	DanceHipHop       = "Hip Hop"
	DanceJazz         = "Jazz"
	DancePom          = "Pom"
	DanceContemporary = "Contemporary/Lyrical"
	DanceKick         = "Kick"
	DanceJunior       = "Junior Dance"
	DanceOther        = "Other"
	DanceUnknown      = "Unknown"
)

// ClassifyDanceType maps a category to its dance type. Keywords are checked in
// priority order, so "Open Coed Hip Hop Jazz" is Hip Hop. Only the empty
// category is Unknown.
func ClassifyDanceType(category string) string {
	if category == "" {
		return DanceUnknown
	}

	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "hip hop"):
		return DanceHipHop
	case strings.Contains(c, "jazz"):
		return DanceJazz
	case strings.Contains(c, "pom"):
		return DancePom
	case strings.Contains(c, "contemporary"), strings.Contains(c, "lyrical"):
		return DanceContemporary
	case strings.Contains(c, "kick"):
		return DanceKick
	case strings.Contains(c, "junior") && strings.Contains(c, "dance"):
		return DanceJunior
	default:
		return DanceOther
	}
}
