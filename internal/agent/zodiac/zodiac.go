// Package zodiac maps dates of birth to tropical zodiac signs and holds the
// per-sign trait descriptions served by the get_zodiac_traits tool.
package zodiac

import (
	"fmt"
	"strconv"
	"strings"
)

// Sign is one of the twelve zodiac labels, or Unknown when a date of birth
// cannot be parsed.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
	Unknown     Sign = "Unknown"
)

// boundary is the first day of a sign's range; each sign runs from its own
// boundary up to the day before the next one. Pisces covers the remainder.
type boundary struct {
	month, day int
	sign       Sign
}

var boundaries = []boundary{
	{3, 21, Aries}, {4, 20, Taurus}, {5, 21, Gemini}, {6, 21, Cancer},
	{7, 23, Leo}, {8, 23, Virgo}, {9, 23, Libra}, {10, 23, Scorpio},
	{11, 22, Sagittarius}, {12, 22, Capricorn}, {1, 20, Aquarius},
}

// endDays is the inclusive last day of each sign's range, indexed in the same
// order as boundaries (Aries ends 4/19, ..., Aquarius ends 2/18).
var endDays = [][2]int{
	{4, 19}, {5, 20}, {6, 20}, {7, 22}, {8, 22}, {9, 22},
	{10, 22}, {11, 21}, {12, 21}, {1, 19}, {2, 18},
}

// Resolve maps a YYYY-MM-DD date of birth to a Sign. The year is ignored.
// Any malformed input yields Unknown; Resolve never fails.
func Resolve(dob string) Sign {
	parts := strings.Split(dob, "-")
	if len(parts) < 3 {
		return Unknown
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Unknown
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Unknown
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Unknown
	}

	for i, b := range boundaries {
		end := endDays[i]
		if (month == b.month && day >= b.day) || (month == end[0] && day <= end[1]) {
			return b.sign
		}
	}
	return Pisces
}

var traits = map[Sign]string{
	Aries:       "Adventurous, Bold, Energetic - loves action-packed destinations",
	Taurus:      "Luxurious, Sensual, Grounded - enjoys comfort and fine dining",
	Gemini:      "Curious, Social, Versatile - loves cities with nightlife",
	Cancer:      "Nurturing, Emotional, Home-loving - prefers relaxing beach resorts",
	Leo:         "Dramatic, Confident, Creative - drawn to glamorous destinations",
	Virgo:       "Analytical, Practical, Health-conscious - enjoys wellness retreats",
	Libra:       "Artistic, Harmonious, Social - loves romantic and beautiful places",
	Scorpio:     "Intense, Mysterious, Passionate - attracted to exotic locations",
	Sagittarius: "Adventurous, Philosophical, Free-spirited - loves exploration",
	Capricorn:   "Ambitious, Disciplined, Traditional - appreciates historic sites",
	Aquarius:    "Innovative, Independent, Humanitarian - drawn to unique experiences",
	Pisces:      "Dreamy, Intuitive, Artistic - loves spiritual and water destinations",
}

// signOrder keeps ValidSigns output deterministic.
var signOrder = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// Traits returns the trait description for a sign. Matching is
// case-insensitive: the input is capitalized before lookup.
func Traits(sign string) (string, bool) {
	t, ok := traits[capitalize(sign)]
	return t, ok
}

// DescribeTraits formats the trait line for a sign, or an explanatory message
// listing valid signs when the sign is not recognised.
func DescribeTraits(sign string) string {
	if t, ok := Traits(sign); ok {
		return fmt.Sprintf("🔮 %s Traits: %s", sign, t)
	}
	return fmt.Sprintf("Unknown sign: %s. Valid signs: %v", sign, ValidSigns())
}

// ValidSigns lists the twelve sign labels in zodiacal order.
func ValidSigns() []string {
	out := make([]string, 0, len(signOrder))
	for _, s := range signOrder {
		out = append(out, string(s))
	}
	return out
}

func capitalize(s string) Sign {
	s = strings.TrimSpace(s)
	if s == "" {
		return Sign(s)
	}
	return Sign(strings.ToUpper(s[:1]) + strings.ToLower(s[1:]))
}
