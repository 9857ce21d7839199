package travel

import (
	"fmt"
	"sort"

	"github.com/zodiac-travel/server/internal/agent/model"
	"github.com/zodiac-travel/server/internal/agent/zodiac"
)

// users is the fixed user table, keyed by user id.
var users = map[string]model.UserProfile{
	"user_001": {UserID: "user_001", Name: "Alice Sky", DateOfBirth: "1995-10-15"},
	"user_002": {UserID: "user_002", Name: "Bob Voyager", DateOfBirth: "1988-08-10"},
	"user_003": {UserID: "user_003", Name: "Carol Star", DateOfBirth: "1990-03-25"},
}

// LookupUser finds a profile by exact user id match.
func LookupUser(userID string) (model.UserProfile, bool) {
	u, ok := users[userID]
	return u, ok
}

// UserIDs lists the known user ids in stable order, for not-found messages.
func UserIDs() []string {
	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DescribeUser builds the get_user_profile tool payload: name, resolved sign
// and trait line on a hit, or a not-found message listing known ids.
func DescribeUser(userID string) string {
	u, ok := LookupUser(userID)
	if !ok {
		return fmt.Sprintf("User %s not found. Available users: %v", userID, UserIDs())
	}
	sign := zodiac.Resolve(u.DateOfBirth)
	summary := fmt.Sprintf("Name: %s, Zodiac Sign: %s", u.Name, sign)
	if traits, ok := zodiac.Traits(string(sign)); ok {
		summary += fmt.Sprintf(". %s traits: %s", sign, traits)
	}
	return summary
}

// ContextPrefix builds the advisory context annotation prepended to a user
// message when the caller supplied a known user id. Unknown or empty ids
// yield an empty prefix.
func ContextPrefix(userID string) string {
	u, ok := LookupUser(userID)
	if !ok {
		return ""
	}
	sign := zodiac.Resolve(u.DateOfBirth)
	traits, _ := zodiac.Traits(string(sign))
	return fmt.Sprintf("[CONTEXT: User is %s, a %s. Traits: %s]\n\n", u.Name, sign, traits)
}
