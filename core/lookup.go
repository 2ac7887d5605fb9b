package core

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// LookupLimit is the maximum number of suggestions returned by LookupUsers.
const LookupLimit = 10

var strictPolicy = bluemonday.StrictPolicy()

// Sanitize removes all markup from s. The result is HTML-escaped text.
func Sanitize(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// A Suggestion is an autocomplete entry for a user.
type Suggestion struct {
	Label string `json:"label"` // sanitized user name
	Value string `json:"value"` // "name [id]"
}

func NewSuggestion(u DBUser) Suggestion {
	return Suggestion{
		Label: Sanitize(u.Name()),
		Value: fmt.Sprintf("%s [%d]", u.Name(), u.ID()),
	}
}

var suggestionValue = regexp.MustCompile(`^(.*) \[(\d+)\]$`)

var ErrNoUserID = errors.New("no user id given")

// ParseSuggestion extracts name and id from a Suggestion value.
func ParseSuggestion(value string) (string, int, error) {
	m := suggestionValue.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return "", 0, ErrNoUserID
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, err
	}
	return m[1], id, nil
}

// LookupUsers returns at most LookupLimit users whose name contains the query, ordered by name.
//
// The query is sanitized before it is used. An empty query returns an empty result without hitting the database.
func (c *CoreDB) LookupUsers(query string) ([]Suggestion, error) {

	var results = []Suggestion{}

	if query == "" {
		return results, nil
	}

	// the sanitized query is escaped HTML, but names are stored unescaped
	query = html.UnescapeString(Sanitize(query))
	if query == "" {
		return results, nil
	}

	users, err := c.UserDB.SearchUsers(query, LookupLimit)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		results = append(results, NewSuggestion(u))
	}

	return results, nil
}
