package core

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Notification texts are keys of the message catalog. English is the fallback.
const (
	MsgGoodbye     = "Goodbye"
	MsgGrantSaved  = "The grant for %s has been saved."
	MsgUserRemoved = "The selected user was removed. No other data was saved."
	MsgWelcome     = "Welcome %s!"
)

func init() {
	for key, msg := range map[string]string{
		MsgGoodbye:     "Auf Wiedersehen",
		MsgGrantSaved:  "Die Berechtigung für %s wurde gespeichert.",
		MsgUserRemoved: "Der ausgewählte Benutzer wurde entfernt. Es wurden keine weiteren Daten gespeichert.",
		MsgWelcome:     "Willkommen %s!",
	} {
		_ = message.SetString(language.German, key, msg)
	}
}

var langMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish, // default
	language.German,
})
