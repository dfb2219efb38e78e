// Package translate formats user visible messages for the current locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Printer returns the message printer for the user's preferred locales,
// falling back to en-US.
func Printer() *message.Printer {
	printerOnce.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("chip8: locale: %v", err)
		}

		if len(locales) == 0 {
			locales = []string{"en-US"}
		}

		printer = message.NewPrinter(message.MatchLanguage(locales...))
	})

	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
