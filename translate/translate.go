// Package translate formats user-visible stopwatch messages in the
// language of the host locale.
package translate

import (
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

const fallback = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("stopwatch: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{fallback}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintf writes a translated en-US Printf() format to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	return printer.Fprintf(w, key, args...)
}
