// Package textfmt formats human-readable text for diagnostics: course
// name casing and the localized validation messages.
package textfmt

import (
	"strings"

	"github.com/alexanderramin/krsplan/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// ProperCase title-cases a course name: "ALGORITMA DAN STRUKTUR DATA"
// becomes "Algoritma Dan Struktur Data".
func ProperCase(s string) string {
	return cases.Title(language.Indonesian).String(strings.Join(strings.Fields(s), " "))
}

// Message keys.
const (
	keyDuplicateSection = "duplicate-section"
	keyNoSection        = "no-section"
	keyNothingChosen    = "nothing-chosen"
)

var translations = map[language.Tag]map[string]string{
	language.Indonesian: {
		keyDuplicateSection: "Kelas yang sama digunakan dalam prioritas yang berbeda pada mata kuliah %s",
		keyNoSection:        "Mata kuliah %s harus memiliki setidaknya satu kelas yang dipilih",
		keyNothingChosen:    "Tidak ada mata kuliah yang dipilih",
	},
	language.English: {
		keyDuplicateSection: "The same class is chosen at more than one priority for %s",
		keyNoSection:        "%s must have at least one class chosen",
		keyNothingChosen:    "No course has any class chosen",
	},
}

var messageCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Indonesian))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("textfmt: " + err.Error())
			}
		}
	}
	return b
}

// Messages renders validation messages in one locale.
type Messages struct {
	printer *message.Printer
}

// NewMessages returns the messages for locale. Unknown locales fall back
// to Indonesian.
func NewMessages(locale domain.Locale) *Messages {
	tag := language.Indonesian
	if locale == domain.LocaleEN {
		tag = language.English
	}
	return &Messages{printer: message.NewPrinter(tag, message.Catalog(messageCatalog))}
}

// DuplicateSection reports a section chosen at two priorities of one course.
func (m *Messages) DuplicateSection(nama string) string {
	return m.printer.Sprintf(keyDuplicateSection, ProperCase(nama))
}

// NoSection reports a chosen course with no section in its plan.
func (m *Messages) NoSection(nama string) string {
	return m.printer.Sprintf(keyNoSection, ProperCase(nama))
}

// NothingChosen reports a plan with no chosen sections at all.
func (m *Messages) NothingChosen() string {
	return m.printer.Sprintf(keyNothingChosen)
}
