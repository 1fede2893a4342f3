// Package i18n holds the UI language list and the string catalog.
package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
)

// Languages in selection order. Index 0 is the default.
var Languages = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Czech,
	language.Portuguese,
	language.Russian,
	language.Swedish,
}

// Service resolves UI strings for the current language. It is safe for
// concurrent use.
type Service struct {
	mu        sync.RWMutex
	current   int
	printers  []*message.Printer
	fallback  *message.Printer
	observers []func(index int, tag language.Tag)
}

func NewService() (*Service, error) {
	builder, err := buildCatalog(Languages)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	s := &Service{
		printers: make([]*message.Printer, len(Languages)),
		fallback: message.NewPrinter(language.English, message.Catalog(builder)),
	}
	for i, tag := range Languages {
		s.printers[i] = message.NewPrinter(tag, message.Catalog(builder))
	}
	return s, nil
}

func (s *Service) LanguageCount() int { return len(Languages) }

// Language returns the index of the current language.
func (s *Service) Language() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Tag returns the current language tag.
func (s *Service) Tag() language.Tag {
	return Languages[s.Language()]
}

// LanguageName returns the language's name in that language, for example "Deutsch".
func (s *Service) LanguageName(index int) string {
	if index < 0 || index >= len(Languages) {
		return ""
	}
	tag := Languages[index]
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// SetLanguage switches the current language and notifies observers.
func (s *Service) SetLanguage(index int) error {
	if index < 0 || index >= len(Languages) {
		return fmt.Errorf("language index %d out of range [0,%d)", index, len(Languages))
	}
	s.mu.Lock()
	s.current = index
	observers := append([]func(int, language.Tag){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(index, Languages[index])
	}
	return nil
}

// SetLanguageTag selects the closest supported language for tag.
func (s *Service) SetLanguageTag(tag string) error {
	parsed, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("parse language %q: %w", tag, err)
	}
	_, index, _ := language.NewMatcher(Languages).Match(parsed)
	return s.SetLanguage(index)
}

// OnChange registers fn to run after every SetLanguage.
func (s *Service) OnChange(fn func(index int, tag language.Tag)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Tr returns the string for key in the current language, falling back to
// English and finally to the key itself.
func (s *Service) Tr(key Key) string {
	s.mu.RLock()
	printer := s.printers[s.current]
	s.mu.RUnlock()

	if text := printer.Sprintf(string(key)); text != string(key) {
		return text
	}
	return s.fallback.Sprintf(string(key))
}
