/*
Package i18n provides the translation lookup used for period labels.

PURPOSE:
  Labels are keyed by their English text ("Today", "Last 7 days", "December").
  A Catalog holds one message table per locale; lookups fall back to the
  fallback locale, then to the key itself, so English needs no table.

DIRECTION:
  Each locale carries a text direction. The period engine prepends label
  fragments for left-to-right locales and appends them for right-to-left
  ones.

NEGOTIATION:
  Match picks the best registered locale for an Accept-Language header or a
  bare language code, using golang.org/x/text/language.

USAGE:
  catalog := i18n.NewCatalog()
  loc := catalog.Localizer(catalog.Match("fr-CA,fr;q=0.9"))
  loc.T("Today") // "Aujourd'hui"
*/
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Direction is the text direction of a locale.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Messages maps an English message to its translation.
type Messages map[string]string

// Translator resolves message templates to localized strings.
type Translator interface {
	T(msg string, args ...any) string
}

// Localizer is a Translator bound to a text direction.
type Localizer interface {
	Translator
	Direction() Direction
}

// Locale is one registered language.
type Locale struct {
	Tag      language.Tag
	Dir      Direction
	Messages Messages
	fallback Messages
}

// T translates msg, formatting args into the result when given.
func (l *Locale) T(msg string, args ...any) string {
	out, ok := l.Messages[msg]
	if !ok {
		out, ok = l.fallback[msg]
	}
	if !ok {
		out = msg
	}
	if len(args) > 0 {
		return fmt.Sprintf(out, args...)
	}
	return out
}

func (l *Locale) Direction() Direction {
	if l.Dir == "" {
		return LTR
	}
	return l.Dir
}

// Catalog is an immutable set of locales.
type Catalog struct {
	locales  map[language.Tag]*Locale
	tags     []language.Tag
	matcher  language.Matcher
	fallback language.Tag
}

// NewCatalog returns a catalog with the built-in locales plus any extra ones.
// English is the fallback. An extra locale replaces a built-in one with the
// same tag.
func NewCatalog(extra ...Locale) *Catalog {
	c := &Catalog{
		locales:  make(map[language.Tag]*Locale),
		fallback: language.English,
	}

	all := append(builtinLocales(), extra...)
	for i := range all {
		loc := all[i]
		if _, exists := c.locales[loc.Tag]; !exists {
			c.tags = append(c.tags, loc.Tag)
		}
		c.locales[loc.Tag] = &loc
	}

	fallback := c.locales[c.fallback].Messages
	for _, loc := range c.locales {
		if loc.Tag != c.fallback {
			loc.fallback = fallback
		}
	}

	c.matcher = language.NewMatcher(c.tags)
	return c
}

// Tags lists the registered locales, fallback first.
func (c *Catalog) Tags() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

// Match returns the registered locale closest to an Accept-Language value.
func (c *Catalog) Match(accept string) language.Tag {
	if accept == "" {
		return c.fallback
	}
	desired, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(desired) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(desired...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

// Localizer returns the locale for tag, or the fallback locale.
func (c *Catalog) Localizer(tag language.Tag) Localizer {
	if loc, ok := c.locales[tag]; ok {
		return loc
	}
	return c.locales[c.fallback]
}

// Default returns the fallback locale.
func (c *Catalog) Default() Localizer {
	return c.locales[c.fallback]
}
