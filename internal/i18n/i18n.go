// Package i18n holds the Arabic-first message catalog and language negotiation.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Lang is a supported response language.
type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

// Default is used whenever negotiation fails.
const Default = Arabic

var (
	supported = []language.Tag{language.Arabic, language.English}
	matcher   = language.NewMatcher(supported)
	printers  = map[Lang]*message.Printer{
		Arabic:  message.NewPrinter(language.Arabic),
		English: message.NewPrinter(language.English),
	}
)

// Tag returns the BCP 47 tag for l.
func (l Lang) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Arabic
}

// Parse normalizes a language code such as "ar-SA" or "en". Unknown values fall back to Arabic.
func Parse(s string) Lang {
	tag, err := language.Parse(s)
	if err != nil {
		return Default
	}
	return match(tag)
}

// FromAcceptLanguage picks the best supported language from an Accept-Language header.
func FromAcceptLanguage(header string) Lang {
	if header == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	return match(tags...)
}

func match(tags ...language.Tag) Lang {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	if supported[idx] == language.English {
		return English
	}
	return Arabic
}

// T renders key in lang, formatting args with the language's printer.
// Missing translations fall back to Arabic and then to the key itself.
func T(lang Lang, key Key, args ...any) string {
	format, ok := catalog[key][lang]
	if !ok {
		format, ok = catalog[key][Default]
	}
	if !ok {
		return string(key)
	}
	p, ok := printers[lang]
	if !ok {
		p = printers[Default]
	}
	if len(args) == 0 {
		return format
	}
	return p.Sprintf(format, args...)
}

// Printer exposes the x/text printer for lang.
func Printer(lang Lang) *message.Printer {
	if p, ok := printers[lang]; ok {
		return p
	}
	return printers[Default]
}

// Resource returns the localized display name of a resource such as "post" or "user".
func Resource(lang Lang, name string) string {
	if names, ok := resources[name]; ok {
		if s, ok := names[lang]; ok {
			return s
		}
	}
	return name
}

// LocalsKey is the fiber.Ctx locals key under which the negotiated Lang is stored.
const LocalsKey = "lang"
