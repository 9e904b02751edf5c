package intl

import (
	"golang.org/x/text/language"
)

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var (
	allSupportedLanguages = []SupportedLanguage{
		{Code: "en", VerboseName: "English", Tag: language.English},
		{Code: "de", VerboseName: "Deutsch", Tag: language.German},
		{Code: "es", VerboseName: "Español", Tag: language.Spanish},
		{Code: "fa", VerboseName: "فارسی", Tag: language.Persian},
		{Code: "fr", VerboseName: "Français", Tag: language.French},
		{Code: "ja", VerboseName: "日本語", Tag: language.Japanese},
		{Code: "nl", VerboseName: "Nederlands", Tag: language.Dutch},
		{Code: "pl", VerboseName: "Polski", Tag: language.Polish},
		{Code: "pt-BR", VerboseName: "Português do Brasil", Tag: language.BrazilianPortuguese},
		{Code: "ru", VerboseName: "Русский", Tag: language.Russian},
		{Code: "zh", VerboseName: "中文", Tag: language.Chinese},
	}

	SupportedLanguages = allSupportedLanguages
)

// GetSupportedLanguages returns the languages whose codes are in whitelist,
// or every language when whitelist is empty.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}

	allowed := make(map[string]bool, len(whitelist))
	for _, code := range whitelist {
		allowed[code] = true
	}

	filtered := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if allowed[lang.Code] {
			filtered = append(filtered, lang)
		}
	}
	return filtered
}

// IsSupported reports whether code names one of the given languages.
func IsSupported(languages []SupportedLanguage, code string) bool {
	for _, lang := range languages {
		if lang.Code == code {
			return true
		}
	}
	return false
}
