package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"ReviewScanner/internal/domain"
)

// appIDExpr matches reverse-DNS style identifiers like com.example.app.
var appIDExpr = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)*$`)

var supportedCountries = map[string]bool{
	"tr": true, "us": true, "gb": true, "de": true, "fr": true, "es": true,
	"it": true, "ru": true, "jp": true, "kr": true, "cn": true, "in": true,
	"br": true, "mx": true, "ca": true, "au": true, "nl": true, "se": true,
	"no": true, "dk": true, "fi": true, "pl": true,
}

var supportedLanguages = map[string]bool{
	"tr": true, "en": true, "de": true, "fr": true, "es": true, "it": true,
	"ru": true, "ja": true, "ko": true, "zh": true, "hi": true, "pt": true,
	"nl": true, "sv": true, "no": true, "da": true, "fi": true, "pl": true,
	"ar": true,
}

var supportedSorts = map[string]bool{
	"newest": true, "oldest": true, "most_relevant": true, "rating": true,
}

const (
	minAppIDLen = 3
	maxAppIDLen = 100
	maxCount    = 10000
)

// AppID checks the reverse-DNS app identifier format.
func AppID(appID string) error {
	if appID == "" {
		return errors.New("app id is required")
	}
	if len(appID) < minAppIDLen {
		return errors.New("app id is too short")
	}
	if len(appID) > maxAppIDLen {
		return errors.New("app id is too long")
	}
	if !appIDExpr.MatchString(appID) {
		return fmt.Errorf("invalid app id %q, expected a form like com.example.app", appID)
	}
	return nil
}

// Country checks the country code against the fixed allow-list.
func Country(country string) error {
	if country == "" {
		return errors.New("country code is required")
	}
	if !supportedCountries[strings.ToLower(country)] {
		return fmt.Errorf("unsupported country code %q", country)
	}
	return nil
}

// Language checks the language code: it must be a well-formed BCP 47 base
// tag and a member of the fixed allow-list.
func Language(lang string) error {
	if lang == "" {
		return errors.New("language code is required")
	}
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("malformed language code %q: %w", lang, err)
	}
	if !supportedLanguages[strings.ToLower(lang)] {
		return fmt.Errorf("unsupported language code %q", lang)
	}
	return nil
}

// Count bounds the requested review count to [1, 10000].
func Count(count int) error {
	if count < 1 {
		return errors.New("count must be at least 1")
	}
	if count > maxCount {
		return fmt.Errorf("count cannot exceed %d", maxCount)
	}
	return nil
}

// Sort checks the sort option string.
func Sort(sort string) error {
	if sort == "" {
		return errors.New("sort option is required")
	}
	if !supportedSorts[strings.ToLower(sort)] {
		return fmt.Errorf("invalid sort option %q", sort)
	}
	return nil
}

// Request validates an analysis request. It reports every violation, not
// just the first one.
func Request(req domain.AnalysisRequest) error {
	var errs []error
	if err := AppID(req.AppID); err != nil {
		errs = append(errs, fmt.Errorf("app_id: %w", err))
	}
	if err := Country(req.Country); err != nil {
		errs = append(errs, fmt.Errorf("country: %w", err))
	}
	if err := Language(req.Language); err != nil {
		errs = append(errs, fmt.Errorf("language: %w", err))
	}
	if err := Count(req.Count); err != nil {
		errs = append(errs, fmt.Errorf("count: %w", err))
	}
	if err := Sort(req.Sort); err != nil {
		errs = append(errs, fmt.Errorf("sort: %w", err))
	}
	return errors.Join(errs...)
}
