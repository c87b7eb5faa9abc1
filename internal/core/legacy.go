package core

import (
	"regexp"
	"strings"
)

// Legacy ledger entries predate the structured Semen/CalfID fields and carry
// their facts only inside the free-text details string. The parsers below are
// the fallback data source for lineage resolution; new writes always populate
// the structured fields and never depend on this package half.

var (
	semenDetailsRe      = regexp.MustCompile(`(?i)(?:semen|sire)\s*[:\-]\s*([^.,;]+)`)
	inseminatedWithRe   = regexp.MustCompile(`(?i)inseminated with\s+([^.,;]+)`)
	tagDetailsRe        = regexp.MustCompile(`(?i)tag\s*:\s*([^.,;)]+)`)
	birthDetailsMarkers = []string{"born", "birth", "calving"}
)

// semenFromDetails extracts a "Semen: X" or "Sire: X" value from legacy
// details text.
func semenFromDetails(details string) (string, bool) {
	if m := semenDetailsRe.FindStringSubmatch(details); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}

// semenFromInseminationDetails extracts the semen name from an "Inseminated
// with X" details string.
func semenFromInseminationDetails(details string) (string, bool) {
	if m := inseminatedWithRe.FindStringSubmatch(details); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}

// tagFromDetails extracts a "Tag: X" reference from legacy details text.
func tagFromDetails(details string) (string, bool) {
	if m := tagDetailsRe.FindStringSubmatch(details); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}

// mentionsBirth reports whether legacy details text describes a birth event.
func mentionsBirth(details string) bool {
	lower := strings.ToLower(details)
	for _, marker := range birthDetailsMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
