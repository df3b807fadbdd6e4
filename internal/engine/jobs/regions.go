package jobs

import (
	"strings"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

// Region is a coarse geographic partition. Exactly two are supported.
type Region string

const (
	RegionCanada Region = "canada"
	RegionUS     Region = "us"

	// DefaultRegion is used when a search does not name one.
	DefaultRegion = RegionCanada
)

// ParseRegion accepts common spellings; unknown input returns "" (no region).
func ParseRegion(s string) Region {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "canada", "ca", "can":
		return RegionCanada
	case "us", "usa", "united states", "united-states":
		return RegionUS
	}
	return ""
}

func (r Region) known() bool {
	return r == RegionCanada || r == RegionUS
}

func (r Region) orDefault() Region {
	if r.known() {
		return r
	}
	return DefaultRegion
}

// regionTokens are accent-folded substrings of locations that belong to a region.
// Matching is by substring against the folded location, so short codes carry
// their surrounding punctuation (", on") to avoid matching inside words.
var regionTokens = map[Region][]string{
	RegionCanada: {
		"canada",
		"ontario", ", on", "toronto", "ottawa", "kingston", "petawawa", "borden", "trenton",
		"quebec", ", qc", "montreal", "valcartier", "gatineau",
		"nova scotia", ", ns", "halifax",
		"new brunswick", ", nb", "gagetown", "fredericton", "moncton",
		"british columbia", ", bc", "vancouver", "victoria", "esquimalt", "comox",
		"alberta", ", ab", "edmonton", "calgary", "wainwright", "cold lake",
		"manitoba", ", mb", "winnipeg", "shilo",
		"saskatchewan", ", sk", "regina", "saskatoon", "moose jaw",
		"newfoundland", ", nl", "st. john's", "goose bay",
		"prince edward island", "charlottetown",
		"yukon", "whitehorse", "northwest territories", "yellowknife", "nunavut", "iqaluit",
	},
	RegionUS: {
		"united states", "usa", "u.s.",
		"virginia", ", va", "arlington", "norfolk",
		"maryland", ", md", "fort meade",
		"washington, dc", "district of columbia", ", dc",
		"texas", ", tx", "san antonio", "fort hood", "el paso",
		"california", "san diego",
		"north carolina", ", nc", "fort bragg", "fort liberty",
		"georgia", ", ga", "fort moore", "colorado", ", co", "colorado springs",
		"florida", ", fl", "tampa", "jacksonville",
		"washington", ", wa", "tacoma", "new york", ", ny",
		"illinois", "chicago", "kentucky", "fort campbell",
	},
}

// globalTokens mark listings open to every region; only remote-native sources honour them.
var globalTokens = []string{"worldwide", "anywhere", "global", "north america"}

// matchesRegion reports whether location contains one of the region's tokens.
func matchesRegion(location string, region Region) bool {
	return containsAnyFolded(location, regionTokens[region])
}

func containsAnyFolded(s string, tokens []string) bool {
	folded := engine.FoldText(s)
	for _, t := range tokens {
		if strings.Contains(folded, t) {
			return true
		}
	}
	return false
}
