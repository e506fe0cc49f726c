// ABOUTME: Country calling-code lookup for phone number editing
// ABOUTME: Splits stored numbers into (country, local) and joins them back

package phone

import "strings"

// Country identifies a supported phone country by ISO 3166-1 alpha-2 code
type Country string

const (
	NG Country = "NG"
	US Country = "US"
	GB Country = "GB"
	GH Country = "GH"
)

// DefaultCountry is assumed when a stored number has no recognizable prefix
const DefaultCountry = NG

// Supported reports whether the country is one the platform offers
func (c Country) Supported() bool {
	for _, info := range Countries {
		if info.Code == c {
			return true
		}
	}
	return false
}

// Info describes a supported country
type Info struct {
	Code        Country
	CallingCode string
	Flag        string
	Name        string
}

// Countries lists the supported phone countries in display order
var Countries = []Info{
	{Code: NG, CallingCode: "+234", Flag: "🇳🇬", Name: "Nigeria"},
	{Code: US, CallingCode: "+1", Flag: "🇺🇸", Name: "United States"},
	{Code: GB, CallingCode: "+44", Flag: "🇬🇧", Name: "United Kingdom"},
	{Code: GH, CallingCode: "+233", Flag: "🇬🇭", Name: "Ghana"},
}

// Lookup returns the Info for a country code.
// Unknown codes fall back to the default country.
func Lookup(code Country) Info {
	for _, info := range Countries {
		if info.Code == code {
			return info
		}
	}
	return Lookup(DefaultCountry)
}

// Parse splits a stored phone string into a country and local number.
// Strings without a leading + are treated as local numbers in the default
// country. Otherwise the country whose calling code is the longest matching
// prefix wins, so "+1876..." cannot be swallowed by a shorter "+1"-style
// code if a longer one matches. Unrecognized prefixes fall back to the
// default country with the whole string kept as the local number.
func Parse(s string) (Country, string) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "+") {
		return DefaultCountry, s
	}

	best := Info{}
	for _, info := range Countries {
		if strings.HasPrefix(s, info.CallingCode) && len(info.CallingCode) > len(best.CallingCode) {
			best = info
		}
	}
	if best.Code == "" {
		return DefaultCountry, s
	}
	return best.Code, strings.TrimSpace(s[len(best.CallingCode):])
}

// Format joins a country and local number back into the stored form.
// An empty local number yields an empty string.
func Format(country Country, local string) string {
	local = strings.TrimSpace(local)
	if local == "" {
		return ""
	}
	return strings.TrimSpace(Lookup(country).CallingCode + " " + local)
}
