package transform

import "strings"

// NormalizeISO3 canonicalizes an ISO 3166-1 alpha-3 country code. Codes that
// are not three letters (OWID aggregates like "OWID_WRL", blanks) return "".
func NormalizeISO3(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return ""
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return code
}

var continentMembers = map[string][]string{
	"Africa": {
		"AGO", "BDI", "BEN", "BFA", "BWA", "CAF", "CIV", "CMR", "COD", "COG",
		"COM", "CPV", "DJI", "DZA", "EGY", "ERI", "ESH", "ETH", "GAB", "GHA",
		"GIN", "GMB", "GNB", "GNQ", "KEN", "LBR", "LBY", "LSO", "MAR", "MDG",
		"MLI", "MOZ", "MRT", "MUS", "MWI", "MYT", "NAM", "NER", "NGA", "REU",
		"RWA", "SDN", "SEN", "SLE", "SOM", "SSD", "STP", "SWZ", "SYC", "TCD",
		"TGO", "TUN", "TZA", "UGA", "ZAF", "ZMB", "ZWE",
	},
	"Asia": {
		"AFG", "ARE", "ARM", "AZE", "BGD", "BHR", "BRN", "BTN", "CHN", "GEO",
		"HKG", "IDN", "IND", "IRN", "IRQ", "ISR", "JOR", "JPN", "KAZ", "KGZ",
		"KHM", "KOR", "KWT", "LAO", "LBN", "LKA", "MAC", "MDV", "MMR", "MNG",
		"MYS", "NPL", "OMN", "PAK", "PHL", "PRK", "PSE", "QAT", "SAU", "SGP",
		"SYR", "THA", "TJK", "TKM", "TLS", "TWN", "UZB", "VNM", "YEM",
	},
	"Europe": {
		"ALB", "AND", "AUT", "BEL", "BGR", "BIH", "BLR", "CHE", "CYP", "CZE",
		"DEU", "DNK", "ESP", "EST", "FIN", "FRA", "FRO", "GBR", "GIB", "GRC",
		"HRV", "HUN", "IMN", "IRL", "ISL", "ITA", "KOS", "LIE", "LTU", "LUX",
		"LVA", "MCO", "MDA", "MKD", "MLT", "MNE", "NLD", "NOR", "POL", "PRT",
		"ROU", "RUS", "SMR", "SRB", "SVK", "SVN", "SWE", "TUR", "UKR", "VAT",
	},
	"North America": {
		"ABW", "AIA", "ATG", "BHS", "BLZ", "BMU", "BRB", "CAN", "CRI", "CUB",
		"CUW", "CYM", "DMA", "DOM", "GLP", "GRD", "GRL", "GTM", "HND", "HTI",
		"JAM", "KNA", "LCA", "MEX", "MSR", "MTQ", "NIC", "PAN", "PRI", "SLV",
		"SXM", "TCA", "TTO", "USA", "VCT", "VGB", "VIR",
	},
	"South America": {
		"ARG", "BOL", "BRA", "CHL", "COL", "ECU", "FLK", "GUF", "GUY", "PER",
		"PRY", "SUR", "URY", "VEN",
	},
	"Oceania": {
		"ASM", "AUS", "COK", "FJI", "FSM", "GUM", "KIR", "MHL", "MNP", "NCL",
		"NIU", "NRU", "NZL", "PLW", "PNG", "PYF", "SLB", "TON", "TUV", "VUT",
		"WLF", "WSM",
	},
}

var continentByISO3 = func() map[string]string {
	m := make(map[string]string, 256)
	for continent, codes := range continentMembers {
		for _, code := range codes {
			m[code] = continent
		}
	}
	return m
}()

// ContinentOf maps an ISO3 country code to its continent. ok is false for
// unknown codes and non-country aggregates.
func ContinentOf(iso3 string) (string, bool) {
	c, ok := continentByISO3[NormalizeISO3(iso3)]
	return c, ok
}
