package quote

import "strings"

// Domain is the coarse sector classification driving model selection:
// Financials get the DDM/ROE variant of the DCF and their own LBO scenario
// set, everything else runs the standard FCFF model.
type Domain string

const (
	DomainTechnology     Domain = "Technology"
	DomainConsumerRetail Domain = "Consumer/Retail"
	DomainFinancials     Domain = "Financials"
)

// Scenario identifiers for the LBO engine. The scenario selects branch
// behavior (tranche split, recap mechanics) and which assumption fields are
// live.
const (
	ScenarioBaseCase         = "baseCase"
	ScenarioMezzanineDebt    = "mezzanineDebt"
	ScenarioIPOExit          = "ipoExit"
	ScenarioGrowthEquity     = "growthEquity"
	ScenarioDividendRecap    = "dividendRecap"
	ScenarioStrategicSale    = "strategicSale"
	ScenarioClubDeal         = "clubDeal"
	ScenarioLeveragedRecap   = "leveragedRecap"
	ScenarioSponsorExit      = "sponsorToSponsorExit"
	ScenarioManagementBuyout = "managementBuyout"
)

// Scenario pairs an identifier with its display name.
type Scenario struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var domainScenarios = map[Domain][]Scenario{
	DomainTechnology: {
		{ID: ScenarioBaseCase, Name: "Base Case"},
		{ID: ScenarioMezzanineDebt, Name: "Mezzanine Debt"},
		{ID: ScenarioIPOExit, Name: "IPO Exit"},
		{ID: ScenarioGrowthEquity, Name: "Growth Equity"},
	},
	DomainConsumerRetail: {
		{ID: ScenarioBaseCase, Name: "Base Case"},
		{ID: ScenarioDividendRecap, Name: "Dividend Recap"},
		{ID: ScenarioStrategicSale, Name: "Strategic Sale"},
		{ID: ScenarioClubDeal, Name: "Club Deal"},
	},
	DomainFinancials: {
		{ID: ScenarioBaseCase, Name: "Base Case"},
		{ID: ScenarioLeveragedRecap, Name: "Leveraged Recap"},
		{ID: ScenarioSponsorExit, Name: "Sponsor-to-Sponsor Exit"},
		{ID: ScenarioManagementBuyout, Name: "Management Buyout"},
	},
}

// ScenariosFor returns the LBO scenario set for a sector.
func ScenariosFor(d Domain) []Scenario {
	if s, ok := domainScenarios[d]; ok {
		return s
	}
	return domainScenarios[DomainTechnology]
}

// IsRecapScenario reports whether the scenario pays a mid-hold dividend
// funded by new senior debt.
func IsRecapScenario(id string) bool {
	return id == ScenarioDividendRecap || id == ScenarioLeveragedRecap
}

// TaxInfo is a statutory corporate tax rate with its jurisdiction, used when
// the upstream API does not supply an effective rate.
type TaxInfo struct {
	Country string
	Rate    float64
}

var exchangeTaxTable = map[string]TaxInfo{
	"NASDAQ":   {Country: "the US", Rate: 0.21},
	"NYSE":     {Country: "the US", Rate: 0.21},
	"BATS":     {Country: "the US", Rate: 0.21},
	"OTCMKTS":  {Country: "the US", Rate: 0.21},
	"TSX":      {Country: "Canada", Rate: 0.265},
	"TSXV":     {Country: "Canada", Rate: 0.265},
	"LSE":      {Country: "the UK", Rate: 0.25},
	"EURONEXT": {Country: "France", Rate: 0.25},
	"XETRA":    {Country: "Germany", Rate: 0.30},
	"JPX":      {Country: "Japan", Rate: 0.306},
	"ASX":      {Country: "Australia", Rate: 0.30},
}

var defaultTaxInfo = TaxInfo{Country: "an estimated region", Rate: 0.23}

// StatutoryTax looks up the assumed tax jurisdiction for an exchange,
// falling back to a blended default for unknown venues.
func StatutoryTax(exchange string) TaxInfo {
	if info, ok := exchangeTaxTable[strings.ToUpper(strings.TrimSpace(exchange))]; ok {
		return info
	}
	return defaultTaxInfo
}

var tickerDomainTable = map[string]Domain{
	// Technology
	"AAPL": DomainTechnology, "MSFT": DomainTechnology, "GOOGL": DomainTechnology, "GOOG": DomainTechnology,
	"NVDA": DomainTechnology, "META": DomainTechnology, "TSLA": DomainTechnology, "AVGO": DomainTechnology,
	"ORCL": DomainTechnology, "CRM": DomainTechnology, "ADBE": DomainTechnology, "NFLX": DomainTechnology,
	"AMD": DomainTechnology, "CSCO": DomainTechnology, "INTC": DomainTechnology, "QCOM": DomainTechnology,
	"UBER": DomainTechnology, "IBM": DomainTechnology,
	// Consumer/Retail
	"AMZN": DomainConsumerRetail, "WMT": DomainConsumerRetail, "LLY": DomainConsumerRetail,
	"V": DomainConsumerRetail, "UNH": DomainConsumerRetail, "XOM": DomainConsumerRetail,
	"MA": DomainConsumerRetail, "JNJ": DomainConsumerRetail, "HD": DomainConsumerRetail,
	"PG": DomainConsumerRetail, "COST": DomainConsumerRetail, "CVX": DomainConsumerRetail,
	"MRK": DomainConsumerRetail, "ABBV": DomainConsumerRetail, "PEP": DomainConsumerRetail,
	"KO": DomainConsumerRetail, "DIS": DomainConsumerRetail, "MCD": DomainConsumerRetail,
	"PFE": DomainConsumerRetail, "TMO": DomainConsumerRetail, "NKE": DomainConsumerRetail,
	"CMCSA": DomainConsumerRetail, "VZ": DomainConsumerRetail, "T": DomainConsumerRetail,
	"SBUX": DomainConsumerRetail, "F": DomainConsumerRetail, "GM": DomainConsumerRetail,
	"RIVN": DomainConsumerRetail, "NIO": DomainConsumerRetail, "LCID": DomainConsumerRetail,
	// Financials
	"JPM": DomainFinancials, "BRK-B": DomainFinancials, "BAC": DomainFinancials,
	"WFC": DomainFinancials, "GS": DomainFinancials, "MS": DomainFinancials, "C": DomainFinancials,
}

// DomainFor classifies a ticker, defaulting to Technology for unknown names
// so the standard FCFF model always has a resolved sector.
func DomainFor(ticker string) Domain {
	if d, ok := tickerDomainTable[strings.ToUpper(strings.TrimSpace(ticker))]; ok {
		return d
	}
	return DomainTechnology
}

var peerMap = map[string][]string{
	"TSLA":  {"GM", "F", "RIVN", "NIO", "LCID"},
	"AAPL":  {"MSFT", "GOOGL", "AMZN", "META"},
	"MSFT":  {"AAPL", "GOOGL", "AMZN", "CRM"},
	"GOOGL": {"MSFT", "AAPL", "META", "AMZN"},
	"GOOG":  {"MSFT", "AAPL", "META", "AMZN"},
	"AMZN":  {"MSFT", "GOOGL", "WMT"},
	"NVDA":  {"AMD", "INTC", "QCOM"},
	"F":     {"GM", "TSLA", "RIVN"},
	"GM":    {"F", "TSLA", "RIVN"},
	"JPM":   {"BAC", "WFC", "C", "GS", "MS"},
	"BAC":   {"JPM", "WFC", "C"},
	"WFC":   {"JPM", "BAC", "C"},
	"C":     {"JPM", "BAC", "WFC"},
	"GS":    {"MS", "JPM"},
	"MS":    {"GS", "JPM"},
}

// PeersFor returns the curated comparable set for a ticker. An empty slice
// means no peer comparison is available for that name.
func PeersFor(ticker string) []string {
	return peerMap[strings.ToUpper(strings.TrimSpace(ticker))]
}
