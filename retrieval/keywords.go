package retrieval

import "github.com/SaiNageswarS/report-core/schema"

// intentKeywords maps query terms to the section they signal interest in.
// A query containing "risk" boosts risk_factors chunks, and so on.
var intentKeywords = map[string]schema.SectionLabel{
	"risk":        schema.RiskFactors,
	"risks":       schema.RiskFactors,
	"challenge":   schema.RiskFactors,
	"challenges":  schema.RiskFactors,
	"uncertainty": schema.RiskFactors,
	"threat":      schema.RiskFactors,
	"threats":     schema.RiskFactors,
	"concern":     schema.RiskFactors,
	"concerns":    schema.RiskFactors,

	"revenue":     schema.FinancialStatements,
	"profit":      schema.FinancialStatements,
	"earnings":    schema.FinancialStatements,
	"financial":   schema.FinancialStatements,
	"performance": schema.FinancialStatements,
	"growth":      schema.FinancialStatements,

	"management": schema.ManagementDiscussion,
	"strategy":   schema.ManagementDiscussion,
	"outlook":    schema.ManagementDiscussion,
	"future":     schema.ManagementDiscussion,
	"plans":      schema.ManagementDiscussion,
	"commentary": schema.ManagementDiscussion,

	"environmental":  schema.ESG,
	"social":         schema.ESG,
	"sustainability": schema.ESG,
	"esg":            schema.ESG,
	"csr":            schema.ESG,

	"business":   schema.BusinessOverview,
	"operations": schema.BusinessOverview,
	"market":     schema.BusinessOverview,
	"industry":   schema.BusinessOverview,
	"overview":   schema.BusinessOverview,

	"governance": schema.CorporateGovernance,
	"board":      schema.CorporateGovernance,
	"directors":  schema.CorporateGovernance,
	"compliance": schema.CorporateGovernance,
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "did": {}, "do": {}, "does": {}, "for": {}, "from": {},
	"has": {}, "have": {}, "how": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "main": {}, "of": {}, "on": {}, "or": {}, "tell": {},
	"the": {}, "their": {}, "this": {}, "to": {}, "was": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"with": {},
}
