package models

// Field identifies one metric in the closed reconciliation vocabulary.
// Values match the wire/JSON names used by source adapters and downstream
// scoring consumers.
type Field string

const (
	FieldCurrentPrice       Field = "current_price"
	FieldMarketCap          Field = "market_cap"
	FieldEnterpriseValue    Field = "enterprise_value"
	FieldPERatio            Field = "pe_ratio"
	FieldForwardPE          Field = "forward_pe"
	FieldPEGRatio           Field = "peg_ratio"
	FieldPriceToBook        Field = "price_to_book"
	FieldPriceToSales       Field = "price_to_sales"
	FieldEVToEBITDA         Field = "ev_to_ebitda"
	FieldEVToEBIT           Field = "ev_to_ebit"
	FieldFCFYield           Field = "fcf_yield"
	FieldFreeCashFlow       Field = "free_cash_flow"
	FieldEBIT               Field = "ebit"
	FieldEBITDA             Field = "ebitda"
	FieldROE                Field = "roe"
	FieldROIC               Field = "roic"
	FieldROA                Field = "roa"
	FieldGrossMargin        Field = "gross_margin"
	FieldOperatingMargin    Field = "operating_margin"
	FieldNetMargin          Field = "net_margin"
	FieldDebtToEquity       Field = "debt_to_equity"
	FieldCurrentRatio       Field = "current_ratio"
	FieldQuickRatio         Field = "quick_ratio"
	FieldNetDebtToEBITDA    Field = "net_debt_to_ebitda"
	FieldInterestCoverage   Field = "interest_coverage"
	FieldTotalDebt          Field = "total_debt"
	FieldCashAndEquivalents Field = "cash_and_equivalents"
	FieldInterestExpense    Field = "interest_expense"
	FieldEPSTTM             Field = "eps_ttm"
	FieldDividendYield      Field = "dividend_yield"
	FieldRevenueGrowth      Field = "revenue_growth"
	FieldRevenueGrowthQoQ   Field = "revenue_growth_qoq"
	FieldRevenueGrowth5Y    Field = "revenue_growth_5y"
	FieldEarningsGrowth     Field = "earnings_growth"
	FieldEarningsGrowthTY   Field = "earnings_growth_this_y"
	FieldEarningsGrowthNY   Field = "earnings_growth_next_y"
	FieldEarningsGrowthN5Y  Field = "earnings_growth_next_5y"
	FieldEarningsGrowthQoQ  Field = "earnings_growth_qoq"

	// ETF enrichment fields.
	FieldNAV             Field = "nav"
	FieldExpenseRatio    Field = "expense_ratio"
	FieldYTDReturn       Field = "ytd_return"
	FieldAUM             Field = "assets_under_management"
	FieldHoldingsCount   Field = "holdings_count"
	FieldPremiumDiscount Field = "premium_discount"
)

// Text metadata fields carried alongside numeric metrics.
const (
	FieldCompanyName Field = "company_name"
	FieldSector      Field = "sector"
	FieldIndustry    Field = "industry"
	FieldCurrency    Field = "currency"
	FieldCategory    Field = "category"
	FieldQuoteType   Field = "quote_type"
)

// NumericFields enumerates every numeric metric, in document order.
var NumericFields = []Field{
	FieldCurrentPrice,
	FieldMarketCap,
	FieldEnterpriseValue,
	FieldPERatio,
	FieldForwardPE,
	FieldPEGRatio,
	FieldPriceToBook,
	FieldPriceToSales,
	FieldEVToEBITDA,
	FieldEVToEBIT,
	FieldFCFYield,
	FieldFreeCashFlow,
	FieldEBIT,
	FieldEBITDA,
	FieldROE,
	FieldROIC,
	FieldROA,
	FieldGrossMargin,
	FieldOperatingMargin,
	FieldNetMargin,
	FieldDebtToEquity,
	FieldCurrentRatio,
	FieldQuickRatio,
	FieldNetDebtToEBITDA,
	FieldInterestCoverage,
	FieldTotalDebt,
	FieldCashAndEquivalents,
	FieldInterestExpense,
	FieldEPSTTM,
	FieldDividendYield,
	FieldRevenueGrowth,
	FieldRevenueGrowthQoQ,
	FieldRevenueGrowth5Y,
	FieldEarningsGrowth,
	FieldEarningsGrowthTY,
	FieldEarningsGrowthNY,
	FieldEarningsGrowthN5Y,
	FieldEarningsGrowthQoQ,
	FieldNAV,
	FieldExpenseRatio,
	FieldYTDReturn,
	FieldAUM,
	FieldHoldingsCount,
	FieldPremiumDiscount,
}

// FundamentalFields are the equity-only metrics nulled for non-EQUITY assets.
var FundamentalFields = []Field{
	FieldPERatio,
	FieldPEGRatio,
	FieldPriceToBook,
	FieldROE,
	FieldROIC,
	FieldROA,
	FieldOperatingMargin,
	FieldNetMargin,
	FieldGrossMargin,
	FieldDebtToEquity,
	FieldCurrentRatio,
	FieldQuickRatio,
	FieldRevenueGrowth,
	FieldRevenueGrowthQoQ,
	FieldRevenueGrowth5Y,
	FieldEarningsGrowth,
	FieldEarningsGrowthTY,
	FieldEarningsGrowthNY,
	FieldEarningsGrowthN5Y,
	FieldEarningsGrowthQoQ,
}

var numericSet = func() map[Field]struct{} {
	s := make(map[Field]struct{}, len(NumericFields))
	for _, f := range NumericFields {
		s[f] = struct{}{}
	}
	return s
}()

// IsNumeric reports whether f belongs to the numeric vocabulary.
func (f Field) IsNumeric() bool {
	_, ok := numericSet[f]
	return ok
}

func (f Field) String() string { return string(f) }
