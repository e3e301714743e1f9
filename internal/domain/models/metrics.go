package models

// Metrics is the consolidated metric record for one ticker. Every field is
// optional; a nil pointer means no source reported it. The vocabulary is
// closed: field-keyed access goes through Value/Set/Clear with a Field
// constant, so there is no open string-keyed map to drift out of sync.
type Metrics struct {
	CurrentPrice       *float64 `json:"current_price,omitempty"`
	MarketCap          *float64 `json:"market_cap,omitempty"`
	EnterpriseValue    *float64 `json:"enterprise_value,omitempty"`
	PERatio            *float64 `json:"pe_ratio,omitempty"`
	ForwardPE          *float64 `json:"forward_pe,omitempty"`
	PEGRatio           *float64 `json:"peg_ratio,omitempty"`
	PriceToBook        *float64 `json:"price_to_book,omitempty"`
	PriceToSales       *float64 `json:"price_to_sales,omitempty"`
	EVToEBITDA         *float64 `json:"ev_to_ebitda,omitempty"`
	EVToEBIT           *float64 `json:"ev_to_ebit,omitempty"`
	FCFYield           *float64 `json:"fcf_yield,omitempty"`
	FreeCashFlow       *float64 `json:"free_cash_flow,omitempty"`
	EBIT               *float64 `json:"ebit,omitempty"`
	EBITDA             *float64 `json:"ebitda,omitempty"`
	ROE                *float64 `json:"roe,omitempty"`
	ROIC               *float64 `json:"roic,omitempty"`
	ROA                *float64 `json:"roa,omitempty"`
	GrossMargin        *float64 `json:"gross_margin,omitempty"`
	OperatingMargin    *float64 `json:"operating_margin,omitempty"`
	NetMargin          *float64 `json:"net_margin,omitempty"`
	DebtToEquity       *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio       *float64 `json:"current_ratio,omitempty"`
	QuickRatio         *float64 `json:"quick_ratio,omitempty"`
	NetDebtToEBITDA    *float64 `json:"net_debt_to_ebitda,omitempty"`
	InterestCoverage   *float64 `json:"interest_coverage,omitempty"`
	TotalDebt          *float64 `json:"total_debt,omitempty"`
	CashAndEquivalents *float64 `json:"cash_and_equivalents,omitempty"`
	InterestExpense    *float64 `json:"interest_expense,omitempty"`
	EPSTTM             *float64 `json:"eps_ttm,omitempty"`
	DividendYield      *float64 `json:"dividend_yield,omitempty"`
	RevenueGrowth      *float64 `json:"revenue_growth,omitempty"`
	RevenueGrowthQoQ   *float64 `json:"revenue_growth_qoq,omitempty"`
	RevenueGrowth5Y    *float64 `json:"revenue_growth_5y,omitempty"`
	EarningsGrowth     *float64 `json:"earnings_growth,omitempty"`
	EarningsGrowthTY   *float64 `json:"earnings_growth_this_y,omitempty"`
	EarningsGrowthNY   *float64 `json:"earnings_growth_next_y,omitempty"`
	EarningsGrowthN5Y  *float64 `json:"earnings_growth_next_5y,omitempty"`
	EarningsGrowthQoQ  *float64 `json:"earnings_growth_qoq,omitempty"`
	NAV                *float64 `json:"nav,omitempty"`
	ExpenseRatio       *float64 `json:"expense_ratio,omitempty"`
	YTDReturn          *float64 `json:"ytd_return,omitempty"`
	AUM                *float64 `json:"assets_under_management,omitempty"`
	HoldingsCount      *float64 `json:"holdings_count,omitempty"`
	PremiumDiscount    *float64 `json:"premium_discount,omitempty"`
}

// ref maps a Field constant to the address of its struct slot.
func (m *Metrics) ref(f Field) **float64 {
	switch f {
	case FieldCurrentPrice:
		return &m.CurrentPrice
	case FieldMarketCap:
		return &m.MarketCap
	case FieldEnterpriseValue:
		return &m.EnterpriseValue
	case FieldPERatio:
		return &m.PERatio
	case FieldForwardPE:
		return &m.ForwardPE
	case FieldPEGRatio:
		return &m.PEGRatio
	case FieldPriceToBook:
		return &m.PriceToBook
	case FieldPriceToSales:
		return &m.PriceToSales
	case FieldEVToEBITDA:
		return &m.EVToEBITDA
	case FieldEVToEBIT:
		return &m.EVToEBIT
	case FieldFCFYield:
		return &m.FCFYield
	case FieldFreeCashFlow:
		return &m.FreeCashFlow
	case FieldEBIT:
		return &m.EBIT
	case FieldEBITDA:
		return &m.EBITDA
	case FieldROE:
		return &m.ROE
	case FieldROIC:
		return &m.ROIC
	case FieldROA:
		return &m.ROA
	case FieldGrossMargin:
		return &m.GrossMargin
	case FieldOperatingMargin:
		return &m.OperatingMargin
	case FieldNetMargin:
		return &m.NetMargin
	case FieldDebtToEquity:
		return &m.DebtToEquity
	case FieldCurrentRatio:
		return &m.CurrentRatio
	case FieldQuickRatio:
		return &m.QuickRatio
	case FieldNetDebtToEBITDA:
		return &m.NetDebtToEBITDA
	case FieldInterestCoverage:
		return &m.InterestCoverage
	case FieldTotalDebt:
		return &m.TotalDebt
	case FieldCashAndEquivalents:
		return &m.CashAndEquivalents
	case FieldInterestExpense:
		return &m.InterestExpense
	case FieldEPSTTM:
		return &m.EPSTTM
	case FieldDividendYield:
		return &m.DividendYield
	case FieldRevenueGrowth:
		return &m.RevenueGrowth
	case FieldRevenueGrowthQoQ:
		return &m.RevenueGrowthQoQ
	case FieldRevenueGrowth5Y:
		return &m.RevenueGrowth5Y
	case FieldEarningsGrowth:
		return &m.EarningsGrowth
	case FieldEarningsGrowthTY:
		return &m.EarningsGrowthTY
	case FieldEarningsGrowthNY:
		return &m.EarningsGrowthNY
	case FieldEarningsGrowthN5Y:
		return &m.EarningsGrowthN5Y
	case FieldEarningsGrowthQoQ:
		return &m.EarningsGrowthQoQ
	case FieldNAV:
		return &m.NAV
	case FieldExpenseRatio:
		return &m.ExpenseRatio
	case FieldYTDReturn:
		return &m.YTDReturn
	case FieldAUM:
		return &m.AUM
	case FieldHoldingsCount:
		return &m.HoldingsCount
	case FieldPremiumDiscount:
		return &m.PremiumDiscount
	default:
		return nil
	}
}

// Value returns the metric value and whether it is set.
func (m *Metrics) Value(f Field) (float64, bool) {
	p := m.ref(f)
	if p == nil || *p == nil {
		return 0, false
	}
	return **p, true
}

// Has reports whether the field holds a value.
func (m *Metrics) Has(f Field) bool {
	_, ok := m.Value(f)
	return ok
}

// Set writes a metric value. Unknown fields are ignored.
func (m *Metrics) Set(f Field, v float64) {
	p := m.ref(f)
	if p == nil {
		return
	}
	val := v
	*p = &val
}

// Clear removes a metric value.
func (m *Metrics) Clear(f Field) {
	p := m.ref(f)
	if p == nil {
		return
	}
	*p = nil
}

// Clone returns a deep copy.
func (m *Metrics) Clone() *Metrics {
	out := &Metrics{}
	for _, f := range NumericFields {
		if v, ok := m.Value(f); ok {
			out.Set(f, v)
		}
	}
	return out
}

// SetFields returns the fields currently holding a value, in document order.
func (m *Metrics) SetFields() []Field {
	var fields []Field
	for _, f := range NumericFields {
		if m.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// AsMap flattens the record into a string-keyed map for consumers that
// expect the legacy wire shape (period normalizer input, snapshot payloads).
func (m *Metrics) AsMap() map[string]float64 {
	out := make(map[string]float64)
	for _, f := range NumericFields {
		if v, ok := m.Value(f); ok {
			out[string(f)] = v
		}
	}
	return out
}
