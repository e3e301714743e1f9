package reconcile

import (
	"math"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
)

// DerivedCalculator computes secondary metrics from already-merged raw
// fundamentals. Pure and stateless: each derivation runs only when its
// inputs are present and the denominator clears the stability guard, and a
// second application is a no-op on values (same inputs, same outputs).
type DerivedCalculator struct{}

// NewDerivedCalculator creates the calculator.
func NewDerivedCalculator() *DerivedCalculator {
	return &DerivedCalculator{}
}

// Apply fills in derivable fields and tags their provenance.
func (c *DerivedCalculator) Apply(m *models.Metrics, prov map[models.Field]string) {
	// FCF Yield = FCF / Market Cap * 100.
	if fcf, ok := m.Value(models.FieldFreeCashFlow); ok {
		if mcap, ok := m.Value(models.FieldMarketCap); ok && mcap > 0 {
			m.Set(models.FieldFCFYield, fcf/mcap*100)
			prov[models.FieldFCFYield] = "calculated:fcf/mcap"
		}
	}

	// EV/EBIT = Enterprise Value / EBIT.
	if ev, ok := m.Value(models.FieldEnterpriseValue); ok {
		if ebit, ok := m.Value(models.FieldEBIT); ok && math.Abs(ebit) > epsilon {
			m.Set(models.FieldEVToEBIT, ev/ebit)
			prov[models.FieldEVToEBIT] = "calculated:ev/ebit"
		}
	}

	// Net Debt/EBITDA = (Total Debt - Cash) / EBITDA.
	if debt, ok := m.Value(models.FieldTotalDebt); ok {
		if cash, ok := m.Value(models.FieldCashAndEquivalents); ok {
			if ebitda, ok := m.Value(models.FieldEBITDA); ok && math.Abs(ebitda) > epsilon {
				m.Set(models.FieldNetDebtToEBITDA, (debt-cash)/ebitda)
				prov[models.FieldNetDebtToEBITDA] = "calculated:(debt-cash)/ebitda"
			}
		}
	}

	// Interest Coverage = EBIT / Interest Expense.
	if ebit, ok := m.Value(models.FieldEBIT); ok {
		if interest, ok := m.Value(models.FieldInterestExpense); ok && math.Abs(interest) > epsilon {
			m.Set(models.FieldInterestCoverage, ebit/interest)
			prov[models.FieldInterestCoverage] = "calculated:ebit/interest"
		}
	}
}
