package normalize

import "github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"

// DefaultSectorBenchmarks returns historical S&P 500 sector averages for the
// ratio metrics the sector normalizer scores against. Financials carry no
// debt_to_equity or gross_margin benchmark; the ratios do not translate to
// their balance-sheet model.
func DefaultSectorBenchmarks() map[string]map[models.Field]models.SectorBenchmark {
	return map[string]map[models.Field]models.SectorBenchmark{
		"Technology": {
			models.FieldROE:             {Mean: 22.0, Std: 8.5},
			models.FieldROIC:            {Mean: 18.0, Std: 7.2},
			models.FieldROA:             {Mean: 12.0, Std: 5.5},
			models.FieldOperatingMargin: {Mean: 25.0, Std: 10.0},
			models.FieldNetMargin:       {Mean: 18.0, Std: 8.0},
			models.FieldGrossMargin:     {Mean: 60.0, Std: 15.0},
			models.FieldDebtToEquity:    {Mean: 0.4, Std: 0.3},
			models.FieldCurrentRatio:    {Mean: 2.5, Std: 1.0},
			models.FieldRevenueGrowth:   {Mean: 15.0, Std: 12.0},
			models.FieldEarningsGrowth:  {Mean: 18.0, Std: 15.0},
		},
		"Consumer Discretionary": {
			models.FieldROE:             {Mean: 18.0, Std: 7.0},
			models.FieldROIC:            {Mean: 14.0, Std: 6.0},
			models.FieldROA:             {Mean: 8.0, Std: 4.0},
			models.FieldOperatingMargin: {Mean: 12.0, Std: 6.0},
			models.FieldNetMargin:       {Mean: 8.0, Std: 5.0},
			models.FieldGrossMargin:     {Mean: 35.0, Std: 12.0},
			models.FieldDebtToEquity:    {Mean: 0.8, Std: 0.5},
			models.FieldCurrentRatio:    {Mean: 1.5, Std: 0.7},
			models.FieldRevenueGrowth:   {Mean: 8.0, Std: 8.0},
			models.FieldEarningsGrowth:  {Mean: 10.0, Std: 12.0},
		},
		"Consumer Staples": {
			models.FieldROE:             {Mean: 16.0, Std: 5.0},
			models.FieldROIC:            {Mean: 12.0, Std: 4.5},
			models.FieldROA:             {Mean: 7.0, Std: 3.0},
			models.FieldOperatingMargin: {Mean: 15.0, Std: 5.0},
			models.FieldNetMargin:       {Mean: 10.0, Std: 4.0},
			models.FieldGrossMargin:     {Mean: 45.0, Std: 10.0},
			models.FieldDebtToEquity:    {Mean: 0.7, Std: 0.4},
			models.FieldCurrentRatio:    {Mean: 1.2, Std: 0.5},
			models.FieldRevenueGrowth:   {Mean: 4.0, Std: 5.0},
			models.FieldEarningsGrowth:  {Mean: 6.0, Std: 7.0},
		},
		"Utilities": {
			models.FieldROE:             {Mean: 9.5, Std: 3.2},
			models.FieldROIC:            {Mean: 6.5, Std: 2.5},
			models.FieldROA:             {Mean: 3.5, Std: 1.5},
			models.FieldOperatingMargin: {Mean: 12.0, Std: 4.0},
			models.FieldNetMargin:       {Mean: 8.0, Std: 3.0},
			models.FieldGrossMargin:     {Mean: 40.0, Std: 8.0},
			models.FieldDebtToEquity:    {Mean: 1.8, Std: 0.6},
			models.FieldCurrentRatio:    {Mean: 0.9, Std: 0.3},
			models.FieldRevenueGrowth:   {Mean: 2.0, Std: 3.0},
			models.FieldEarningsGrowth:  {Mean: 3.0, Std: 4.0},
		},
		"Financials": {
			models.FieldROE:             {Mean: 11.0, Std: 4.5},
			models.FieldROIC:            {Mean: 8.0, Std: 3.0},
			models.FieldROA:             {Mean: 1.2, Std: 0.5},
			models.FieldOperatingMargin: {Mean: 28.0, Std: 10.0},
			models.FieldNetMargin:       {Mean: 20.0, Std: 8.0},
			models.FieldCurrentRatio:    {Mean: 1.1, Std: 0.4},
			models.FieldRevenueGrowth:   {Mean: 6.0, Std: 8.0},
			models.FieldEarningsGrowth:  {Mean: 8.0, Std: 12.0},
		},
		"Healthcare": {
			models.FieldROE:             {Mean: 14.0, Std: 6.0},
			models.FieldROIC:            {Mean: 11.0, Std: 5.0},
			models.FieldROA:             {Mean: 8.0, Std: 4.0},
			models.FieldOperatingMargin: {Mean: 18.0, Std: 8.0},
			models.FieldNetMargin:       {Mean: 12.0, Std: 6.0},
			models.FieldGrossMargin:     {Mean: 70.0, Std: 15.0},
			models.FieldDebtToEquity:    {Mean: 0.5, Std: 0.4},
			models.FieldCurrentRatio:    {Mean: 2.0, Std: 1.0},
			models.FieldRevenueGrowth:   {Mean: 10.0, Std: 10.0},
			models.FieldEarningsGrowth:  {Mean: 12.0, Std: 12.0},
		},
		"Industrials": {
			models.FieldROE:             {Mean: 13.0, Std: 5.5},
			models.FieldROIC:            {Mean: 10.0, Std: 4.5},
			models.FieldROA:             {Mean: 6.0, Std: 3.0},
			models.FieldOperatingMargin: {Mean: 10.0, Std: 5.0},
			models.FieldNetMargin:       {Mean: 7.0, Std: 4.0},
			models.FieldGrossMargin:     {Mean: 30.0, Std: 10.0},
			models.FieldDebtToEquity:    {Mean: 0.9, Std: 0.5},
			models.FieldCurrentRatio:    {Mean: 1.4, Std: 0.6},
			models.FieldRevenueGrowth:   {Mean: 6.0, Std: 8.0},
			models.FieldEarningsGrowth:  {Mean: 8.0, Std: 10.0},
		},
		"Energy": {
			models.FieldROE:             {Mean: 8.0, Std: 6.0},
			models.FieldROIC:            {Mean: 5.0, Std: 4.0},
			models.FieldROA:             {Mean: 3.0, Std: 2.5},
			models.FieldOperatingMargin: {Mean: 8.0, Std: 6.0},
			models.FieldNetMargin:       {Mean: 5.0, Std: 5.0},
			models.FieldGrossMargin:     {Mean: 25.0, Std: 10.0},
			models.FieldDebtToEquity:    {Mean: 0.6, Std: 0.4},
			models.FieldCurrentRatio:    {Mean: 1.3, Std: 0.5},
			models.FieldRevenueGrowth:   {Mean: 5.0, Std: 15.0},
			models.FieldEarningsGrowth:  {Mean: 8.0, Std: 20.0},
		},
		"Materials": {
			models.FieldROE:             {Mean: 11.0, Std: 5.0},
			models.FieldROIC:            {Mean: 8.0, Std: 4.0},
			models.FieldROA:             {Mean: 5.0, Std: 2.5},
			models.FieldOperatingMargin: {Mean: 12.0, Std: 6.0},
			models.FieldNetMargin:       {Mean: 8.0, Std: 5.0},
			models.FieldGrossMargin:     {Mean: 28.0, Std: 8.0},
			models.FieldDebtToEquity:    {Mean: 0.7, Std: 0.4},
			models.FieldCurrentRatio:    {Mean: 1.6, Std: 0.6},
			models.FieldRevenueGrowth:   {Mean: 5.0, Std: 10.0},
			models.FieldEarningsGrowth:  {Mean: 7.0, Std: 12.0},
		},
		"Communication Services": {
			models.FieldROE:             {Mean: 15.0, Std: 7.0},
			models.FieldROIC:            {Mean: 12.0, Std: 6.0},
			models.FieldROA:             {Mean: 6.0, Std: 3.5},
			models.FieldOperatingMargin: {Mean: 20.0, Std: 10.0},
			models.FieldNetMargin:       {Mean: 15.0, Std: 8.0},
			models.FieldGrossMargin:     {Mean: 55.0, Std: 15.0},
			models.FieldDebtToEquity:    {Mean: 1.2, Std: 0.7},
			models.FieldCurrentRatio:    {Mean: 1.3, Std: 0.6},
			models.FieldRevenueGrowth:   {Mean: 8.0, Std: 10.0},
			models.FieldEarningsGrowth:  {Mean: 10.0, Std: 12.0},
		},
		"Real Estate": {
			models.FieldROE:             {Mean: 7.0, Std: 4.0},
			models.FieldROIC:            {Mean: 5.0, Std: 3.0},
			models.FieldROA:             {Mean: 3.0, Std: 2.0},
			models.FieldOperatingMargin: {Mean: 35.0, Std: 12.0},
			models.FieldNetMargin:       {Mean: 25.0, Std: 10.0},
			models.FieldGrossMargin:     {Mean: 60.0, Std: 15.0},
			models.FieldDebtToEquity:    {Mean: 1.5, Std: 0.8},
			models.FieldCurrentRatio:    {Mean: 0.8, Std: 0.4},
			models.FieldRevenueGrowth:   {Mean: 4.0, Std: 6.0},
			models.FieldEarningsGrowth:  {Mean: 5.0, Std: 8.0},
		},
	}
}
