package fiscal

// Default2024 is the built-in 2024 table: monthly ISR withholding brackets,
// the two-tier employment subsidy, the IMSS component schedule, and
// SAR/AFORE retirement rates. Amounts are MXN.
func Default2024() Table {
	return Table{
		Year:                 2024,
		BaseCurrency:         "MXN",
		ReferenceUnitDaily:   108.57,
		MinimumMonthlyWage:   7467.90,
		DaysPerMonth:         30.4,
		ContributionCapUnits: 25,
		ExcessThresholdUnits: 3,
		Brackets: []TaxBracket{
			{Lower: 0.01, Upper: 746.04, Fee: 0, Rate: 1.92},
			{Lower: 746.05, Upper: 6332.05, Fee: 14.32, Rate: 6.40},
			{Lower: 6332.06, Upper: 11128.01, Fee: 371.83, Rate: 10.88},
			{Lower: 11128.02, Upper: 12935.82, Fee: 893.63, Rate: 16.00},
			{Lower: 12935.83, Upper: 15487.71, Fee: 1182.88, Rate: 17.92},
			{Lower: 15487.72, Upper: 31236.49, Fee: 1640.18, Rate: 21.36},
			{Lower: 31236.50, Upper: 49233.00, Fee: 5004.12, Rate: 23.52},
			{Lower: 49233.01, Upper: 93993.90, Fee: 9236.89, Rate: 30.00},
			{Lower: 93993.91, Upper: 125325.20, Fee: 22665.17, Rate: 32.00},
			{Lower: 125325.21, Upper: 375975.61, Fee: 32691.18, Rate: 34.00},
			{Lower: 375975.62, Fee: 117912.32, Rate: 35.00, Open: true},
		},
		SubsidyTiers: []SubsidyTier{
			{UpTo: 6332.05, Credit: 390.22},
			{UpTo: 7460.29, Credit: 145.80},
		},
		SocialSecurity: []SocialSecurityComponent{
			{Name: "fixed_fee", Base: BaseReferenceUnit, EmployerRate: 20.40, EmployeeRate: 0},
			{Name: "excess_over_3x", Base: BaseExcessOverCap, EmployerRate: 1.10, EmployeeRate: 0.40},
			{Name: "cash_benefits", Base: BaseContribution, EmployerRate: 0.70, EmployeeRate: 0.25},
			{Name: "retiree_medical", Base: BaseContribution, EmployerRate: 1.05, EmployeeRate: 0.375},
			{Name: "disability_life", Base: BaseContribution, EmployerRate: 1.75, EmployeeRate: 0.625},
			{Name: "occupational_risk", Base: BaseContribution, EmployerRate: 0.54355, EmployeeRate: 0},
			{Name: "nursery_social", Base: BaseContribution, EmployerRate: 1.00, EmployeeRate: 0},
		},
		Retirement: RetirementRates{EmployerRate: 5.15, EmployeeRate: 1.125},
		Currencies: []Currency{
			{Code: "USD", Multiplier: 17.15},
			{Code: "EUR", Multiplier: 18.60},
		},
	}
}
