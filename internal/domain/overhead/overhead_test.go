package overhead

import (
	"errors"
	"math"
	"testing"

	"nomina/internal/domain/calc"
	"nomina/internal/domain/fiscal"
)

func newCalc(t *testing.T) *calc.Calculator {
	t.Helper()
	table := fiscal.Default2024()
	if err := table.Validate(); err != nil {
		t.Fatalf("table invalid: %v", err)
	}
	return calc.New(table)
}

func TestNewItemClampsNegativeValue(t *testing.T) {
	item := NewItem("equipment", KindFixed, CategoryBenefit, -250)
	if item.Value != 0 {
		t.Fatalf("expected clamped value 0, got %v", item.Value)
	}
}

func TestSanitizeItems(t *testing.T) {
	items, err := SanitizeItems([]Item{
		{Name: "vales", Kind: KindFixed, Value: -5000, Category: CategoryBenefit},
		{ID: "keep", Name: "isr", Kind: KindComputed, Category: CategoryEmployeeRetention, Calc: CalcWithholding},
	})
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if items[0].Value != 0 {
		t.Fatalf("expected negative value clamped to 0, got %v", items[0].Value)
	}
	if items[0].ID == "" {
		t.Fatal("expected missing id assigned")
	}
	if items[1].ID != "keep" {
		t.Fatalf("expected existing id kept, got %q", items[1].ID)
	}
}

func TestSanitizeItemsRejectsUnknownEnums(t *testing.T) {
	cases := []struct {
		name string
		item Item
	}{
		{"kind", Item{Name: "x", Kind: "exponential", Category: CategoryBenefit}},
		{"category", Item{Name: "x", Kind: KindFixed, Value: 1, Category: "misc"}},
		{"calc", Item{Name: "x", Kind: KindComputed, Category: CategoryEmployeeRetention, Calc: "vat"}},
	}
	for _, tc := range cases {
		if _, err := SanitizeItems([]Item{tc.item}); !errors.Is(err, ErrInvalidItem) {
			t.Fatalf("%s: expected ErrInvalidItem, got %v", tc.name, err)
		}
	}
}

func TestNewEmployeeSalaryClamping(t *testing.T) {
	minWage := fiscal.Default2024().MinimumMonthlyWage
	if emp := NewEmployee("a", -100, nil, minWage); emp.MonthlySalary != 0 {
		t.Fatalf("expected negative salary clamped to 0, got %v", emp.MonthlySalary)
	}
	if emp := NewEmployee("b", 1000, nil, minWage); emp.MonthlySalary != minWage {
		t.Fatalf("expected salary raised to minimum wage, got %v", emp.MonthlySalary)
	}
	if emp := NewEmployee("c", 0, nil, minWage); emp.MonthlySalary != 0 {
		t.Fatalf("expected zero salary kept, got %v", emp.MonthlySalary)
	}
}

func TestItemCostKinds(t *testing.T) {
	c := newCalc(t)
	salary := 30400.0 // 1000/day at 30.4 days per month

	cases := []struct {
		name string
		item Item
		want float64
	}{
		{"fixed", NewItem("equipment", KindFixed, CategoryBenefit, 800), 800},
		{"percent", NewItem("vouchers", KindPercent, CategoryBenefit, 10), 3040},
		{"annual percent", NewItem("performance bonus", KindAnnualPercent, CategoryBonus, 10), 3040},
		{"days", NewItem("aguinaldo", KindDays, CategoryBonus, 15), 15000},
	}
	for _, tc := range cases {
		if got := ItemCost(c, tc.item, salary); math.Abs(got-tc.want) > 0.001 {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestAnnualPercentConventionMatchesDefinition(t *testing.T) {
	c := newCalc(t)
	salary := 17350.0
	item := NewItem("performance bonus", KindAnnualPercent, CategoryBonus, 7.5)
	want := (salary * 12 * 7.5 / 100) / 12
	if got := ItemCost(c, item, salary); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected annual convention %v, got %v", want, got)
	}
}

func TestCappedPercentUsesContributionCap(t *testing.T) {
	c := newCalc(t)
	cap := c.Table().ContributionCapMonthly()
	item := NewItem("housing fund", KindCappedPercent, CategoryEmployerRetention, 5)
	atCap := ItemCost(c, item, cap)
	far := ItemCost(c, item, cap*10)
	if atCap != far {
		t.Fatalf("capped percent not capped: %v vs %v", atCap, far)
	}
	if math.Abs(atCap-cap*0.05) > 0.001 {
		t.Fatalf("expected 5%% of cap, got %v", atCap)
	}
}

func TestComputedItemsDispatch(t *testing.T) {
	c := newCalc(t)
	salary := 25000.0
	item := NewComputedItem("ISR", CategoryEmployeeRetention, CalcWithholding)
	// Stored value is ignored for computed items.
	item.Value = 999999
	if got := ItemCost(c, item, salary); got != c.Withholding(salary) {
		t.Fatalf("expected withholding dispatch, got %v", got)
	}

	ss := NewComputedItem("IMSS", CategoryEmployerRetention, CalcSocialSecurityEmployer)
	if got := ItemCost(c, ss, salary); got != c.SocialSecurity(salary).Employer {
		t.Fatalf("expected employer social security dispatch, got %v", got)
	}
}

func TestBreakdownCategoriesPartitionItems(t *testing.T) {
	c := newCalc(t)
	items := append(DefaultItems(),
		NewItem("equipment", KindFixed, CategoryBenefit, 500),
		NewItem("vouchers", KindPercent, CategoryBenefit, 10),
	)
	emp := NewEmployee("dev", 25000, items, c.Table().MinimumMonthlyWage)

	b := EmployeeBreakdown(c, emp)
	categorySum := b.Benefits + b.Bonuses + b.EmployerRetentions + b.EmployeeRetentions
	if math.Abs(categorySum-(EmployeeCost(c, emp)-emp.MonthlySalary)) > 1e-6 {
		t.Fatalf("categories do not partition items: %v vs %v",
			categorySum, EmployeeCost(c, emp)-emp.MonthlySalary)
	}
}

func TestBreakdownScenario25000(t *testing.T) {
	c := newCalc(t)
	items := []Item{
		NewComputedItem("ISR withholding", CategoryEmployeeRetention, CalcWithholding),
		NewComputedItem("IMSS employer", CategoryEmployerRetention, CalcSocialSecurityEmployer),
		NewComputedItem("IMSS employee", CategoryEmployeeRetention, CalcSocialSecurityEmployee),
		NewComputedItem("Retirement employer", CategoryEmployerRetention, CalcRetirementEmployer),
		NewComputedItem("Retirement employee", CategoryEmployeeRetention, CalcRetirementEmployee),
	}
	emp := NewEmployee("dev", 25000, items, c.Table().MinimumMonthlyWage)

	b := EmployeeBreakdown(c, emp)
	if b.Net >= 25000 || b.Net <= 18000 {
		t.Fatalf("net %v outside sanity bounds", b.Net)
	}
	if b.TotalCost <= 25000 {
		t.Fatalf("expected total cost above gross, got %v", b.TotalCost)
	}
	if b.Net != c.Net(25000) {
		t.Fatalf("breakdown net %v disagrees with calculator net %v", b.Net, c.Net(25000))
	}
}

func TestZeroSalaryYieldsZeroTotals(t *testing.T) {
	c := newCalc(t)
	emp := Employee{ID: "x", Name: "zero", MonthlySalary: 0, Items: DefaultItems()}
	b := EmployeeBreakdown(c, emp)
	if b.TotalCost != 0 || b.Net != 0 {
		t.Fatalf("expected zero totals, got %+v", b)
	}
}

func TestOrganizationTotalDispersion(t *testing.T) {
	c := newCalc(t)
	employees := []Employee{
		NewEmployee("a", 25000, DefaultItems(), c.Table().MinimumMonthlyWage),
		NewEmployee("b", 42000, DefaultItems(), c.Table().MinimumMonthlyWage),
	}
	groups := []GroupItem{
		NewGroupItem("office", 18000),
		NewGroupItem("bogus", -500), // clamps to 0
	}

	none := OrganizationTotal(c, employees, groups, Dispersion{BaseIncluded: 1, Additional: 0, FeePercent: 5})
	if none.DispersionSurcharge != 0 {
		t.Fatalf("expected zero surcharge, got %v", none.DispersionSurcharge)
	}
	if none.GroupTotal != 18000 {
		t.Fatalf("expected negative group item clamped, got %v", none.GroupTotal)
	}

	two := OrganizationTotal(c, employees, groups, Dispersion{BaseIncluded: 1, Additional: 2, FeePercent: 5})
	want := (two.EmployeeTotal + two.GroupTotal) * 0.05 * 2
	if math.Abs(two.DispersionSurcharge-want) > 1e-9 {
		t.Fatalf("expected surcharge %v, got %v", want, two.DispersionSurcharge)
	}
	if math.Abs(two.GrandTotal-(two.EmployeeTotal+two.GroupTotal+want)) > 1e-9 {
		t.Fatalf("grand total mismatch: %+v", two)
	}
}

func TestRegisterRowRoundsAtBoundary(t *testing.T) {
	b := Breakdown{
		EmployeeID:   "e1",
		EmployeeName: "dev",
		Gross:        25000.123456,
		Net:          20674.987654,
		TotalCost:    31000.5,
	}
	row := RegisterRow(b, "MXN", 1)
	if len(row) != len(RegisterHeader) {
		t.Fatalf("row width %d does not match header %d", len(row), len(RegisterHeader))
	}
	if row[2] != "25000.12" {
		t.Fatalf("expected rounded gross, got %s", row[2])
	}
	if row[7] != "20674.99" {
		t.Fatalf("expected rounded net, got %s", row[7])
	}
	if row[9] != "MXN" {
		t.Fatalf("expected currency column, got %s", row[9])
	}

	usd := RegisterRow(b, "USD", 17.15)
	if usd[2] != "1457.73" {
		t.Fatalf("expected converted gross, got %s", usd[2])
	}
}
