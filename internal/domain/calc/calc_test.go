package calc

import (
	"math"
	"testing"

	"nomina/internal/domain/fiscal"
)

func newCalc(t *testing.T) *Calculator {
	t.Helper()
	table := fiscal.Default2024()
	if err := table.Validate(); err != nil {
		t.Fatalf("table invalid: %v", err)
	}
	return New(table)
}

func TestResolveBracketCoverage(t *testing.T) {
	c := newCalc(t)
	amounts := []float64{-100, 0, 0.01, 500, 746.04, 746.045, 746.05, 6332.06,
		15487.72, 25000, 93993.91, 375975.62, 5e6}
	for _, amount := range amounts {
		b := c.ResolveBracket(amount)
		clamped := amount
		if clamped < 0 {
			clamped = 0
		}
		if clamped > b.UpperBound() {
			t.Fatalf("amount %v above bracket upper %v", amount, b.UpperBound())
		}
	}
	top := c.ResolveBracket(1e12)
	if !top.Open {
		t.Fatal("expected open top bracket for huge amount")
	}
}

func TestWithholdingNonNegative(t *testing.T) {
	c := newCalc(t)
	for amount := 0.0; amount <= 50000; amount += 37.5 {
		if tax := c.Withholding(amount); tax < 0 {
			t.Fatalf("negative withholding %v at %v", tax, amount)
		}
	}
}

func TestWithholdingKnownBracket(t *testing.T) {
	c := newCalc(t)
	// 25000 falls in the 21.36% bracket starting at 15487.72 with fee 1640.18.
	want := 1640.18 + (25000-15487.72)*0.2136
	got := c.Withholding(25000)
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("expected withholding %v, got %v", want, got)
	}
}

func TestSocialSecurityZeroForNonPositive(t *testing.T) {
	c := newCalc(t)
	if got := c.SocialSecurity(0); got != (Contribution{}) {
		t.Fatalf("expected zero contributions, got %+v", got)
	}
	if got := c.SocialSecurity(-500); got != (Contribution{}) {
		t.Fatalf("expected zero contributions, got %+v", got)
	}
}

func TestContributionCapEnforced(t *testing.T) {
	c := newCalc(t)
	cap := c.Table().ContributionCapMonthly()

	atCap := c.SocialSecurity(cap)
	far := c.SocialSecurity(cap * 40)
	if atCap != far {
		t.Fatalf("social security not capped: %+v vs %+v", atCap, far)
	}

	retAtCap := c.Retirement(cap)
	retFar := c.Retirement(cap * 40)
	if retAtCap != retFar {
		t.Fatalf("retirement not capped: %+v vs %+v", retAtCap, retFar)
	}
}

func TestRetirementRates(t *testing.T) {
	c := newCalc(t)
	got := c.Retirement(10000)
	if math.Abs(got.Employer-515) > 0.01 {
		t.Fatalf("expected employer 515, got %v", got.Employer)
	}
	if math.Abs(got.Employee-112.5) > 0.01 {
		t.Fatalf("expected employee 112.5, got %v", got.Employee)
	}
}

func TestNetMonotonicAboveMinimumWage(t *testing.T) {
	c := newCalc(t)
	prev := c.Net(c.Table().MinimumMonthlyWage)
	for gross := c.Table().MinimumMonthlyWage; gross <= 200000; gross += 93.7 {
		net := c.Net(gross)
		if net < prev {
			t.Fatalf("net decreased at gross %v: %v -> %v", gross, prev, net)
		}
		prev = net
	}
}

func TestNetSanityAt25000(t *testing.T) {
	c := newCalc(t)
	net := c.Net(25000)
	if net >= 25000 || net <= 18000 {
		t.Fatalf("net %v outside sanity bounds (18000, 25000)", net)
	}
}

func TestIdempotence(t *testing.T) {
	c := newCalc(t)
	for _, gross := range []float64{0, 7467.90, 25000, 123456.78} {
		if a, b := c.Net(gross), c.Net(gross); a != b {
			t.Fatalf("net not idempotent at %v: %v vs %v", gross, a, b)
		}
		if a, b := c.SocialSecurity(gross), c.SocialSecurity(gross); a != b {
			t.Fatalf("social security not idempotent at %v", gross)
		}
	}
}
