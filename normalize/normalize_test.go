package normalize

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"  hello  ", "hello"},
		{"a \t\n b", "a b"},
		{"non breaking  space", "non breaking space"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.input), "Text(%q)", tt.input)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Paid By", "Paid_By"},
		{"  Total  Amount (₹) ", "Total_Amount_"},
		{"Work Type", "Work_Type"},
		{"Received-By", "ReceivedBy"},
		{"", ""},
	}

	for _, tt := range tests {
		got := Key(tt.input)
		assert.Equal(t, tt.want, got, "Key(%q)", tt.input)
		assert.Equal(t, got, Key(got), "Key must be idempotent for %q", tt.input)
	}
}

func TestAccountName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  rAM kumar ", "Ram Kumar"},
		{"RAM   KUMAR", "Ram Kumar"},
		{"o'brien", "O'Brien"},
		{"site-office cash", "Site-Office Cash"},
		{"", ""},
	}

	for _, tt := range tests {
		got := AccountName(tt.input)
		assert.Equal(t, tt.want, got, "AccountName(%q)", tt.input)
		assert.Equal(t, got, AccountName(got), "AccountName must be idempotent for %q", tt.input)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"₹ 1,234.50", "1234.5"},
		{"INR 12,000", "12000"},
		{"inr 5", "5"},
		{"1,00,000.00", "100000"},
		{"-250.75", "-250.75"},
		{"12.5 approx", "12.5"},
		{".5", "0.5"},
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"(1,000)", "0"},
	}

	for _, tt := range tests {
		want := decimal.RequireFromString(tt.want)
		got := Number(tt.input)
		assert.True(t, want.Equal(got), "Number(%q) = %s, want %s", tt.input, got, want)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"999.999", "1,000.00"},
		{"1234.5", "1,234.50"},
		{"123456", "1,23,456.00"},
		{"1234567.891", "12,34,567.89"},
		{"-1234567", "-12,34,567.00"},
		{"-0.001", "0.00"},
	}

	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.input))
		assert.Equal(t, tt.want, got, "FormatMoney(%s)", tt.input)
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "₹ 1,400.00", Money("₹", decimal.NewFromInt(1400)))
	assert.Equal(t, "1,400.00", Money("", decimal.NewFromInt(1400)))
	assert.Equal(t, "$ 2.50", NewFormatter("$").Money(decimal.RequireFromString("2.5")))
	assert.Equal(t, DefaultCurrencySymbol, NewFormatter("").Symbol)
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "₹", CurrencySymbol("INR"))
	assert.Equal(t, "$", CurrencySymbol("usd"))
	assert.Equal(t, "Rs.", CurrencySymbol("Rs."))
	assert.Equal(t, "", CurrencySymbol(" "))
}

func TestParseDate(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		input string
		want  time.Time
	}{
		{"05-Jan-2024", date(2024, time.January, 5)},
		{"5-jan-24", date(2024, time.January, 5)},
		{"17-September-2023", date(2023, time.September, 17)},
		{"2024-03-09", date(2024, time.March, 9)},
		{"03/09/2024", date(2024, time.March, 9)},
		{"Mar 9, 2024", date(2024, time.March, 9)},
		{"1/20/2024", date(2024, time.January, 20)},
		{"1/20/24", date(2024, time.January, 20)},
		{"2024/01/15", date(2024, time.January, 15)},
		{"2024-1-5", date(2024, time.January, 5)},
		{"2024-01-15T10:00:00", date(2024, time.January, 15).Add(10 * time.Hour)},
		{"2024-01-15T10:00:00+05:30", time.Date(2024, time.January, 15, 10, 0, 0, 0, time.FixedZone("", 19800))},
		{"15 Jan 2024 10:30", date(2024, time.January, 15).Add(10*time.Hour + 30*time.Minute)},
		{"15-Jan-2024 10:30", date(2024, time.January, 15).Add(10*time.Hour + 30*time.Minute)},
		{"15-Jan-2024 4:05 PM", date(2024, time.January, 15).Add(16*time.Hour + 5*time.Minute)},
		{"15-Jan-2024 noon", MinDate},
		{"31-Feb-2024", MinDate},
		{"", MinDate},
		{"not a date", MinDate},
	}

	for _, tt := range tests {
		got := ParseDate(tt.input)
		assert.True(t, tt.want.Equal(got), "ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
	}
}

func TestMonthYearToDate(t *testing.T) {
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), MonthYearToDate("February 2024"))
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), MonthYearToDate("dec 2023"))
	assert.Equal(t, MinDate, MonthYearToDate("February"))
	assert.Equal(t, MinDate, MonthYearToDate(""))
	assert.Equal(t, MinDate, MonthYearToDate("Smarch 2024"))
}
