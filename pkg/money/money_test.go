package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	m, err := FromString("180.005")
	assert.NoError(t, err)
	assert.Equal(t, "180.01", m.String())

	_, err = FromString("not-a-number")
	assert.Error(t, err)
}

func TestArithmeticQuantizes(t *testing.T) {
	a := MustFromString("0.10")
	b := MustFromString("0.20")
	assert.Equal(t, "0.30", a.Add(b).String())
	assert.Equal(t, "-0.10", a.Sub(b).String())
	assert.Equal(t, "0.50", a.MulInt(5).String())
}

func TestPercentRoundsHalfUp(t *testing.T) {
	total := MustFromString("100.00")
	assert.Equal(t, "33.33", total.Percent(decimal.RequireFromString("33.333")).String())
	// 0.125 rounds to 0.13, not 0.12.
	assert.Equal(t, "0.13", MustFromString("12.50").Percent(decimal.NewFromInt(1)).String())
}

func TestClamp(t *testing.T) {
	lo := Zero()
	hi := MustFromString("150.00")
	assert.Equal(t, "0.00", MustFromString("-10.00").Clamp(lo, hi).String())
	assert.Equal(t, "150.00", MustFromString("200.00").Clamp(lo, hi).String())
	assert.Equal(t, "80.00", MustFromString("80.00").Clamp(lo, hi).String())
}

func TestJSONRoundTrip(t *testing.T) {
	m := MustFromString("720.00")
	raw, err := json.Marshal(m)
	assert.NoError(t, err)
	assert.Equal(t, `"720.00"`, string(raw))

	var got Money
	assert.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, m.Equal(got))

	var fromNumber Money
	assert.NoError(t, json.Unmarshal([]byte(`150`), &fromNumber))
	assert.Equal(t, "150.00", fromNumber.String())
}
