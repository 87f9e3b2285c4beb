package threshold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpilch/checkdisk/pkg/state"
)

func percentPair(warn, crit float64) Pair {
	p := Cleared()
	p.WarnPercent = warn
	p.CritPercent = crit
	return p
}

func freePair(warn, crit int64) Pair {
	p := Cleared()
	p.WarnFree = warn
	p.CritFree = crit
	return p
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in   string
		want Limit
	}{
		{"100000", Limit{Free: 100000, HasFree: true}},
		{"10%", Limit{Percent: 10, HasPercent: true}},
		{"7.5%", Limit{Percent: 7.5, HasPercent: true}},
		{"500,20%", Limit{Free: 500, Percent: 20, HasFree: true, HasPercent: true}},
		{"500:20%", Limit{Free: 500, Percent: 20, HasFree: true, HasPercent: true}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLimit(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLimitRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "10,5", "x%", "a,5%"} {
		_, err := ParseLimit(in)
		assert.Error(t, err, in)
	}
}

func TestParseUsedPercent(t *testing.T) {
	v, ok := ParseUsedPercent("90")
	require.True(t, ok)
	assert.Equal(t, 10.0, v)

	_, ok = ParseUsedPercent("/var")
	assert.False(t, ok)
}

func TestSetWarningKeepsOtherField(t *testing.T) {
	p := Cleared()
	p.SetWarning(Limit{Free: 100, HasFree: true})
	p.SetWarning(Limit{Percent: 10, HasPercent: true})
	assert.Equal(t, int64(100), p.WarnFree)
	assert.Equal(t, 10.0, p.WarnPercent)
	assert.False(t, p.HasCritFree())
}

func TestValidatePercent(t *testing.T) {
	for warn := 0.0; warn <= 100; warn += 12.5 {
		for crit := 0.0; crit <= warn; crit += 12.5 {
			assert.NoError(t, percentPair(warn, crit).Validate(""), "warn=%v crit=%v", warn, crit)
		}
	}

	err := percentPair(5, 10).Validate("")
	assert.ErrorIs(t, err, ErrPercentRange)

	err = percentPair(101, 5).Validate("")
	assert.ErrorIs(t, err, ErrPercentRange)

	p := Cleared()
	p.WarnPercent = 10
	assert.ErrorIs(t, p.Validate(""), ErrPercentRange)
}

func TestValidateAbsolute(t *testing.T) {
	assert.NoError(t, freePair(100, 50).Validate(""))
	assert.ErrorIs(t, freePair(50, 100).Validate(""), ErrAbsoluteOrder)

	p := Cleared()
	p.WarnFree = 100
	assert.ErrorIs(t, p.Validate(""), ErrAbsoluteOrder)

	// zero is not a meaningful absolute limit, so a lone zero passes
	p = Cleared()
	p.WarnFree = 0
	assert.NoError(t, p.Validate(""))
}

func TestValidateEmpty(t *testing.T) {
	err := Cleared().Validate("/var")
	require.ErrorIs(t, err, ErrNoThresholds)
	assert.Contains(t, err.Error(), "/var")
}

func TestEvaluatePercent(t *testing.T) {
	p := percentPair(10, 5)
	assert.Equal(t, state.Critical, p.Evaluate(96, 0))
	assert.Equal(t, state.Critical, p.Evaluate(95, 0))
	assert.Equal(t, state.Warning, p.Evaluate(92, 0))
	assert.Equal(t, state.OK, p.Evaluate(50, 0))
}

func TestEvaluateAbsolute(t *testing.T) {
	p := freePair(100, 50)
	assert.Equal(t, state.Critical, p.Evaluate(10, 50))
	assert.Equal(t, state.Warning, p.Evaluate(10, 75))
	assert.Equal(t, state.OK, p.Evaluate(10, 101))
}

func TestEvaluateOrder(t *testing.T) {
	// critical absolute beats warning percent
	p := Cleared()
	p.WarnPercent = 50
	p.CritPercent = 1
	p.WarnFree = 1000
	p.CritFree = 10
	assert.Equal(t, state.Critical, p.Evaluate(60, 5))
	assert.Equal(t, state.Warning, p.Evaluate(60, 500))
	assert.Equal(t, state.Warning, p.Evaluate(10, 500))
}

func TestEvaluateNegativeUsedIsUnknown(t *testing.T) {
	assert.Equal(t, state.Unknown, percentPair(10, 5).Evaluate(-1, 100))
	// an absolute breach still reports even without a usable percentage
	assert.Equal(t, state.Critical, freePair(100, 50).Evaluate(-1, 10))
}

func TestUsedPercentTruncates(t *testing.T) {
	assert.Equal(t, int64(66), UsedPercent(3, 1))
	assert.Equal(t, int64(0), UsedPercent(100, 100))
	assert.Equal(t, int64(100), UsedPercent(100, 0))
	assert.Equal(t, int64(-1), UsedPercent(0, 0))
	assert.Less(t, UsedPercent(100, 150), int64(0))
}

func TestResolveIsAllOrNothing(t *testing.T) {
	global := percentPair(10, 5)
	override := freePair(100000, 50000)

	got := Resolve(&override, global)
	assert.Equal(t, override, got)
	assert.False(t, got.HasWarnPercent())

	assert.Equal(t, global, Resolve(nil, global))
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("GB")
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<30), u.Multiplier)

	u, err = ParseUnit("bytes")
	require.NoError(t, err)
	assert.Equal(t, "B", u.Name)

	_, err = ParseUnit("PB")
	assert.EqualError(t, err, "unit type PB not known")

	assert.Equal(t, 2.0, Megabytes.Scale(2<<20))
}
