package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple name", input: "Abebe", want: "Abebe"},
		{name: "trims whitespace", input: "  Bekele  ", want: "Bekele"},
		{name: "unicode letters", input: "Åsa", want: "Åsa"},
		{name: "rejects digits", input: "Abebe2", wantErr: true},
		{name: "rejects embedded space", input: "Abebe Bekele", wantErr: true},
		{name: "rejects hyphen", input: "Anna-Maria", wantErr: true},
		{name: "rejects empty", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmail(t *testing.T) {
	accepted := []string{"a@b.co", "first.last+tag@example.org", "a_b%c@sub.domain.io"}
	for _, in := range accepted {
		got, err := Email(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, got)
	}

	rejected := []string{"a@b", "a.b@", "noatsign.com", "", "a b@c.co"}
	for _, in := range rejected {
		_, err := Email(in)
		assert.Error(t, err, in)
	}
}

func TestPhone(t *testing.T) {
	got, err := Phone("0911223344")
	require.NoError(t, err)
	assert.Equal(t, "0911223344", got)

	_, err = Phone("12345")
	assert.Error(t, err, "too short")

	_, err = Phone("091122334a")
	assert.Error(t, err, "non-digit")

	_, err = Phone("+251911223344")
	assert.Error(t, err, "plus sign is not a digit")
}

func TestAge(t *testing.T) {
	for _, in := range []string{"10", "28", "100"} {
		got, err := Age(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, got)
	}

	_, err := Age("abc")
	require.Error(t, err)
	formatMsg := err.Error()

	_, err = Age("9")
	require.Error(t, err)
	rangeMsg := err.Error()

	_, err = Age("101")
	require.Error(t, err)
	assert.Equal(t, rangeMsg, err.Error())

	// format and range failures must carry distinct messages
	assert.NotEqual(t, formatMsg, rangeMsg)
}

func TestDate(t *testing.T) {
	got, err := Date("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31", got)

	for _, in := range []string{"31-12-2026", "2026/12/31", "2026-13-01", "2026-02-30", "tomorrow"} {
		_, err := Date(in)
		assert.Error(t, err, in)
	}
}

func TestAlnumVariants(t *testing.T) {
	assert.True(t, IsAlnumStrict("Acme42"))
	assert.False(t, IsAlnumStrict("Acme 42"))
	assert.False(t, IsAlnumStrict("Acme-42"))
	assert.False(t, IsAlnumStrict(""))

	assert.True(t, IsAlnumWithSpaces("Acme 42"))
	assert.True(t, IsAlnumWithSpaces("Acme42"))
	assert.False(t, IsAlnumWithSpaces("Acme & Co"))
	assert.False(t, IsAlnumWithSpaces("   "))
}

func TestPositiveInt(t *testing.T) {
	got, err := PositiveInt("3")
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	for _, in := range []string{"0", "-1", "three", ""} {
		_, err := PositiveInt(in)
		assert.Error(t, err, in)
	}
}
