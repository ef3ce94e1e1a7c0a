package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	email, err := NewEmail("  Dana.Serikova+hub@Apex.EDU ")
	require.NoError(t, err)
	assert.Equal(t, "dana.serikova+hub@apex.edu", email.String(), "trimmed and lowercased")
	assert.True(t, email.IsValid())
}

func TestNewEmail_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-an-email", "a@b", "@apex.edu", "dana@"} {
		_, err := NewEmail(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{"zero limit gets default", Pagination{}, Pagination{Limit: 20}},
		{"negative offset clamped", Pagination{Limit: 10, Offset: -5}, Pagination{Limit: 10}},
		{"over max clamped", Pagination{Limit: 500}, Pagination{Limit: 100}},
		{"in range untouched", Pagination{Limit: 50, Offset: 40}, Pagination{Limit: 50, Offset: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize(20, 100))
		})
	}
}
