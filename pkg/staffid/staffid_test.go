package staffid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff-administration/pkg/apperr"
)

func TestPrefix(t *testing.T) {
	cases := map[string]string{
		"Teaching":       "FAC",
		"Support":        "STAFF",
		"Administration": "ADMIN",
	}
	for department, want := range cases {
		got, err := Prefix(department)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestPrefixUnknownDepartment(t *testing.T) {
	_, err := Prefix("Engineering")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "FAC001", Format("FAC", 1))
	assert.Equal(t, "STAFF014", Format("STAFF", 14))
	assert.Equal(t, "ADMIN003", Format("ADMIN", 3))
	// Sequences past 999 widen rather than wrap.
	assert.Equal(t, "FAC1000", Format("FAC", 1000))
}
