package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayrollStatusAdvances(t *testing.T) {
	assert.True(t, PayrollPending.CanAdvanceTo(PayrollProcessing))
	assert.True(t, PayrollProcessing.CanAdvanceTo(PayrollPaid))
}

func TestPayrollStatusForwardOnly(t *testing.T) {
	assert.False(t, PayrollPending.CanAdvanceTo(PayrollPaid), "no skipping Processing")
	assert.False(t, PayrollProcessing.CanAdvanceTo(PayrollPending))
	assert.False(t, PayrollPaid.CanAdvanceTo(PayrollProcessing))
	assert.False(t, PayrollPaid.CanAdvanceTo(PayrollPending))
	assert.False(t, PayrollPaid.CanAdvanceTo(PayrollPaid))
}
