package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOperation(t *testing.T) {
	cases := []struct {
		name           string
		isCancelling   bool
		isRescheduling bool
		want           operationKind
	}{
		{"neither flag means create", false, false, opCreate},
		{"cancel flag", true, false, opCancel},
		{"reschedule flag", false, true, opReschedule},
		{"both flags contradict", true, true, opInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeOperation(tc.isCancelling, tc.isRescheduling))
		})
	}
}
