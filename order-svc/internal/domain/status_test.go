package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_Matrix(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusPreparing}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusPreparing, StatusReady}:     true,
		{StatusPreparing, StatusCancelled}: true,
		{StatusReady, StatusCompleted}:     true,
		{StatusReady, StatusCancelled}:     true,
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				assert.Equal(t, allowed[[2]Status{from, to}], CanTransition(from, to))
			})
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("served", StatusPending))
	assert.False(t, CanTransition(StatusPending, "served"))
}

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status   Status
		valid    bool
		active   bool
		terminal bool
	}{
		{StatusPending, true, true, false},
		{StatusPreparing, true, true, false},
		{StatusReady, true, true, false},
		{StatusCompleted, true, false, true},
		{StatusCancelled, true, false, true},
		{"served", false, true, false},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.status), func(t *testing.T) {
			assert.Equal(t, testCase.valid, testCase.status.Valid())
			assert.Equal(t, testCase.active, testCase.status.Active())
			assert.Equal(t, testCase.terminal, testCase.status.Terminal())
		})
	}
}

func TestNextStatusesIsACopy(t *testing.T) {
	next := NextStatuses(StatusPending)
	next[0] = StatusCompleted
	assert.Equal(t, []Status{StatusPreparing, StatusCancelled}, NextStatuses(StatusPending))
}

func TestValidTopic(t *testing.T) {
	for topic, want := range map[string]bool{
		"admin":       true,
		"kitchen":     true,
		"customer:12": true,
		"table:4":     true,
		"table:":      false,
		"table:0":     false,
		"customer:x":  false,
		"waiters":     false,
		"":            false,
	} {
		assert.Equal(t, want, ValidTopic(topic), topic)
	}
	assert.Equal(t, "customer:12", CustomerTopic(12))
	assert.Equal(t, "table:4", TableTopic(4))
}
