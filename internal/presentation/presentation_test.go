package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForStatus(t *testing.T) {
	tests := []struct {
		in    string
		label string
	}{
		{"pending", "Pending"},
		{"APPROVED", "Approved"},
		{" rejected ", "Rejected"},
		{"archived", "Unknown"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.label, ForStatus(tt.in).Label)
		})
	}
}

func TestForPriority(t *testing.T) {
	assert.Equal(t, "#EF4444", ForPriority("high").Color)
	assert.Equal(t, "Medium", ForPriority("Medium").Label)
	assert.Equal(t, neutral, ForPriority("urgent"))
}

func TestLegendIsACopy(t *testing.T) {
	l := Legend()
	l["status"]["pending"] = Badge{}
	assert.Equal(t, "Pending", ForStatus("pending").Label)
	assert.Len(t, Legend()["priority"], 3)
}
