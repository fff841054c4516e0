package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cyonx818/skynet-loop/internal/workflow"
)

func TestCommandForPosition(t *testing.T) {
	tests := []struct {
		position string
		expected string
	}{
		{workflow.PositionPhase1Complete, "/skynet:phase2-sprint-setup"},
		{workflow.PositionSprintSetupComplete, "/skynet:phase3-execute"},
		{workflow.PositionImplementationComplete, "/skynet:quality-check"},
		{workflow.PositionQualityCheckComplete, workflow.DefaultNextSprintCommand},
		{"some_custom_checkpoint", workflow.DefaultNextSprintCommand},
		{"", workflow.DefaultNextSprintCommand},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			assert.Equal(t, tt.expected, workflow.CommandForPosition(tt.position))
		})
	}
}

func TestPhaseName(t *testing.T) {
	tests := []struct {
		phase    string
		expected string
	}{
		{workflow.PhasePlanning, "Planning"},
		{workflow.PhaseSprintPlanning, "Sprint Planning"},
		{workflow.PhaseExecution, "Execution"},
		{"9", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, workflow.PhaseName(tt.phase))
		})
	}
}
