package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStage(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Stage
	}{
		{"fresh request", Request{Status: StatusPending}, StageSupervisor},
		{"past supervisor", Request{Status: StatusPending, SupervisorApproved: true}, StageHR},
		{"past hr", Request{Status: StatusPending, SupervisorApproved: true, HRApproved: true}, StageAdmin},
		{"approved", Request{Status: StatusApproved, SupervisorApproved: true, HRApproved: true, AdminApproved: true}, ""},
		{"rejected early", Request{Status: StatusRejected}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.NextStage())
		})
	}
}

func TestStageApproved(t *testing.T) {
	req := Request{Status: StatusPending, SupervisorApproved: true}

	assert.True(t, req.StageApproved(StageSupervisor))
	assert.False(t, req.StageApproved(StageHR))
	assert.False(t, req.StageApproved(StageAdmin))
}
