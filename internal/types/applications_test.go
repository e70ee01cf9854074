package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitApplicationRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request SubmitApplicationRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: SubmitApplicationRequest{
				ResumePath:  "/r/1.pdf",
				CoverLetter: "I am excited to apply.",
			},
			wantErr: false,
		},
		{
			name: "valid without cover letter",
			request: SubmitApplicationRequest{
				ResumePath: "/r/1.pdf",
			},
			wantErr: false,
		},
		{
			name:    "missing resume path",
			request: SubmitApplicationRequest{CoverLetter: "hi"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangeStatusRequest_Validation(t *testing.T) {
	reason := "position filled"

	valid := ChangeStatusRequest{
		Status:          "rejected",
		RejectionReason: &reason,
	}
	require.NoError(t, valid.Validate())

	missing := ChangeStatusRequest{}
	assert.Error(t, missing.Validate())
}

func TestScheduleInterviewRequest_Validation(t *testing.T) {
	valid := ScheduleInterviewRequest{
		Date:     time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Type:     "onsite",
		Location: "HQ, floor 3",
		Notes:    "panel",
	}
	require.NoError(t, valid.Validate())

	missing := ScheduleInterviewRequest{Notes: "panel"}
	assert.Error(t, missing.Validate())
}
