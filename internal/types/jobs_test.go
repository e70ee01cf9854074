package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCreateJobRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateJobRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: CreateJobRequest{
				Title:       "Backend Engineer",
				Description: "<p>Build APIs</p>",
				Location:    "Berlin",
				JobType:     "full_time",
				Skills:      []string{"go", "postgres"},
				SalaryMin:   intPtr(60000),
				SalaryMax:   intPtr(85000),
			},
			wantErr: false,
		},
		{
			name: "unknown job type",
			request: CreateJobRequest{
				Title:       "Backend Engineer",
				Description: "desc",
				Location:    "Berlin",
				JobType:     "freelance",
			},
			wantErr: true,
		},
		{
			name: "missing title",
			request: CreateJobRequest{
				Description: "desc",
				Location:    "Berlin",
				JobType:     "full_time",
			},
			wantErr: true,
		},
		{
			name: "salary min above max",
			request: CreateJobRequest{
				Title:       "Backend Engineer",
				Description: "desc",
				Location:    "Berlin",
				JobType:     "full_time",
				SalaryMin:   intPtr(90000),
				SalaryMax:   intPtr(60000),
			},
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

func TestUpdateJobRequest_Validation(t *testing.T) {
	status := "closed"
	valid := UpdateJobRequest{Status: &status}
	require.NoError(t, valid.Validate())

	bad := "archived"
	invalid := UpdateJobRequest{Status: &bad}
	assert.Error(t, invalid.Validate())

	ranged := UpdateJobRequest{ExperienceMin: intPtr(5), ExperienceMax: intPtr(2)}
	assert.Error(t, ranged.Validate())
}
