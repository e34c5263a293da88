package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateReport(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	report := &model.ResultReport{Status: "success"}

	tests := []struct {
		report  *model.ResultReport
		wantErr error
		name    string
		errText string
		teams   []string
	}{
		{
			name:   "valid report",
			report: report,
			teams:  []string{"Bayern München"},
		},
		{
			name:    "nil report",
			report:  nil,
			teams:   []string{"Bayern München"},
			wantErr: ErrNilParameter,
			errText: "report",
		},
		{
			name:    "no teams",
			report:  report,
			teams:   nil,
			wantErr: ErrEmptySlice,
			errText: "teams",
		},
		{
			name:    "blank team names the position",
			report:  report,
			teams:   []string{"Bayern München", " "},
			wantErr: ErrEmptyString,
			errText: "teams[1]",
		},
		{
			name:   "empty report is storable",
			report: &model.ResultReport{},
			teams:  []string{"Unbekannter Verein"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReport(model.ResultQuery{Teams: tt.teams, StartDate: start}, tt.report)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateReport() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateReport() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("validateReport() error should contain %q, got %v", tt.errText, err)
			}
		})
	}
}
