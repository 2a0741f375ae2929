package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr string
	}{
		{"ok", "Fix bug", ""},
		{"empty", "", "title is required"},
		{"whitespace", "   ", "title is required"},
		{"at limit", strings.Repeat("x", maxTitleLength), ""},
		{"too long", strings.Repeat("x", maxTitleLength+1), "title must be 500 characters or less"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormTitle(tt.title)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCreateFormRequest(t *testing.T) {
	req := createFormValues{Title: "  Fix bug ", Description: "NPE\n", Assignee: " alice "}.request()
	assert.Equal(t, "Fix bug", req.Title)
	assert.Equal(t, "NPE\n", req.Description)
	require.NotNil(t, req.Assignee)
	assert.Equal(t, "alice", *req.Assignee)

	req = createFormValues{Title: "t", Assignee: "   "}.request()
	assert.Nil(t, req.Assignee)
}
