package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBranchFullForm(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ME", "Mechanical Engineering"},
		{"CSE", "Computer Science"},
		{"CE", "Civil Engineering"},
		{"EE", "Electrical Engineering"},
		{"cse", "Computer Science"},
		{"ECE", "ECE"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, BranchFullForm(tt.code))
		})
	}
}

func TestBranchCodes_ReturnsCopy(t *testing.T) {
	codes := BranchCodes()
	codes["ME"] = "changed"
	assert.Equal(t, "Mechanical Engineering", BranchFullForm("ME"))
}

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "abc", Document{ID: "abc", URL: "https://x/a.pdf"}.Key())
	assert.Equal(t, "https://x/a.pdf", Document{URL: "https://x/a.pdf"}.Key())
}

func TestShareMessage(t *testing.T) {
	doc := Document{URL: "https://files.example.com/os.pdf"}
	assert.Equal(t, "Check out this PDF: https://files.example.com/os.pdf", ShareMessage(doc))
}

func TestShowPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		state ListState
		want  bool
	}{
		{"first launch loading", ListState{IsLoading: true, Page: 1}, true},
		{"hydrated from cache", ListState{IsLoading: true, Page: 1, Items: []Document{{ID: "a"}}}, false},
		{"refreshing", ListState{IsRefreshing: true, Page: 1}, false},
		{"loading more", ListState{IsLoading: true, Page: 2}, false},
		{"idle", ListState{Page: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.ShowPlaceholder())
		})
	}
}
