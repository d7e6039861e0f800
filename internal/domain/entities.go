package domain

import "strings"

// Document is a single remotely-hosted file listed by the server.
type Document struct {
	ID      string `json:"_id,omitempty"` // Server-issued identifier (may be empty)
	URL     string `json:"url"`           // Absolute location of the file
	Subject string `json:"subject"`       // Display title
	Branch  string `json:"branch"`        // Branch code, e.g. "CSE"
	Type    string `json:"type"`          // Paper type, e.g. "Mid Sem"
}

// Key returns the identifier used for deduplication and rendering.
// Falls back to the URL when the server issued no ID.
func (d Document) Key() string {
	if d.ID != "" {
		return d.ID
	}
	return d.URL
}

// GetTitle returns the display title
func (d Document) GetTitle() string {
	return d.Subject
}

// GetDescription returns secondary info for display
func (d Document) GetDescription() string {
	return BranchFullForm(d.Branch)
}

var branchNames = map[string]string{
	"ME":  "Mechanical Engineering",
	"CSE": "Computer Science",
	"CE":  "Civil Engineering",
	"EE":  "Electrical Engineering",
}

// BranchFullForm expands a branch code. Unknown codes are returned unchanged.
func BranchFullForm(code string) string {
	if name, ok := branchNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// BranchCodes returns the known branch codes and their full names.
func BranchCodes() map[string]string {
	out := make(map[string]string, len(branchNames))
	for k, v := range branchNames {
		out[k] = v
	}
	return out
}

// ShareMessage returns the text used when sharing a document.
func ShareMessage(d Document) string {
	return "Check out this PDF: " + d.URL
}
