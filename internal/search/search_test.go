package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/examvault/internal/domain"
)

func fixtures() []domain.Document {
	return []domain.Document{
		{ID: "1", URL: "u1", Subject: "Data Structures", Branch: "CSE", Type: "Mid Sem"},
		{ID: "2", URL: "u2", Subject: "Thermodynamics", Branch: "ME", Type: "End Sem"},
		{ID: "3", URL: "u3", Subject: "Circuit Theory", Branch: "EE", Type: "Quiz"},
		{ID: "4", URL: "u4", Subject: "Compiler Design", Branch: "cse", Type: "End Sem"},
	}
}

func keys(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Key()
	}
	return out
}

func TestFilter_EmptyQueryIsIdentity(t *testing.T) {
	items := fixtures()
	got := Filter(items, "")
	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("Filter(items, \"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_CaseInsensitiveBranch(t *testing.T) {
	items := []domain.Document{
		{ID: "a", Subject: "Networks", Branch: "CSE", Type: "Mid Sem"},
		{ID: "b", Subject: "Machines", Branch: "ME", Type: "Mid Sem"},
	}
	got := Filter(items, "cse")
	assert.Equal(t, []string{"a"}, keys(got))
}

func TestFilter_MatchesAnyField(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"subject", "thermo", []string{"2"}},
		{"branch", "EE", []string{"3"}},
		{"type", "end sem", []string{"2", "4"}},
		{"shared type fragment", "sem", []string{"1", "2", "4"}},
		{"no match", "biology", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys(Filter(fixtures(), tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	once := Filter(fixtures(), "sem")
	twice := Filter(once, "sem")
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("re-filtering changed result (-once +twice):\n%s", diff)
	}
}

func TestFilter_IgnoresUnrelatedFields(t *testing.T) {
	items := fixtures()
	shuffled := fixtures()
	for i := range shuffled {
		shuffled[i].URL = "changed-" + shuffled[i].URL
	}
	assert.Equal(t, keys(Filter(items, "sem")), keys(Filter(shuffled, "sem")))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := fixtures()
	out := Filter(items, "")
	out[0].Subject = "mutated"
	assert.Equal(t, "Data Structures", items[0].Subject)
}

func TestRank(t *testing.T) {
	results := Rank(fixtures(), "cmpdsgn")
	if assert.NotEmpty(t, results) {
		assert.Equal(t, "4", results[0].Document.Key())
		assert.NotEmpty(t, results[0].MatchedIndexes)
	}

	assert.Nil(t, Rank(fixtures(), "  "))
}

func TestSuggest(t *testing.T) {
	got := Suggest(fixtures(), "mech")
	assert.Contains(t, got, "Mechanical Engineering")
	assert.LessOrEqual(t, len(got), maxSuggestions)

	assert.Nil(t, Suggest(fixtures(), ""))
}
