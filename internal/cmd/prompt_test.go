package cmd

import (
	"testing"

	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/hoppxi/runa/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestPromptLabelsAreUnique(t *testing.T) {
	results := []search.Candidate{
		{Kind: search.Catalog, Entry: catalog.NewEntry("Files", "Application", catalog.Launch{Path: "a"})},
		{Kind: search.Catalog, Entry: catalog.NewEntry("Files", "Application", catalog.Launch{Path: "b"})},
		{Kind: search.Calculation, Entry: catalog.NewEntry("24", "", catalog.CopyText{Text: "24"})},
	}
	assert.Equal(t, []string{"Files  (Application)", "Files  (Application) #2", "24"}, promptLabels(results))
}
