package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sheetgrip/internal/domain"
)

func TestRunFirstTerminalStateSticks(t *testing.T) {
	r := newRun(domain.SearchRequest{Folder: "/d", Query: "x"})
	r.setTotal(2)
	r.addMatch(domain.Match{Filename: "a.xlsx", Sheet: "S"})

	res := r.finish(domain.StateCancelled)
	assert.Equal(t, domain.StateCancelled, res.State)

	r.addMatch(domain.Match{Filename: "b.xlsx", Sheet: "S"})
	res = r.finish(domain.StateCompleted)
	assert.Equal(t, domain.StateCancelled, res.State)
	assert.Len(t, res.Matches, 1)
	assert.Equal(t, domain.StateCancelled, r.State())
}
