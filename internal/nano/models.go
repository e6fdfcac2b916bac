// Package nano implements the disc command: it tells which nano program an
// instruction disc turns into.
package nano

import (
	"context"
	"strings"

	"github.com/dbsmedya/discbot/internal/text"
)

// DiscRecord is one row of the discs reference table.
type DiscRecord struct {
	DiscID         int
	DiscName       string
	DiscQuality    int
	CrystalID      int
	CrystalQuality int
	CrystalName    string
	Comment        string // empty when absent
}

// NanoDetails describes the nano program a crystal teaches. Fields are empty
// when the nano has no nanoline or the data does not know them.
type NanoDetails struct {
	Profession   string
	NanolineName string
	Location     string
}

// Store is the read-only reference data the command queries.
type Store interface {
	// FindByID returns nil and no error when no disc has that id.
	FindByID(ctx context.Context, discID int) (*DiscRecord, error)
	// FindByName returns every disc whose name contains all search tokens,
	// in whatever order the store yields them.
	FindByName(ctx context.Context, term string) ([]DiscRecord, error)
	// FindNanoDetails returns nil and no error when the crystal is unknown.
	FindNanoDetails(ctx context.Context, crystalID int) (*NanoDetails, error)
}

// Formatter renders chat markup. *text.Formatter satisfies it.
type Formatter interface {
	MakeItem(lowID, highID, ql int, name string) string
	MakeChatCmd(label, command string) string
	MakeBlob(name, content, header string) text.Pages
}

// SearchTokens splits a free-text search term on whitespace.
func SearchTokens(term string) []string {
	return strings.Fields(term)
}
