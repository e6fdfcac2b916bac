package nano

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbsmedya/discbot/internal/logger"
	"github.com/dbsmedya/discbot/internal/text"
)

// Controller answers disc commands.
type Controller struct {
	store   Store
	format  Formatter
	botName string
	logger  *logger.Logger
}

// NewController creates a controller. botName is the character that clickable
// choices send their /tell to.
func NewController(store Store, format Formatter, botName string, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Controller{
		store:   store,
		format:  format,
		botName: botName,
		logger:  log,
	}
}

// Handle resolves arg to a disc and returns the reply. Every outcome the user
// can cause is a reply; an error means the store itself failed.
func (c *Controller) Handle(ctx context.Context, arg string) (text.Pages, error) {
	in := ResolveInput(arg)

	var disc *DiscRecord
	switch in.Kind {
	case ByID:
		found, err := c.store.FindByID(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("find disc %d: %w", in.ID, err)
		}
		if found == nil {
			c.logger.Debugw("Disc id not found", "disc_id", in.ID, "link_name", in.LinkName)
			if !LooksLikeDisc(in.LinkName) {
				return text.Single(in.Raw + " is not an instruction disc."), nil
			}
			return text.Single(in.Raw + " cannot be made into a nano anymore."), nil
		}
		disc = found

	default:
		discs, err := c.store.FindByName(ctx, in.Raw)
		if err != nil {
			return nil, fmt.Errorf("find discs by name %q: %w", in.Raw, err)
		}
		c.logger.Debugw("Disc name search", "term", in.Raw, "matches", len(discs))
		switch len(discs) {
		case 0:
			return text.Single("Either " + text.TagHighlight + in.Raw + text.TagEnd +
				" was mistyped or it cannot be turned into a nano anymore."), nil
		case 1:
			disc = &discs[0]
		default:
			return c.choiceDialogue(discs), nil
		}
	}

	details, err := c.store.FindNanoDetails(ctx, disc.CrystalID)
	if err != nil {
		return nil, fmt.Errorf("find nano details for crystal %d: %w", disc.CrystalID, err)
	}
	return text.Single(c.describe(disc, details)), nil
}

// describe renders the single-result answer.
func (c *Controller) describe(disc *DiscRecord, details *NanoDetails) string {
	discLink := c.format.MakeItem(disc.DiscID, disc.DiscID, disc.DiscQuality, disc.DiscName)
	nanoLink := c.format.MakeItem(disc.CrystalID, disc.CrystalID, disc.CrystalQuality, disc.CrystalName)

	msg := discLink + " will turn into " + nanoLink
	if extra := detailList(details); extra != "" {
		msg += " (" + extra + ")"
	}
	msg += "."
	if disc.Comment != "" {
		msg += " " + text.TagRed + disc.Comment + text.TagEnd
	}
	return msg
}

// detailList joins the known parts of details, skipping the blank ones.
func detailList(details *NanoDetails) string {
	if details == nil {
		return ""
	}
	var parts []string
	if details.Profession != "" {
		parts = append(parts, details.Profession)
	}
	if details.NanolineName != "" {
		parts = append(parts, text.TagHighlight+details.NanolineName+text.TagEnd)
	}
	if details.Location != "" {
		parts = append(parts, details.Location)
	}
	return strings.Join(parts, ", ")
}

// choiceDialogue lists every match as a link that re-runs the command with
// that disc's item reference, which always resolves to exactly one disc.
func (c *Controller) choiceDialogue(discs []DiscRecord) text.Pages {
	entries := make([]string, 0, len(discs))
	for _, disc := range discs {
		discLink := c.format.MakeItem(disc.DiscID, disc.DiscID, disc.DiscQuality, disc.DiscName)
		entries = append(entries, c.format.MakeChatCmd(disc.DiscName, "/tell "+c.botName+" disc "+discLink))
	}

	blob := c.format.MakeBlob(
		fmt.Sprintf("%d matches matching your search", len(discs)),
		strings.Join(entries, "\n"+text.PageBreak),
		"Multiple matches, please choose one",
	)
	return blob.Map(func(page string) string {
		return "Found " + page + "."
	})
}
