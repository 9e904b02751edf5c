package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/retromat/retromat-backend/modules/plan/domain/titleparts"
	"github.com/retromat/retromat-backend/pkg/mtrand"
)

const activitiesPerPlan = 5

// TitleIdChooser picks a title id for a plan. The draws are seeded from the
// plan's activity ids, so a plan always gets the same title.
type TitleIdChooser struct {
	parts *titleparts.TitleParts
}

func NewTitleIdChooser(parts *titleparts.TitleParts) *TitleIdChooser {
	return &TitleIdChooser{parts: parts}
}

// ChooseTitleID maps "a-b-c-d-e" to "{sequence}:{term}-{term}-...".
// Inputs without exactly five ids, and parts with an empty sequence list or
// group, yield "".
func (c *TitleIdChooser) ChooseTitleID(activityIDs string) string {
	ids := strings.Split(activityIDs, "-")
	if len(ids) != activitiesPerPlan {
		return ""
	}

	rng := mtrand.New(PlanSeed(ids))

	sequenceID, ok := draw(rng, len(c.parts.SequenceOfGroups))
	if !ok {
		return ""
	}
	groupIDs := c.parts.SequenceOfGroups[sequenceID]

	termIDs := make([]string, len(groupIDs))
	for i, groupID := range groupIDs {
		termID, ok := draw(rng, len(c.parts.GroupsOfTerms[groupID]))
		if !ok {
			return ""
		}
		termIDs[i] = strconv.Itoa(termID)
	}
	return strconv.Itoa(sequenceID) + ":" + strings.Join(termIDs, "-")
}

func draw(rng *mtrand.Source, n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	v, err := rng.Range(0, int64(n-1))
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// PlanSeed joins ids with "0", reads the leading integer of the result and
// truncates it to the 32 bits the generator is seeded with.
func PlanSeed(ids []string) uint32 {
	return uint32(leadingInt(strings.Join(ids, "0")))
}

// leadingInt parses optional leading whitespace, an optional sign and the
// longest run of digits that follows. Overflow saturates.
func leadingInt(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n uint64
	overflow := false
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if overflow {
			continue
		}
		d := uint64(s[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			overflow = true
			continue
		}
		n = n*10 + d
	}

	switch {
	case overflow && negative:
		return math.MinInt64
	case overflow:
		return math.MaxInt64
	case negative:
		return -int64(n)
	default:
		return int64(n)
	}
}
