package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/retromat/retromat-backend/modules/plan/domain/titleparts"
)

var ErrUnknownSequence = errors.New("unknown title sequence")

// TitleIdGenerator enumerates the title ids a sequence can produce.
type TitleIdGenerator struct {
	parts *titleparts.TitleParts
}

func NewTitleIdGenerator(parts *titleparts.TitleParts) *TitleIdGenerator {
	return &TitleIdGenerator{parts: parts}
}

func (g *TitleIdGenerator) sequence(sequenceID int) ([]string, error) {
	if sequenceID < 0 || sequenceID >= len(g.parts.SequenceOfGroups) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSequence, sequenceID)
	}
	return g.parts.SequenceOfGroups[sequenceID], nil
}

func (g *TitleIdGenerator) groupSizes(sequenceID int) ([]int, error) {
	groups, err := g.sequence(sequenceID)
	if err != nil {
		return nil, err
	}
	sizes := make([]int, len(groups))
	for i, groupID := range groups {
		terms, err := g.parts.Group(groupID)
		if err != nil {
			return nil, err
		}
		sizes[i] = len(terms)
	}
	return sizes, nil
}

func (g *TitleIdGenerator) CountCombinationsInSequence(sequenceID int) (int, error) {
	sizes, err := g.groupSizes(sequenceID)
	if err != nil {
		return 0, err
	}
	total := 1
	for _, size := range sizes {
		total *= size
	}
	return total, nil
}

func (g *TitleIdGenerator) CountCombinationsInAllSequences() int {
	total := 0
	for sequenceID := range g.parts.SequenceOfGroups {
		n, err := g.CountCombinationsInSequence(sequenceID)
		if err != nil {
			continue
		}
		total += n
	}
	return total
}

// GenerateIDs lists every id of the sequence, last group varying fastest.
func (g *TitleIdGenerator) GenerateIDs(sequenceID int) ([]string, error) {
	sizes, err := g.groupSizes(sequenceID)
	if err != nil {
		return nil, err
	}
	total, _ := g.CountCombinationsInSequence(sequenceID)

	ids := make([]string, 0, total)
	prefix := strconv.Itoa(sequenceID) + ":"
	collect(sizes, make([]string, 0, len(sizes)), func(termIDs []string) {
		ids = append(ids, prefix+strings.Join(termIDs, "-"))
	})
	return ids, nil
}

func collect(sizes []int, chosen []string, emit func([]string)) {
	if len(sizes) == 0 {
		emit(chosen)
		return
	}
	for i := 0; i < sizes[0]; i++ {
		collect(sizes[1:], append(chosen, strconv.Itoa(i)), emit)
	}
}
