package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/retromat/retromat-backend/modules/plan/domain/titleparts"
)

var ErrMalformedTitleID = errors.New("malformed title id")

type TitleRenderer struct {
	parts *titleparts.TitleParts
}

func NewTitleRenderer(parts *titleparts.TitleParts) *TitleRenderer {
	return &TitleRenderer{parts: parts}
}

// Render turns "{sequence}:{term}-{term}" into its words. Empty terms are
// skipped so optional groups do not leave double spaces.
func (r *TitleRenderer) Render(titleID string) (string, error) {
	seqPart, termPart, ok := strings.Cut(titleID, ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMalformedTitleID, titleID)
	}
	sequenceID, err := strconv.Atoi(seqPart)
	if err != nil || sequenceID < 0 || sequenceID >= len(r.parts.SequenceOfGroups) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSequence, seqPart)
	}
	groups := r.parts.SequenceOfGroups[sequenceID]

	termIDs := strings.Split(termPart, "-")
	if len(termIDs) != len(groups) {
		return "", fmt.Errorf("%w: %q has %d terms, sequence %d has %d groups",
			ErrMalformedTitleID, titleID, len(termIDs), sequenceID, len(groups))
	}

	words := make([]string, 0, len(groups))
	for i, groupID := range groups {
		terms, err := r.parts.Group(groupID)
		if err != nil {
			return "", err
		}
		idx, err := strconv.Atoi(termIDs[i])
		if err != nil || idx < 0 || idx >= len(terms) {
			return "", fmt.Errorf("%w: term %q out of range for group %q", ErrMalformedTitleID, termIDs[i], groupID)
		}
		if term := strings.TrimSpace(terms[idx]); term != "" {
			words = append(words, term)
		}
	}
	return strings.Join(words, " "), nil
}
