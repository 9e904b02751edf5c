package titleparts

import (
	"fmt"
	"os"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"

	"github.com/retromat/retromat-backend/pkg/constants"
)

var ErrUnknownGroup = errors.New("title parts: unknown group")

// TitleParts is the term table plan titles are assembled from. Each sequence
// lists the groups whose terms make up one title shape.
type TitleParts struct {
	SequenceOfGroups [][]string          `yaml:"sequence_of_groups" json:"sequenceOfGroups" validate:"required,min=1,dive,min=1"`
	GroupsOfTerms    map[string][]string `yaml:"groups_of_terms" json:"groupsOfTerms" validate:"required,min=1,dive,min=1"`
}

// Validate checks that every list is non-empty and every referenced group exists.
func (p *TitleParts) Validate() error {
	if err := constants.Validate.Struct(p); err != nil {
		return errors.Wrap(err, "title parts")
	}
	for seqID, groups := range p.SequenceOfGroups {
		for _, groupID := range groups {
			if _, ok := p.GroupsOfTerms[groupID]; !ok {
				return fmt.Errorf("%w: sequence %d references %q", ErrUnknownGroup, seqID, groupID)
			}
		}
	}
	return nil
}

// Group returns the terms of groupID.
func (p *TitleParts) Group(groupID string) ([]string, error) {
	terms, ok := p.GroupsOfTerms[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, groupID)
	}
	return terms, nil
}

func Parse(data []byte) (*TitleParts, error) {
	parts := &TitleParts{}
	if err := yaml.Unmarshal(data, parts); err != nil {
		return nil, errors.Wrap(err, "decode title parts")
	}
	if err := parts.Validate(); err != nil {
		return nil, err
	}
	return parts, nil
}

func Load(path string) (*TitleParts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read title parts %s", path)
	}
	return Parse(data)
}
