package mapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	ID       int    `form:"retromatId"`
	Phase    int    `form:"phase"`
	Name     string `form:"name"`
	Duration string `form:"duration"`
}

func TestRecordMapper_FillsTaggedFields(t *testing.T) {
	var got target
	err := NewRecordMapper().Fill(map[string]any{
		"retromatId": 7,
		"phase":      float64(2),
		"name":       "Mad Sad Glad",
		"unknown":    "ignored",
	}, &got)
	require.NoError(t, err)
	require.Equal(t, target{ID: 7, Phase: 2, Name: "Mad Sad Glad"}, got)
}

func TestRecordMapper_KeepsAbsentFields(t *testing.T) {
	got := target{ID: 1, Name: "old", Duration: "5-10"}
	err := NewRecordMapper().Fill(map[string]any{"name": "new", "phase": nil}, &got)
	require.NoError(t, err)
	require.Equal(t, target{ID: 1, Name: "new", Duration: "5-10"}, got)
}

func TestRecordMapper_InvalidNumber(t *testing.T) {
	var got target
	err := NewRecordMapper().Fill(map[string]any{"retromatId": "abc"}, &got)
	require.Error(t, err)
}

func TestMapViewModels(t *testing.T) {
	out := MapViewModels([]int{1, 2}, func(i int) string { return string(rune('a' + i)) })
	require.Equal(t, []string{"b", "c"}, out)
}

func TestDecodeViolations(t *testing.T) {
	var got target
	err := NewRecordMapper().Fill(map[string]any{"retromatId": "abc", "phase": "x"}, &got)
	violations := DecodeViolations(err)
	require.Len(t, violations, 2)
	require.Equal(t, "phase", violations[0].Path)
	require.Equal(t, "retromatId", violations[1].Path)

	require.Nil(t, DecodeViolations(nil))
	require.Len(t, DecodeViolations(errors.New("boom")), 1)
}
