package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRawPair(t *testing.T) {
	p := NewRawPair("/data/a", "x.txt", "case one", "decision one")

	assert.True(t, p.Complete())
	assert.Equal(t, "x.txt", p.Name)
	assert.Equal(t, "/data/a", p.Dir)
	assert.Equal(t, "case one", *p.Judgement)
	assert.Equal(t, "decision one", *p.Summary)
}

func TestRawPair_Complete(t *testing.T) {
	s := "text"
	tests := []struct {
		name string
		pair RawPair
		want bool
	}{
		{"both", RawPair{Judgement: &s, Summary: &s}, true},
		{"no judgement", RawPair{Summary: &s}, false},
		{"no summary", RawPair{Judgement: &s}, false},
		{"neither", RawPair{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pair.Complete())
		})
	}
}
