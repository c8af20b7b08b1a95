package service

import (
	"testing"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
)

func clientMatches(pairs ...[2]int64) []model.CharacterClientMatch {
	matches := make([]model.CharacterClientMatch, 0, len(pairs))
	for _, p := range pairs {
		matches = append(matches, model.CharacterClientMatch{CharacterID: p[0], ClientID: p[1]})
	}
	return matches
}

func TestValidateCastBijection(t *testing.T) {
	tests := []struct {
		name         string
		characterIDs []int64
		clientIDs    []int64
		matches      []model.CharacterClientMatch
		wantErr      bool
	}{
		{
			name:         "strict bijection",
			characterIDs: []int64{10, 11},
			clientIDs:    []int64{100, 101},
			matches:      clientMatches([2]int64{10, 101}, [2]int64{11, 100}),
		},
		{
			name:         "single pair",
			characterIDs: []int64{10},
			clientIDs:    []int64{100},
			matches:      clientMatches([2]int64{10, 100}),
		},
		{
			name:         "missing match",
			characterIDs: []int64{10, 11},
			clientIDs:    []int64{100, 101},
			matches:      clientMatches([2]int64{10, 100}),
			wantErr:      true,
		},
		{
			name:         "character matched twice",
			characterIDs: []int64{10, 11},
			clientIDs:    []int64{100, 101},
			matches:      clientMatches([2]int64{10, 100}, [2]int64{10, 101}),
			wantErr:      true,
		},
		{
			name:         "client matched twice",
			characterIDs: []int64{10, 11},
			clientIDs:    []int64{100, 101},
			matches:      clientMatches([2]int64{10, 100}, [2]int64{11, 100}),
			wantErr:      true,
		},
		{
			name:         "foreign character",
			characterIDs: []int64{10},
			clientIDs:    []int64{100},
			matches:      clientMatches([2]int64{99, 100}),
			wantErr:      true,
		},
		{
			name:         "unlinked client",
			characterIDs: []int64{10},
			clientIDs:    []int64{100},
			matches:      clientMatches([2]int64{10, 999}),
			wantErr:      true,
		},
		{
			name:         "too many matches",
			characterIDs: []int64{10},
			clientIDs:    []int64{100, 101},
			matches:      clientMatches([2]int64{10, 100}, [2]int64{10, 101}),
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCastBijection(tt.characterIDs, tt.clientIDs, tt.matches)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
