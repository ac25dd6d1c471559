package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{in: "LEFT", want: SideLeft},
		{in: "center", want: SideCenter},
		{in: " Right ", want: SideRight},
		{in: "", wantErr: true},
		{in: "up", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSide(tt.in)
			if tt.wantErr {
				var vErr *ValidationError
				assert.True(t, errors.As(err, &vErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSource_DistanceTo(t *testing.T) {
	src := Source{ID: "a", X: 0, Y: 0}
	assert.InDelta(t, 5.0, src.DistanceTo(Coordinate{X: 3, Y: 4}), 1e-12)
	assert.Equal(t, 0.0, src.DistanceTo(src.Coordinate()))
}

func TestSource_Validate(t *testing.T) {
	valid := func() Source {
		return Source{ID: "reuters", Name: "Reuters", Side: SideCenter, X: 0, Y: 0.5}
	}

	tests := []struct {
		name      string
		mutate    func(s *Source)
		wantErr   bool
		wantField string
	}{
		{name: "valid", mutate: func(s *Source) {}},
		{name: "valid with feed", mutate: func(s *Source) { s.FeedURL = "https://example.com/rss" }},
		{name: "missing id", mutate: func(s *Source) { s.ID = "" }, wantErr: true, wantField: "id"},
		{name: "missing name", mutate: func(s *Source) { s.Name = "" }, wantErr: true, wantField: "name"},
		{name: "bad side", mutate: func(s *Source) { s.Side = "NORTH" }, wantErr: true, wantField: "side"},
		{name: "NaN x", mutate: func(s *Source) { s.X = math.NaN() }, wantErr: true, wantField: "x"},
		{name: "bad feed", mutate: func(s *Source) { s.FeedURL = "ftp://example.com" }, wantErr: true, wantField: "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := valid()
			tt.mutate(&src)
			err := src.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "want ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}
