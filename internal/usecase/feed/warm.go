package feed

import (
	"context"
	"errors"
	"fmt"

	"spectrum-feed/internal/domain/entity"
)

// Grid returns perAxis×perAxis evenly spaced points covering the rectangle
// [min, max]. perAxis below 1 yields no points; 1 yields the centre.
func Grid(min, max entity.Coordinate, perAxis int) []entity.Coordinate {
	if perAxis < 1 {
		return nil
	}
	if perAxis == 1 {
		return []entity.Coordinate{{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}}
	}

	step := func(lo, hi float64, i int) float64 {
		if i == perAxis-1 {
			return hi
		}
		return lo + (hi-lo)*float64(i)/float64(perAxis-1)
	}

	points := make([]entity.Coordinate, 0, perAxis*perAxis)
	for i := 0; i < perAxis; i++ {
		for j := 0; j < perAxis; j++ {
			points = append(points, entity.Coordinate{
				X: step(min.X, max.X, i),
				Y: step(min.Y, max.Y, j),
			})
		}
	}
	return points
}

// WarmResult summarises a cache warming run.
type WarmResult struct {
	Points int
	Warmed int
	Failed int
}

// Warm refreshes the cached feed at every point. It keeps going after a
// failure and returns the joined errors alongside the counts. A cancelled
// context stops the run early.
func (s *Service) Warm(ctx context.Context, points []entity.Coordinate) (WarmResult, error) {
	res := WarmResult{Points: len(points)}
	var errs []error
	for _, p := range points {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.Refresh(ctx, p.X, p.Y); err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("warm (%g, %g): %w", p.X, p.Y, err))
			continue
		}
		res.Warmed++
	}
	return res, errors.Join(errs...)
}
