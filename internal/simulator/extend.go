package simulator

import (
	"time"

	"github.com/synthfeed/pkg/models"
)

// Extension tuning. Drift magnitude grows with distance from the current
// period; per-point noise keeps extended periods from looking like copies.
const (
	extendDriftFrac = 0.025
	extendNoiseFrac = 0.004
	extendPriceMin  = 0.01
)

// Points flattens a bar series into chart points using bar closes.
func Points(series models.Series) []models.PricePoint {
	points := make([]models.PricePoint, 0, len(series.Bars))
	for _, b := range series.Bars {
		points = append(points, models.PricePoint{Time: b.Timestamp, Price: b.Close})
	}
	return points
}

// Authoritative filters out interpolated points, leaving only real samples.
// Statistics and point-identification must run over this subset.
func Authoritative(points []models.PricePoint) []models.PricePoint {
	out := make([]models.PricePoint, 0, len(points))
	for _, p := range points {
		if !p.Interpolated {
			out = append(out, p)
		}
	}
	return out
}

// ExtendPeriods stretches one rendered period backward into periods total
// periods. Each prior period replays the template's prices shifted by a
// seeded drift whose magnitude grows with distance, plus small per-point
// noise. The most recent period keeps its original prices unchanged; every
// point is relabeled onto the uniform, longer timeline.
func ExtendPeriods(symbol string, points []models.PricePoint, periods int) ([]models.PricePoint, error) {
	if symbol == "" {
		return nil, models.ErrInvalidSymbol
	}
	if periods <= 1 || len(points) < 2 {
		out := make([]models.PricePoint, len(points))
		copy(out, points)
		return out, nil
	}

	seed := SymbolSeed(symbol)
	n := len(points)
	end := points[n-1].Time
	span := points[n-1].Time.Sub(points[0].Time)
	step := span / time.Duration(n-1)
	if step <= 0 {
		step = time.Minute
	}
	periodSpan := span + step

	var mean float64
	for _, p := range points {
		mean += p.Price
	}
	mean /= float64(n)

	out := make([]models.PricePoint, 0, periods*n)
	for k := periods - 1; k >= 1; k-- {
		drift := mix2Signed(seed^chExtendDrift, uint32(k)) * extendDriftFrac * mean * float64(k)
		for i, p := range points {
			jitter := mix2Signed(seed^chExtendNoise, uint32(k*4096+i)) * extendNoiseFrac * mean
			price := Round2(p.Price + drift + jitter)
			if price < extendPriceMin {
				price = extendPriceMin
			}
			out = append(out, models.PricePoint{
				Time:  end.Add(-time.Duration(k)*periodSpan - time.Duration(n-1-i)*step),
				Price: price,
			})
		}
	}
	for i, p := range points {
		out = append(out, models.PricePoint{
			Time:  end.Add(-time.Duration(n-1-i) * step),
			Price: p.Price,
		})
	}
	return out, nil
}

// Interpolate inserts perGap synthetic points between every pair of
// consecutive real points for a smoother visual curve. Inserted points are
// flagged so consumers exclude them from statistics and lookups.
func Interpolate(points []models.PricePoint, perGap int, seed uint32) []models.PricePoint {
	if perGap <= 0 || len(points) < 2 {
		out := make([]models.PricePoint, len(points))
		copy(out, points)
		return out
	}

	out := make([]models.PricePoint, 0, len(points)+(len(points)-1)*perGap)
	for i := 0; i < len(points)-1; i++ {
		p, q := points[i], points[i+1]
		out = append(out, p)

		gap := q.Price - p.Price
		dt := q.Time.Sub(p.Time)
		for j := 1; j <= perGap; j++ {
			f := float64(j) / float64(perGap+1)
			jitter := mix2Signed(seed^chInterpolate, uint32(i*64+j)) * 0.15 * gap
			out = append(out, models.PricePoint{
				Time:         p.Time.Add(time.Duration(f * float64(dt))),
				Price:        Round2(p.Price + gap*smoothstep(f) + jitter),
				Interpolated: true,
			})
		}
	}
	return append(out, points[len(points)-1])
}
