package virtual

import (
	"sort"
)

// Point is one vertex of a setpoint Profile: the target setpoint at the
// given time offset in seconds.
type Point struct {
	Time     float64
	Setpoint float64
}

// Profile linearly interpolates a setpoint ramp through a list of
// points. An implicit starting point at t=0, setpoint 0 is prepended
// unless the profile supplies its own.
type Profile struct {
	points []Point
}

func NewProfile(points []Point) *Profile {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	if len(sorted) == 0 || sorted[0].Time > 0.0 {
		sorted = append([]Point{{Time: 0.0, Setpoint: 0.0}}, sorted...)
	}
	return &Profile{points: sorted}
}

// Duration returns the time of the last profile point in seconds.
func (p *Profile) Duration() float64 {
	return p.points[len(p.points)-1].Time
}

// Setpoint returns the interpolated setpoint at the elapsed time. Past
// the last point the profile holds its final setpoint.
func (p *Profile) Setpoint(now float64) float64 {
	last := p.points[len(p.points)-1]
	if now >= last.Time {
		return last.Setpoint
	}
	index := sort.Search(len(p.points), func(i int) bool {
		return p.points[i].Time > now
	})
	if index == 0 {
		return p.points[0].Setpoint
	}
	prev, next := p.points[index-1], p.points[index]
	return prev.Setpoint +
		(next.Setpoint-prev.Setpoint)/(next.Time-prev.Time)*(now-prev.Time)
}
