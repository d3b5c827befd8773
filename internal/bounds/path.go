package bounds

import (
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// Path returns the stroke path of a linear element in element-local
// coordinates, or nil for other kinds and for fewer than two points.
func (e *Engine) Path(el *scene.Element) geom.Path {
	l, ok := el.Linear()
	if !ok {
		return nil
	}
	if el.IsDeleted {
		return strokePath(l)
	}
	if c, ok := e.paths[el.ID]; ok && c.version == el.Version {
		return c.path
	}
	p := strokePath(l)
	e.paths[el.ID] = pathEntry{version: el.Version, path: p}
	return p
}

// strokePath builds one cubic per segment. Straight shapes use degenerate
// cubics; curved shapes with three or more points follow a Catmull-Rom
// spline through every point with the endpoints duplicated.
func strokePath(l *scene.Linear) geom.Path {
	pts := l.Points
	if len(pts) < 2 {
		return nil
	}

	path := make(geom.Path, 0, len(pts)-1)
	if !l.Curved || len(pts) < 3 {
		for i := 0; i+1 < len(pts); i++ {
			path = append(path, geom.LineCubic(pts[i], pts[i+1]))
		}
		return path
	}

	padded := make([]geom.Point, 0, len(pts)+2)
	padded = append(padded, pts[0])
	padded = append(padded, pts...)
	padded = append(padded, pts[len(pts)-1])

	for i := 1; i+2 < len(padded); i++ {
		p0, p1, p2, p3 := padded[i-1], padded[i], padded[i+1], padded[i+2]
		path = append(path, geom.Cubic{
			P0: p1,
			P1: p1.Add(p2.Sub(p0).Scale(1.0 / 6)),
			P2: p2.Sub(p3.Sub(p1).Scale(1.0 / 6)),
			P3: p2,
		})
	}
	return path
}

// globalTransform maps element-local coordinates to scene space.
func globalTransform(el *scene.Element, center geom.Point) geom.Matrix2D {
	return geom.ElementTransform(el.X, el.Y, el.Angle, center)
}
