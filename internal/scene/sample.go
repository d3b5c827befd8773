package scene

import "github.com/storiny/web-sub003/internal/geom"

// NewSampleScene returns a small scene covering every geometry path the
// editor handles: boxes, a bound captioned arrow, a curved line and a stroke.
func NewSampleScene() *Scene {
	s := NewScene()

	rect := New(&Generic{Form: KindRectangle}, 100, 100, 200, 150)
	ellipse := New(&Generic{Form: KindEllipse}, 500, 120, 160, 120)
	diamond := New(&Generic{Form: KindDiamond}, 320, 360, 120, 120)
	diamond.Angle = 0.3

	arrow := NewLinear(308, 175, true, geom.Pt(0, 0), geom.Pt(184, 5))
	arrowData, _ := arrow.Linear()
	arrowData.StartBinding = &Binding{ElementID: rect.ID, Gap: 8}
	arrowData.EndBinding = &Binding{ElementID: ellipse.ID, Gap: 8}

	caption := New(&Text{Text: "depends on", FontSize: 16, ContainerID: arrow.ID}, 360, 168, 80, 20)
	arrowData.CaptionID = caption.ID
	arrow.BoundElements = []BoundElement{{ID: caption.ID, Type: KindText}}

	rect.BoundElements = []BoundElement{{ID: arrow.ID, Type: KindArrow}}
	ellipse.BoundElements = []BoundElement{{ID: arrow.ID, Type: KindArrow}}

	curve := NewLinear(80, 420, false, geom.Pt(0, 0), geom.Pt(80, -60), geom.Pt(160, 20), geom.Pt(220, -30))
	curveData, _ := curve.Linear()
	curveData.Curved = true

	stroke := New(&Freedraw{
		Points: []geom.Point{{X: 0, Y: 0}, {X: 12, Y: 8}, {X: 30, Y: 4}, {X: 45, Y: 20}},
	}, 600, 400, 45, 20)

	for _, el := range []*Element{rect, ellipse, diamond, arrow, caption, curve, stroke} {
		s.Add(el)
	}
	return s
}
