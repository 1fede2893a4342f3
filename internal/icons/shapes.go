package icons

// Icon outlines in unit coordinates. Holes wind the other way from their
// enclosing shape so the rasterizer cancels them out.

type point struct{ x, y float32 }

type path []point

func rect(x0, y0, x1, y1 float32) path {
	return path{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func hole(x0, y0, x1, y1 float32) path {
	return path{{x0, y0}, {x0, y1}, {x1, y1}, {x1, y0}}
}

func frame(x0, y0, x1, y1, t float32) []path {
	return []path{rect(x0, y0, x1, y1), hole(x0+t, y0+t, x1-t, y1-t)}
}

// octagon approximates a circle of radius r around (cx, cy).
func octagon(cx, cy, r float32, reverse bool) path {
	k := r * 0.4142
	p := path{
		{cx - k, cy - r}, {cx + k, cy - r}, {cx + r, cy - k}, {cx + r, cy + k},
		{cx + k, cy + r}, {cx - k, cy + r}, {cx - r, cy + k}, {cx - r, cy - k},
	}
	if reverse {
		for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
			p[i], p[j] = p[j], p[i]
		}
	}
	return p
}

func ring(cx, cy, r, t float32) []path {
	return []path{octagon(cx, cy, r, false), octagon(cx, cy, r-t, true)}
}

func join(groups ...[]path) []path {
	var out []path
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

const stroke = 0.08

var shapes = map[Icon][]path{
	Folder: join(
		frame(0.08, 0.3, 0.92, 0.85, stroke),
		[]path{{{0.08, 0.18}, {0.4, 0.18}, {0.48, 0.3}, {0.08, 0.3}}},
	),
	File: join(
		frame(0.2, 0.1, 0.8, 0.9, stroke),
	),
	Text: join(
		frame(0.2, 0.1, 0.8, 0.9, stroke),
		[]path{rect(0.32, 0.3, 0.68, 0.36), rect(0.32, 0.46, 0.68, 0.52), rect(0.32, 0.62, 0.58, 0.68)},
	),
	Image: join(
		frame(0.1, 0.18, 0.9, 0.82, stroke),
		[]path{{{0.2, 0.72}, {0.42, 0.42}, {0.6, 0.72}}, rect(0.62, 0.3, 0.72, 0.4)},
	),
	Book: join(
		frame(0.18, 0.1, 0.82, 0.9, stroke),
		[]path{rect(0.3, 0.1, 0.36, 0.9)},
	),
	Recent: join(
		ring(0.5, 0.5, 0.4, stroke),
		[]path{rect(0.46, 0.22, 0.54, 0.54), rect(0.46, 0.46, 0.72, 0.54)},
	),
	Settings: join(
		ring(0.5, 0.5, 0.3, 0.1),
		[]path{
			rect(0.44, 0.08, 0.56, 0.22), rect(0.44, 0.78, 0.56, 0.92),
			rect(0.08, 0.44, 0.22, 0.56), rect(0.78, 0.44, 0.92, 0.56),
		},
	),
	Transfer: []path{
		{{0.3, 0.1}, {0.5, 0.35}, {0.36, 0.35}, {0.36, 0.62}, {0.24, 0.62}, {0.24, 0.35}, {0.1, 0.35}},
		{{0.64, 0.38}, {0.76, 0.38}, {0.76, 0.65}, {0.9, 0.65}, {0.7, 0.9}, {0.5, 0.65}, {0.64, 0.65}},
	},
	Library: []path{
		rect(0.12, 0.15, 0.28, 0.88), rect(0.34, 0.15, 0.5, 0.88),
		{{0.58, 0.2}, {0.72, 0.15}, {0.9, 0.84}, {0.76, 0.88}},
	},
	Wifi: []path{
		{{0.05, 0.35}, {0.5, 0.1}, {0.95, 0.35}, {0.88, 0.43}, {0.5, 0.22}, {0.12, 0.43}},
		{{0.2, 0.52}, {0.5, 0.34}, {0.8, 0.52}, {0.73, 0.6}, {0.5, 0.46}, {0.27, 0.6}},
		octagon(0.5, 0.74, 0.1, false),
	},
	Hotspot: join(
		ring(0.5, 0.5, 0.42, stroke),
		ring(0.5, 0.5, 0.26, stroke),
		[]path{octagon(0.5, 0.5, 0.09, false)},
	),
	Cover: join(
		frame(0.12, 0.08, 0.88, 0.92, stroke),
		[]path{{{0.26, 0.74}, {0.44, 0.46}, {0.6, 0.74}}, rect(0.58, 0.26, 0.7, 0.38)},
	),
}
