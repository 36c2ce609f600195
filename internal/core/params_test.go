package core

import "testing"

func TestSnapshotLookupAndMerge(t *testing.T) {
	a := ParameterSnapshot{Groups: []ParameterGroup{{Name: "Kernel", Params: []Parameter{IntParam("inner_radius", "Inner radius", 7)}}}}
	b := ParameterSnapshot{Groups: []ParameterGroup{{Name: "Display", Params: []Parameter{
		FloatParam("timestep", "Timestep", 0.25),
		BoolParam("smooth_timestepping", "Smooth", true),
		StringParam("color_map_choice", "Palette", "jet"),
	}}}}

	merged := Merge(a, b)
	if len(merged.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(merged.Groups))
	}

	cases := map[string]string{
		"inner_radius":        "7",
		"timestep":            "0.25",
		"smooth_timestepping": "true",
		"color_map_choice":    "jet",
	}
	for key, want := range cases {
		p, ok := merged.Lookup(key)
		if !ok {
			t.Fatalf("missing parameter %q", key)
		}
		if p.Value != want {
			t.Fatalf("%s = %q, want %q", key, p.Value, want)
		}
	}
	if _, ok := merged.Lookup("nope"); ok {
		t.Fatal("unexpected hit for unknown key")
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 1, Max: 10, HasMin: true, HasMax: true}
	if got := c.Clamp(-3); got != 1 {
		t.Fatalf("Clamp(-3) = %f", got)
	}
	if got := c.Clamp(42); got != 10 {
		t.Fatalf("Clamp(42) = %f", got)
	}
	open := ParameterControl{}
	if got := open.Clamp(42); got != 42 {
		t.Fatalf("unbounded Clamp(42) = %f", got)
	}
}
