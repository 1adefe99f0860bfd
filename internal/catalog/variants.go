package catalog

// coreVariants are the built-in manipulation scenarios. They assume the
// workspace declares a counted block prototype named "block" and a "home"
// keyframe, as the bundled scenes do.
var coreVariants = []*Variant{
	{
		ID:          "pick_cube",
		Description: "single cube to pick up and lift",
		BodyCounts:  map[string]int{"block": 1},
		Keyframe:    "home",
	},
	{
		ID:          "stack_cubes",
		Description: "three cubes to stack into a tower",
		BodyCounts:  map[string]int{"block": 3},
		Keyframe:    "home",
	},
	{
		ID:          "arrange_boxes",
		Description: "five boxes to arrange on the table",
		BodyCounts:  map[string]int{"block": 5},
		Keyframe:    "home",
	},
}
