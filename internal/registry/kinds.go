package registry

import "github.com/aolshev/rigscene/internal/model"

// coreKinds are the sensor kinds every application instance starts with.
// Read-out widths follow the usual conventions: positions and axes are
// 3-vectors, orientations are unit quaternions.
var coreKinds = []*KindDefinition{
	{
		Kind:        "framepos",
		Description: "world-frame position of the observed object",
		Dim:         3,
		ObjTypes:    []model.ObjType{model.ObjBody, model.ObjGeom},
	},
	{
		Kind:        "framequat",
		Description: "world-frame orientation of the observed object",
		Dim:         4,
		ObjTypes:    []model.ObjType{model.ObjBody, model.ObjGeom},
	},
	{
		Kind:        "framexaxis",
		Description: "world-frame x axis of the observed object's frame",
		Dim:         3,
		ObjTypes:    []model.ObjType{model.ObjBody, model.ObjGeom},
	},
	{
		Kind:        "framelinvel",
		Description: "world-frame linear velocity of the observed body",
		Dim:         3,
		ObjTypes:    []model.ObjType{model.ObjBody},
	},
	{
		Kind:        "frameangvel",
		Description: "world-frame angular velocity of the observed body",
		Dim:         3,
		ObjTypes:    []model.ObjType{model.ObjBody},
	},
}
