// SPDX-License-Identifier: MIT
//
// This file holds the shared HCL value-decoding helpers for the model
// package. Scene attributes like positions, orientations, and colors are
// written as HCL tuples; decoding them through raw hcl.Expression values
// keeps the source range available for diagnostics.
package model

import (
	"fmt"

	"github.com/aolshev/rigscene/internal/spatial"
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// exprFloats evaluates expr as a list of numbers. When want is positive the
// list length must match exactly. A nil expression yields a nil slice with no
// diagnostics, so optional attributes fall through cleanly.
func exprFloats(expr hcl.Expression, want int, what string) ([]float64, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if expr == nil {
		return nil, diags
	}

	val, valDiags := expr.Value(nil)
	diags = append(diags, valDiags...)
	if valDiags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, diags
	}

	converted, err := convert.Convert(val, cty.List(cty.Number))
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %s value", what),
			Detail:   fmt.Sprintf("The '%s' attribute must be a list of numbers.", what),
			Subject:  expr.Range().Ptr(),
		})
		return nil, diags
	}

	out := make([]float64, 0, converted.LengthInt())
	for it := converted.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		f, _ := elem.AsBigFloat().Float64()
		out = append(out, f)
	}

	if want > 0 && len(out) != want {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %s length", what),
			Detail:   fmt.Sprintf("The '%s' attribute requires exactly %d elements, got %d.", what, want, len(out)),
			Subject:  expr.Range().Ptr(),
		})
		return nil, diags
	}

	return out, diags
}

// exprPresent reports whether an optional expression attribute was written
// in the source. gohcl hands absent optional hcl.Expression fields to the
// decoder as synthetic expressions that evaluate to null, not as nil, so a
// nil check alone misreads every omitted attribute as set. An expression
// that fails to evaluate counts as present so the failure surfaces where
// the value is decoded.
func exprPresent(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return true
	}
	return !val.IsNull()
}

// exprVec3 evaluates expr as a 3-vector.
func exprVec3(expr hcl.Expression, what string) (*spatial.Vec3, hcl.Diagnostics) {
	elems, diags := exprFloats(expr, 3, what)
	if diags.HasErrors() || elems == nil {
		return nil, diags
	}
	return &spatial.Vec3{X: elems[0], Y: elems[1], Z: elems[2]}, diags
}

// exprOrientation resolves the quat/euler attribute pair into a single unit
// quaternion. Declaring both on the same block is rejected; declaring neither
// yields the identity rotation.
func exprOrientation(quatExpr, eulerExpr hcl.Expression, subject hcl.Range) (spatial.Quat, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	quatSet := exprPresent(quatExpr)
	eulerSet := exprPresent(eulerExpr)

	if quatSet && eulerSet {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Conflicting orientation attributes",
			Detail:   "Only one of 'quat' or 'euler' may be set on the same block.",
			Subject:  &subject,
		})
		return spatial.IdentityQuat(), diags
	}

	if quatSet {
		elems, quatDiags := exprFloats(quatExpr, 4, "quat")
		diags = append(diags, quatDiags...)
		if quatDiags.HasErrors() || elems == nil {
			return spatial.IdentityQuat(), diags
		}
		q := spatial.Quat{W: elems[0], X: elems[1], Y: elems[2], Z: elems[3]}
		if q.Norm() == 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid quat value",
				Detail:   "A quaternion must have nonzero magnitude.",
				Subject:  quatExpr.Range().Ptr(),
			})
			return spatial.IdentityQuat(), diags
		}
		return q.Normalized(), diags
	}

	if eulerSet {
		elems, eulerDiags := exprFloats(eulerExpr, 3, "euler")
		diags = append(diags, eulerDiags...)
		if eulerDiags.HasErrors() || elems == nil {
			return spatial.IdentityQuat(), diags
		}
		return spatial.FromEuler(elems[0], elems[1], elems[2]), diags
	}

	return spatial.IdentityQuat(), diags
}

// vec3OrZero dereferences an optional vector, defaulting to the origin.
func vec3OrZero(v *spatial.Vec3) spatial.Vec3 {
	if v == nil {
		return spatial.Vec3{}
	}
	return *v
}
