// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stroke converts stroked polylines into polygons to be filled
// with the non-zero rule.
//
// The outline of a stroke is the union of simple pieces:
//   - a quadrilateral for every segment,
//   - a wedge (bevel, miter or round) at every interior vertex,
//   - a cap at both ends of every open sub-path.
//
// All pieces are emitted with the same orientation so that overlapping
// pieces never cancel under the non-zero rule.
//
// Dash splits polylines into dashes before expansion. Dash lengths are in
// the same space as the polylines, so callers dash and expand in user
// space and transform the resulting polygons to device space afterwards.
package stroke
