// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"sort"
)

// subsamples is the number of vertical sample rows per pixel row.
const subsamples = 4

type crossing struct {
	x       float32
	winding int8
}

// Fill scan-converts the edge list into a w by h alpha mask using the
// non-zero winding rule. Each pixel row is sampled at subsamples
// vertical offsets; horizontal coverage within a span is fractional at
// the span ends, so diagonal and curved edges come out antialiased.
func Fill(edges *EdgeList, w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || edges.Len() == 0 {
		return mask
	}

	row := make([]float32, w)
	crossings := make([]crossing, 0, 16)

	for py := 0; py < h; py++ {
		for i := range row {
			row[i] = 0
		}
		for s := 0; s < subsamples; s++ {
			y := float32(py) + (float32(s)+0.5)/subsamples

			crossings = crossings[:0]
			for i := range edges.edges {
				e := &edges.edges[i]
				if y < e.YMin || y >= e.YMax {
					continue
				}
				crossings = append(crossings, crossing{x: e.XAtY(y), winding: e.Winding})
			}
			if len(crossings) < 2 {
				continue
			}
			sort.Slice(crossings, func(a, b int) bool {
				return crossings[a].x < crossings[b].x
			})

			winding := 0
			var spanStart float32
			for _, c := range crossings {
				if winding == 0 {
					spanStart = c.x
				}
				winding += int(c.winding)
				if winding == 0 {
					accumulateSpan(row, spanStart, c.x)
				}
			}
		}

		off := mask.PixOffset(0, py)
		for x := 0; x < w; x++ {
			v := row[x] / subsamples
			if v > 1 {
				v = 1
			}
			mask.Pix[off+x] = uint8(v*255 + 0.5)
		}
	}
	return mask
}

// accumulateSpan adds one subsample row's coverage for [x0, x1) into
// the row buffer, with fractional coverage at the end pixels.
func accumulateSpan(row []float32, x0, x1 float32) {
	if x1 <= x0 {
		return
	}
	w := float32(len(row))
	if x0 < 0 {
		x0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if x1 <= x0 {
		return
	}

	ix0 := int(x0)
	ix1 := int(x1)
	if ix1 >= len(row) {
		ix1 = len(row) - 1
	}

	if ix0 == ix1 {
		row[ix0] += x1 - x0
		return
	}
	row[ix0] += float32(ix0+1) - x0
	for x := ix0 + 1; x < ix1; x++ {
		row[x] += 1
	}
	row[ix1] += x1 - float32(ix1)
}
