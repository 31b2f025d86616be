// Package grid maps minutes left onto the countdown grid.
//
// Cells are numbered in descending raster order: the top-left cell carries
// the highest index and the bottom-right cell index 1. A cell is filled when
// minutes left reach its index, so the countdown drains toward the
// bottom-right corner.
package grid
