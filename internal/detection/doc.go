// Package detection locates a licence plate candidate in an RGB raster using
// classical pixel operations only.
//
// # Pipeline
//
// Pipeline.Run applies a fixed sequence of stages. Each stage reads one
// Buffer and allocates a new one; no stage writes into its input.
//
//  1. Greyscale: BT.601 luma, 0.299*R + 0.587*G + 0.114*B, rounded
//  2. Normalize: stretch min..max to 0..255 (a flat buffer becomes all zeros)
//  3. StdDevFilter: population standard deviation over a 5x5 window;
//     the 2-pixel border is left at 0
//  4. Normalize again, on the texture buffer
//  5. Threshold: samples >= 150 become 255, the rest 0
//  6. DilateN: five passes of 3x3, 8-connected dilation
//  7. ErodeN: five passes of 3x3, 8-connected erosion
//  8. Label: 4-connected breadth-first region labelling in raster order
//  9. SelectLargest + Extract: biggest region wins, lowest label on ties
//
// The constants of steps 3, 5, 6 and 7 live in Config.
//
// # Coordinate System
//
// Buffers are row-major with (0,0) at the top-left; x is the column and y the
// row. BoundingBox edges are inclusive on all four sides.
//
// # Connectivity
//
// Morphology uses the 8-neighbourhood while labelling uses the
// 4-neighbourhood. Two blobs touching only diagonally after erosion are
// therefore counted as separate regions.
//
// # Concurrency
//
// Elementwise stages, the morphology passes and the standard deviation
// filter split their rows across goroutines; each output cell depends only on
// a read-only neighbourhood of the input, so results are identical to a
// sequential run. Labelling is sequential because label ids follow raster
// discovery order.
//
// # Errors
//
//   - A flat input is not an error: Normalize returns zeros.
//   - ErrNoComponentFound: nothing survived morphology.
//   - ErrInvalidLabel: Extract was asked for a label absent from the map.
package detection
