// Package imaging connects the detection pipeline to real image files.
//
// It covers everything on either side of the pixel pipeline:
//   - Decoding: ImageCache loads PNG, JPEG and GIF files and SplitChannels
//     turns an image into the red, green and blue buffers the pipeline reads.
//   - Cropping: CropPlate, EncodePlate and SavePlate cut the detected plate
//     out of the original image.
//   - Annotation: Annotate draws the plate box over an image, DebugPanel
//     composes the input channels and the final mask into one figure, and
//     FinalImage, GreyImage, MaskImage and LabelImage render intermediate
//     buffers.
//   - Colour: PlateColors reports the dominant colours inside a plate box.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. Plate
// boxes come from the detection package and are inclusive on all sides; they
// are always relative to the image's own top-left corner, even when the
// image bounds do not start at the origin.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The channel buffers it hands out are
// shared and must not be modified.
package imaging
