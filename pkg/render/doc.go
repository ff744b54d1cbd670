// Package render rasterizes animation frames.
//
// A FrameDrawer turns a single draw state into an image: person boxes with
// name labels, and polyline connectors drawn up to each line's current
// progress. WriteFrames renders every frame of a timeline into numbered PNG
// files using a bounded worker pool, ready for ffmpeg.
package render
