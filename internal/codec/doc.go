// Package codec is the image decode/encode boundary of the pipeline.
//
// The rest of the system only ever asks two things of an image: its average
// channel intensities (analysis phase) and a brightness-scaled re-encoding
// (apply phase). Both run behind the Codec interface so tests can substitute
// fakes and the pipeline never touches pixels directly.
//
// Two implementations exist: the pure-Go Imaging codec
// (disintegration/imaging + bild), and the default Vips codec which routes
// the apply phase through libvips when it has been initialized and falls
// back to pure Go otherwise.
package codec
