// Package mediatypes classifies candidate frame files by image subtype.
//
// Classification is two-stage: ByExtension gives a cheap pre-filter from
// the filename, and Sniff confirms the subtype from the file header via
// the registered image decoders (stdlib JPEG/PNG/GIF plus golang.org/x/image
// BMP, TIFF and WebP). Discovery relies on the sniffed result, not the
// extension, so a mislabeled file cannot slip a non-image into the batch.
package mediatypes
