// Package luminance computes the per-frame brightness metric feeding the
// smoother: a Rec.601-weighted combination of whole-image channel averages,
// cached across runs through the metadata store.
package luminance
