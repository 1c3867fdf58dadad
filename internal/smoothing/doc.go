// Package smoothing flattens short-term fluctuation in the luminance series
// with a multi-pass rolling average while leaving the long-term exposure
// trend of the sequence intact.
package smoothing
