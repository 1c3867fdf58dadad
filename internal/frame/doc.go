// Package frame defines the Frame record and the ordered Registry that the
// pipeline phases hand off between each other.
package frame
