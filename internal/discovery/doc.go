// Package discovery produces the ordered sequence of candidate frame paths.
//
// Two source modes exist: a capture directory, listed in lexicographic
// filename order and filtered to content-sniffed images, or an explicit
// list file whose line order is preserved verbatim. Discovery only yields
// paths; ordinal frame ids are assigned downstream by the frame registry.
package discovery
