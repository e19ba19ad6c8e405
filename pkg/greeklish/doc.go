// Package greeklish generates the Latin-alphabet ("Greeklish") spellings a
// user might type for a lowercase Greek word.
//
// Generation runs in three stages: optional reverse stemming into sibling
// inflected forms (Variants), digraph folding (Fold), and bounded expansion of
// every character into its Latin renderings (Expand). Rule tables are built
// once at package initialisation and never modified, so every function here
// is safe for concurrent use.
package greeklish
