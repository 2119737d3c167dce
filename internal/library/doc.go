// Package library discovers media files that still need conversion.
//
// The scan is purely name-based: a file qualifies when its extension is one
// of the source formats, regardless of content. Movie directories are read
// one level deep; TV directories are walked recursively because episodes
// nest under show and season folders. A missing root yields an empty result
// rather than an error so an unconfigured category is simply a no-op.
package library
