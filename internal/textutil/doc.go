// Package textutil provides small text helpers for report shaping.
package textutil
