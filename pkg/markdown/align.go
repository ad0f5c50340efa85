package markdown

import "strings"

// NotFound is the Consumed value of an Alignment that did not match.
const NotFound = -1

// Alignment is the result of locating a needle inside a plaintext buffer.
type Alignment struct {
	// Prefix is the buffer up to and including the first occurrence of the needle.
	Prefix string
	// Consumed is len(Prefix), or NotFound.
	Consumed int
}

// Found reports whether the needle was located.
func (a Alignment) Found() bool {
	return a.Consumed != NotFound
}

// Align locates the first occurrence of needle in haystack. An empty needle
// never matches.
//
//	Align("Hello world", "world")   => {"Hello world", 11}
//	Align("Hello world", "bananas") => {"", -1}
func Align(haystack, needle string) Alignment {
	if needle == "" {
		return Alignment{Consumed: NotFound}
	}
	i := strings.Index(haystack, needle)
	if i == -1 {
		return Alignment{Consumed: NotFound}
	}
	end := i + len(needle)
	return Alignment{Prefix: haystack[:end], Consumed: end}
}
