// Package sanitizer provides input normalization for event and booking data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// Normalization includes:
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Slugs: lowercase, collapse every run of non-alphanumerics into a single
//     hyphen, strip leading/trailing hyphens - "Go Meetup 2026!" becomes
//     "go-meetup-2026"
//   - Slices: trim elements in place, keeping blanks so validation can reject them
package sanitizer
