// Package sanitizer provides input normalization for free text and contact data.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully and never return errors.
package sanitizer
