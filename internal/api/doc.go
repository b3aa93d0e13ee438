// Package api implements the low-level HTTP client for the 1secmail web API.
//
// The API is a single GET endpoint selected by an "action" query parameter.
// All responses are JSON except attachment downloads, which return raw bytes.
package api
