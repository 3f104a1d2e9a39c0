// Package jwtgrant sources granted permission tags from verified JWT
// access tokens. The token's "grants" claim carries the caller's tags and
// the subject claim names the caller for audit output.
//
// The package only reads claims; it issues nothing and manages no
// sessions. Token issuance belongs to the host's identity layer.
package jwtgrant
