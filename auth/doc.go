// Package auth implements the token based session core for the zones
// API: credential verification, access/refresh token issuance and
// rotation, and password management.
//
// Tokens are signed, self contained values. An access token is short
// lived and authorizes individual requests; a refresh token is long
// lived and is only accepted by the refresh flow, which rotates the
// whole pair. The signing secret is injected at construction and is
// the single trust root.
package auth
