// Package grantstore is a Redis-backed granted-permission store. Each
// identity's tags live in one Redis set; Source binds an identity to the
// store as an actiongate.GrantedPermissionSource.
//
// The engine core never writes grants; Grant and Revoke exist for the
// host's administrative surface.
package grantstore
