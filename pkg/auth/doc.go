// Package auth obtains Keycloak access tokens for the admin API and reads
// the claims that decide which admin shell a user may open.
package auth
