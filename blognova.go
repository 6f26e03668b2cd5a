// Package blognova holds the domain types shared by every layer of the
// platform. The `db` package persists them, `sudoapi` applies the business
// rules and the `web`/`api` packages expose them over HTTP.
package blognova

const Version = "v0.2.1"

// PageSize is the number of posts shown per feed page.
const PageSize = 10
