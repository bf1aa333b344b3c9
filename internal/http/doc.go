// Package http serves the read-only content API over net/http.
//
// Routes:
//   - Health and metrics: /health, /metrics
//   - Blog: /blog/posts, /blog/posts/{slug}, /blog/featured, /blog/categories
//   - Admin: /admin/blog/posts
//   - Projects: /projects, /projects/{slug}, /projects/featured
//
// Listings are JSON arrays; paging is reported in X-Total-Count, X-Page,
// X-Page-Size, and X-Total-Pages headers.
package http
