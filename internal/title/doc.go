// Package title resolves display titles for box URLs.
// Resolution is best effort: callers fall back to their own default on
// any error.
package title
