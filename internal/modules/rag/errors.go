package rag

import "errors"

var (
	// ErrForbidden means the caller's clearance does not permit any of the
	// information relevant to the query.
	ErrForbidden = errors.New("access to the requested information is denied")

	// ErrNotFound means the retrieval step produced no candidate chunks.
	ErrNotFound = errors.New("no relevant documents found")
)
