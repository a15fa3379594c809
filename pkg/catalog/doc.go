// Package catalog is the read side of the library: books, authors,
// publishers. It performs no caching of its own (the backend caches these
// listings server-side) and adds only the merge the view layer always needs:
// each book annotated with whether the current user has it reserved.
package catalog
