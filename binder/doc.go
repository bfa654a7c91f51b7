// Package binder populates request structs from path parameters, the query
// string and JSON bodies. Each binder only touches fields carrying its own tag
// (`path`, `query`, `json`), so several binders can fill one struct.
// Every failure has ErrBindFailed in its chain.
package binder
