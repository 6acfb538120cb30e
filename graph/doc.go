// Package graph provides a generic directed weighted graph with a
// predicate-terminated Dijkstra search. It knows nothing about stations,
// trains or time; node identity and edge payloads are type parameters.
package graph
