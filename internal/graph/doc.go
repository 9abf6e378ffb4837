// Package graph is the pure model underneath the workflow engine. It holds
// the immutable node/edge/graph value types and the algorithms that operate
// on them: adjacency construction, cycle detection, topological sorting,
// parallel grouping, resource-dependency inference, and graph metrics.
//
// Everything in this package is side-effect free. Functions take nodes and
// edges and return new values; nothing here performs I/O, logs, or mutates
// its inputs. That property is what lets the executor share a validated
// graph across workers without locking.
package graph
