// Package lock serializes read-modify-write cycles on a single course.
//
// Course documents are read, changed in memory and written back whole. Two
// writers racing on the same course would silently overwrite each other, so
// every mutation holds the lock "curso:<id>" for the duration of the cycle.
//
// Local is enough for a single process. Redis (SET NX PX with a token checked
// on release) shares the lock across replicas; the TTL bounds how long a
// crashed holder can block others.
package lock
