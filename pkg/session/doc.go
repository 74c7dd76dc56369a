/*
Package session holds the registry of the single session the server currently drives.

The registry is a cache of what the engine reported on open-session: an identifier and a
declared type. It never owns driver resources. Opening a new session overwrites the slot;
closing one clears it.

The registry guards its own slot, but it does not serialize tool calls. Two overlapping calls
can still observe each other's writes between their engine round trips.
*/
package session
