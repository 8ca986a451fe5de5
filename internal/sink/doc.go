// Package sink provides the destinations a rendered script can be sent to:
// a text stream (ConsoleSink) or a relational store (StoreSink).
package sink
