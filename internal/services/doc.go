// Package services orchestrates a conversion run: expanding inputs,
// loading each table, rendering it and delivering it to the destination.
package services
