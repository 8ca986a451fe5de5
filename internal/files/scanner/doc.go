// Package scanner expands command line inputs into the files to convert.
//
// A file argument is taken as-is, whatever its extension. A directory
// argument expands to the delimited files directly inside it (.csv, .tsv,
// .tab and their .gz/.zst variants), sorted by name. Subdirectories are not
// descended into.
//
// The scanner is filesystem-agnostic through the
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
