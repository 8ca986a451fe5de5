// Package translate renders a loaded table as a SQL script.
//
// The script is one CREATE TABLE statement whose columns are all TEXT,
// followed by one INSERT statement per record:
//
//	CREATE TABLE people ("name" TEXT, "age" TEXT);
//	INSERT INTO people VALUES ('Ann', '30');
//	INSERT INTO people VALUES ('O''Brien', '41');
//
// Cell values are always quoted as string literals. Identifiers are
// interpolated verbatim unless Options.QuoteIdentifiers is set: a header
// field containing a double quote, or a table name containing SQL syntax,
// produces broken or unintended SQL in the default mode.
package translate
