// Package lineproto implements the line-oriented command protocol.
//
// Each input line holds one command:
//
//	add "<word> <word> ..." #tag #tag
//	done <id>
//	search <term> <term> ...
//
// A search term is a word or a #tag. Words and tags are non-empty runs of
// alphabet symbols. Words inside the quotes and tags are separated by a
// single space. A single space or tab separates the command name from its
// arguments and the closing quote from the first tag. Trailing spaces, tabs
// and a carriage return are ignored.
//
// Every command produces one response on the output stream:
//
//	add    -> the new record id
//	done   -> done
//	search -> "<n> item(s) found", then one line per record in id order
//
// A line that fails is reported on the error stream as "Error: <message>"
// and processing continues with the next line.
package lineproto
