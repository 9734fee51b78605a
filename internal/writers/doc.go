// Package writers holds helpers for writing to stdout when the reader on
// the other end may go away (coiextract ... | head).
package writers
