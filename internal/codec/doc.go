// Package codec encodes and decodes the signalctl backing file.
//
// Two line-oriented formats are supported:
//   - jsonl: one JSON object per line (the default)
//   - csv: RFC 4180 records id,location,density,timing,congested
//
// The csv codec reads files written by the earlier comma-joined format as long
// as no location contains a comma, which that format could not represent.
//
// Both codecs write the congested flag for human readers and ignore its value
// on decode: congestion is always recomputed from density. Lines that cannot be
// decoded are reported in Decoded.Skipped and never abort a decode.
package codec
