// Package zilien reads the tab-separated files produced by Spectro
// Inlets' Zilien acquisition software into measurement payloads.
//
// # File Layout
//
// A Zilien file has three regions. First a metadata preamble of
// five-field lines (name, comment, series attachment, type, value); the
// second line declares how many preamble lines the file has in total.
// Then two header rows: the series header row labels column blocks (a
// device like "iongauge value" or an MS channel like "C0M2"), and the
// column header row names the individual columns ("Time [s]",
// "Pressure [mbar]", "M2-H2 [A]"). Finally the numeric matrix, one
// tab-separated row per sample tick, with empty cells where a block has
// no sample.
//
// Each column block carries its own elapsed-time column followed by one
// or more value columns. Files of format version 2 and higher may embed a
// complete Biologic potentiostat dataset under the reserved series header
// "EC-lab"; its rows interleave several experiment/technique runs, which
// the reader splits back into separate series groups.
//
// # Reading
//
// Read ingests a stitched file. The technique option controls which
// blocks are kept: electrochemistry blocks need an EC-capable technique,
// MS channel blocks an MS-capable one. ReadSpectrum ingests a single
// mass-scan spectrum file, and ReadTmpDir recovers a measurement from the
// per-stream files the software leaves behind when it exits before
// stitching. Inputs compressed with gzip (".gz") or zstandard (".zst")
// are decompressed transparently.
package zilien
