// Package m3u reads and writes the minimal M3U playlist shape: an optional
// #EXTM3U header line followed by two-line channel entries.
//
// Each [Entry] is an #EXTINF metadata line ("#EXTINF:<duration-or-attrs>,<name>")
// and the location line that follows it. Both lines are kept verbatim (trimmed),
// so a [Playlist] parsed from well-formed text serializes back to the same text.
//
// Parsing walks the lines after the first one in pairs. A pair whose first line
// is not an #EXTINF line is dropped, which is the only lossy part of a round-trip.
// A trailing #EXTINF line with no location line is rejected with
// [shared.ErrMalformedFile] unless [ParseOptions.Lenient] is set.
package m3u
