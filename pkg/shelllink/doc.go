// Package shelllink reads and writes Windows shell link (.lnk) files.
//
// The codec understands the parts of the format that decide where a
// shortcut points: the LinkInfo structure, the target ID list and the
// environment variable block. Everything else (string data, the remaining
// extra data blocks) is carried through unchanged when a link is retargeted.
//
// Two editors are available. The native editor works on any platform over
// an afero filesystem. The COM editor drives WScript.Shell and only exists
// on Windows.
package shelllink
