// Package preflight provides readiness checks for the external tools and
// filesystem paths that mkvcleaner depends on.
//
// These checks run in two contexts:
//   - The process command calls RunAll before touching any file. If a
//     required check fails, the batch does not start.
//   - The CLI "mkvcleaner status" command renders every result, including
//     the mkvmerge version reported by CheckVersion.
package preflight
