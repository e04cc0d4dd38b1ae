// Package filename recognizes series episodes in release file names and
// derives the cleaned output name and container title.
//
// Parse locates the first SxxEyy marker, takes the words before it as the
// series title, and keeps the words after it up to the first quality,
// source, or hash token as the episode title. Common title abbreviations
// such as "Dr." and "Mrs." survive the dot-to-space normalization.
package filename
