// Package file reads the movie-dialogue corpus from disk.
//
// Both files are ISO-8859-1 text with one record per line and fields
// joined by " +++$+++ ". Each file is read fully into memory and the
// handle released before parsing.
//
// The package also provides an fsnotify-based Watcher that signals
// when either corpus file changes.
package file
