// Package dailyvideos merges the producer's daily video JSON into the copy
// tracked on a publishing branch and pushes the result.
//
// A run resolves today's file name, syncs the working copy to the remote
// branch, merges entries by id (new entries win), rewrites the destination
// file and commits and pushes it when its content changed. Runs are strictly
// sequential and assume a single writer per working copy; nothing here locks
// the working tree against a concurrent run.
package dailyvideos
