// Package gitrepo exposes the git operations needed to publish files to a
// tracked branch of a local working copy.
//
// Repository binds a working copy path to a git executor and offers fetch,
// checkout, hard reset, staging, a staged-change query, commit and push.
// Every call blocks until git exits; any non-zero exit is returned as an error.
package gitrepo
