// Package backend is the thin client for the hosted database service.
//
// All persistence in the application goes through this package: user and
// resource directories, meeting records (joined with their organizer), and
// the avatar storage bucket used by the seed tool. Calls map one-to-one onto
// the service's REST surface; there is no caching and no retry policy, so
// every failure surfaces immediately to the caller.
package backend
