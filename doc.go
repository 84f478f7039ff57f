// Package updatecheck reports whether a newer version of a package is
// available, caching answers so repeated checks stay off the network.
//
// A check sends one PUT to a version registry and compares the version it
// returns with the running one. Answers are kept in memory for an hour and
// shared with other processes on the machine through a JSON file in the temp
// directory. The file is read and replaced without locking; when two processes
// race, entries are merged by keeping the most recent answer per package
// version, and a lost write only costs a later cache miss.
//
// # Quick Start
//
// Build one [Client] per process and reuse it:
//
//	c := updatecheck.New()
//	if r := c.Check(ctx, "mytool", "1.4.0", nil); r != nil {
//	    fmt.Println(r)
//	}
//
// Or print the message directly:
//
//	c.UpdateCheck(ctx, os.Stderr, "mytool", "1.4.0", map[string]any{"channel": "stable"})
//
// Checks never return errors. Network failures, malformed responses and
// unreadable cache files all read as "no update available"; pass
// [WithLogger] to see them.
package updatecheck
