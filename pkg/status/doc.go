/*
Package status tracks what happened to a file across a rewrite.

	+-------------+       +-------------+
	|   before    |       |    after    |
	|  FileInfo   |       |  FileInfo   |
	+------+------+       +------+------+
	       |                     |
	       +------+   +----------+
	              |   |
	          +---+---+---+
	          |  Compare  |
	          +-----------+
	                |
	           FileStatus

🎯 Purpose:
- Snapshot file content as size, mode and SHA-256 checksum
- Derive a FileStatus (new, modified, unchanged, deleted) from two snapshots

The package does no I/O. Callers read the bytes and hand them to Describe,
which keeps it usable both for real files and in-memory buffers.

🔍 Example:

	before := status.Describe(path, original, fi.Mode())
	after := status.Describe(path, rewritten, fi.Mode())

	if status.Compare(before, after) == status.StatusUnchanged {
		// nothing to report
	}
*/
package status
