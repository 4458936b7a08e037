// Package xerrors defines the typed error kinds shared by the decoders and
// the archive reader.
package xerrors

import "errors"

// Each value below is a sentinel error identifying one of the documented failure modes.
// Callers compare with errors.Is, since concrete errors are usually wrapped
// with additional context via fmt.Errorf("...: %w", kind).
var (
	// AttachFailed indicates the process-memory backend could not attach
	// to the target process.
	AttachFailed = errors.New("attach failed")

	// BadModule indicates the attached process's main module did not
	// validate (e.g. missing MZ header).
	BadModule = errors.New("bad module")

	// ShortRead indicates a process or archive read returned fewer bytes
	// than requested. Per the best-effort policy this aborts only the
	// current decode stage, not the whole operation.
	ShortRead = errors.New("short read")

	// BadArchiveHeader indicates an IFS package's magic or header failed
	// to validate.
	BadArchiveHeader = errors.New("bad archive header")

	// MissingListfile indicates an IFS package has no "(listfile)" entry,
	// so name resolution cannot proceed.
	MissingListfile = errors.New("missing listfile")

	// UnknownEntry indicates a requested archive entry name has no
	// resolved HET/BET mapping.
	UnknownEntry = errors.New("unknown archive entry")

	// DecryptFailed indicates AES-CTR decryption of an archive payload
	// could not be completed.
	DecryptFailed = errors.New("decrypt failed")

	// InflateFailed indicates zlib decompression of a decrypted payload
	// failed.
	InflateFailed = errors.New("inflate failed")

	// UnsupportedFormat indicates a caller requested an output format this
	// build does not implement (format writers are out of scope here).
	UnsupportedFormat = errors.New("unsupported format")

	// NoLODs indicates a model had zero LODs and so has nothing to
	// translate.
	NoLODs = errors.New("no lods")

	// NotAnError marks a condition that looks like a failure but isn't:
	// the "void" placeholder asset and any pool record whose full pointer
	// set matches it. Callers skip silently rather than logging a warning.
	NotAnError = errors.New("not an error: placeholder asset")
)
