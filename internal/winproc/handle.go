//go:build windows

// Package winproc is the process-execution core: a Windows kernel handle
// wrapper, an overlapped-IO async pipe, a fluent process spec builder, and
// a process runner that joins a spawned child while draining its pipes and
// honoring cooperative interrupts. It assumes Windows overlapped-IO and
// console-process-group semantics throughout (spec.md §1 Non-goals): the
// whole package is windows-only, not just the syscall-heavy files — a port
// to another OS would re-derive the per-OS mechanism in a sibling package
// rather than add build tags inside this one.
package winproc

import "golang.org/x/sys/windows"

// Handle owns exactly one OS kernel handle. It is the RAII-equivalent
// called for in spec.md §9's design note: a nil *Handle means "no handle".
// A non-nil Handle that has been closed or released holds
// windows.InvalidHandle and reports Valid() == false.
type Handle struct {
	raw windows.Handle
}

// NewHandle wraps a raw handle already known to be valid. Passing
// windows.InvalidHandle is a programmer error; callers that might receive
// it should check before wrapping.
func NewHandle(raw windows.Handle) *Handle {
	return &Handle{raw: raw}
}

// Raw observes the underlying value without transferring ownership.
func (h *Handle) Raw() windows.Handle {
	if h == nil {
		return windows.InvalidHandle
	}
	return h.raw
}

// Valid reports whether this Handle owns a resource that still needs
// closing.
func (h *Handle) Valid() bool {
	return h != nil && h.raw != windows.InvalidHandle && h.raw != 0
}

// Close releases the underlying handle exactly once. Closing a nil or
// already-released Handle is a no-op, matching the smart-handle deleter's
// "destruction calls close unless invalid or explicitly released" rule.
func (h *Handle) Close() error {
	if h == nil || !h.Valid() {
		return nil
	}
	raw := h.raw
	h.raw = windows.InvalidHandle
	return windows.CloseHandle(raw)
}

// Release transfers ownership out without closing, returning the raw value
// and leaving the Handle empty. Used when a handle is handed to another
// owner (e.g. duplicated into a child's startup info).
func (h *Handle) Release() windows.Handle {
	if h == nil {
		return windows.InvalidHandle
	}
	raw := h.raw
	h.raw = windows.InvalidHandle
	return raw
}

// Reset closes whatever this Handle currently owns (if anything) and takes
// ownership of raw instead.
func (h *Handle) Reset(raw windows.Handle) {
	_ = h.Close()
	h.raw = raw
}
