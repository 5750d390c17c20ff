//go:build windows

package winproc

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/danmuck/depforge/internal/buildlog"
	"github.com/google/uuid"
	"golang.org/x/sys/windows"
)

const (
	pipeBufferSize = 50_000
	// pipeReadChunk is the fixed-size buffer a single read() drains at
	// most — spec.md §4.2: "a small fixed buffer... one read() call
	// returns at most one buffer's worth and callers loop."
	pipeReadChunk = 4096
)

// PipeTimeout bounds how long a pending read waits for completion before
// checkPending gives up for this iteration, spec.md §4.2's "configured
// pipe timeout".
var PipeTimeout = 250 * time.Millisecond

// AsyncPipe is a one-direction overlapped named pipe the parent can drain
// without blocking. Exactly one of {idle, pending} holds at any time —
// spec.md §3's AsyncPipe invariant.
type AsyncPipe struct {
	name    string
	read    *Handle
	event   *Handle
	ov      windows.Overlapped
	pending bool
	buf     [pipeReadChunk]byte
}

// NewAsyncPipe constructs an unconnected pipe. Call Create to actually make
// the OS objects.
func NewAsyncPipe(toolName string) *AsyncPipe {
	return &AsyncPipe{name: pipeName(toolName)}
}

func pipeName(toolName string) string {
	return fmt.Sprintf(`\\.\pipe\depforge-%s-%s`, toolName, uuid.NewString())
}

// Create forms the named pipe, a non-inheritable read handle kept by the
// parent, an inheritable write handle meant for the child, and a
// manual-reset event bound to the overlapped descriptor — spec.md §4.2's
// five construction steps. It returns the write-side handle to hand to the
// child's StartupInfo.
func (p *AsyncPipe) Create() (windows.Handle, error) {
	sa := &windows.SecurityAttributes{
		Length:        uint32(unsafe.Sizeof(windows.SecurityAttributes{})),
		InheritHandle: 1,
	}

	namePtr, err := windows.UTF16PtrFromString(p.name)
	if err != nil {
		return windows.InvalidHandle, buildlog.BailOutErrno("pipe name encode failed", err)
	}

	pipeHandle, err := windows.CreateNamedPipe(
		namePtr,
		windows.PIPE_ACCESS_DUPLEX|windows.FILE_FLAG_OVERLAPPED,
		windows.PIPE_TYPE_BYTE|windows.PIPE_READMODE_BYTE|windows.PIPE_WAIT,
		1,
		pipeBufferSize,
		pipeBufferSize,
		uint32(PipeTimeout.Milliseconds()),
		sa,
	)
	if err != nil {
		return windows.InvalidHandle, buildlog.BailOutErrno("CreateNamedPipe failed", err)
	}
	pipe := NewHandle(pipeHandle)

	// The parent's own read handle must not be inheritable: only the
	// write side, opened separately below, is meant to cross into the
	// child's StartupInfo.
	var readRaw windows.Handle
	proc := windows.CurrentProcess()
	if err := windows.DuplicateHandle(
		proc, pipe.Raw(), proc, &readRaw, 0, false, windows.DUPLICATE_SAME_ACCESS,
	); err != nil {
		pipe.Close()
		return windows.InvalidHandle, buildlog.BailOutErrno("DuplicateHandle for pipe failed", err)
	}
	p.read = NewHandle(readRaw)

	writeRaw, err := windows.CreateFile(
		namePtr,
		windows.FILE_WRITE_DATA|windows.SYNCHRONIZE,
		0,
		sa,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		pipe.Close()
		p.read.Close()
		return windows.InvalidHandle, buildlog.BailOutErrno("CreateFile for pipe write side failed", err)
	}

	eventRaw, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		pipe.Close()
		p.read.Close()
		windows.CloseHandle(writeRaw)
		return windows.InvalidHandle, buildlog.BailOutErrno("CreateEvent failed", err)
	}
	p.event = NewHandle(eventRaw)
	p.ov.HEvent = eventRaw

	// The server-side pipe handle itself is not needed past construction;
	// the duplicated read handle and the opened write handle are what the
	// parent and child respectively use.
	pipe.Close()

	return writeRaw, nil
}

// Read implements spec.md §4.2's read() contract.
func (p *AsyncPipe) Read() ([]byte, error) {
	if p.pending {
		return p.checkPending()
	}
	return p.tryRead()
}

func (p *AsyncPipe) tryRead() ([]byte, error) {
	var bytesRead uint32
	err := windows.ReadFile(p.read.Raw(), p.buf[:], &bytesRead, &p.ov)
	if err == nil {
		return append([]byte(nil), p.buf[:bytesRead]...), nil
	}

	switch err {
	case windows.ERROR_IO_PENDING:
		p.pending = true
		return nil, nil
	case windows.ERROR_BROKEN_PIPE:
		return nil, nil
	default:
		return nil, buildlog.BailOutErrno("async pipe read failed", err)
	}
}

func (p *AsyncPipe) checkPending() ([]byte, error) {
	waitResult, err := windows.WaitForSingleObject(p.event.Raw(), uint32(PipeTimeout.Milliseconds()))
	if err != nil {
		return nil, buildlog.BailOutErrno("WaitForSingleObject in async pipe failed", err)
	}
	_ = waitResult

	var bytesRead uint32
	err = windows.GetOverlappedResult(p.read.Raw(), &p.ov, &bytesRead, false)
	if err == nil {
		windows.ResetEvent(p.event.Raw())
		p.pending = false
		return append([]byte(nil), p.buf[:bytesRead]...), nil
	}

	switch err {
	case windows.ERROR_IO_INCOMPLETE:
		return nil, nil
	case windows.WAIT_TIMEOUT:
		return nil, nil
	case windows.ERROR_BROKEN_PIPE:
		p.pending = false
		return nil, nil
	default:
		return nil, buildlog.BailOutErrno("GetOverlappedResult failed in async pipe", err)
	}
}

// Pending reports whether a read is currently outstanding, the invariant
// spec.md §8 quantifies.
func (p *AsyncPipe) Pending() bool {
	return p.pending
}

// Close releases the pipe's read handle and event. The write-side handle
// passed to Create's caller is owned by whoever passed it to the child
// process and is closed there.
func (p *AsyncPipe) Close() error {
	err1 := p.read.Close()
	err2 := p.event.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
