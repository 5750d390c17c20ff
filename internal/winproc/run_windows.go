//go:build windows

package winproc

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"github.com/danmuck/depforge/internal/buildlog"
	"golang.org/x/sys/windows"
)

// waitQuantum bounds a single WaitForSingleObject call on the child handle,
// spec.md §4.4/§5's 100ms join-loop quantum.
const waitQuantum = 100 * time.Millisecond

// terminateExitCode is the fallback exit code used when the child's PID is
// unavailable and it must be killed outright, spec.md §4.4.
const terminateExitCode = 0xFFFF

// Runner spawns one child per Spec and drives its join loop. Spec.md §5:
// a Runner makes no concurrent calls on its own state; multiple Runners may
// run in parallel, each owning its own pipes, handle and interrupt flag.
type Runner struct {
	name string

	handle  *Handle
	stdout  *AsyncPipe
	stderr  *AsyncPipe
	code    uint32
	started bool

	interrupt   atomic.Bool
	interrupted bool

	// Sink receives bytes drained from stdout/stderr while joining.
	// Defaults to io.Discard, matching spec.md §9's open question
	// resolved toward "route to a sink" rather than silently dropping.
	Sink io.Writer

	// KillGrace, if non-zero, bounds how long the join loop waits after
	// delivering a console break before forcibly terminating the child.
	// Spec.md §9 leaves this unbounded by default (KillGrace == 0).
	KillGrace time.Duration

	interruptedAt time.Time
}

// NewRunner creates a Runner for one Spec invocation. name is used for
// pipe naming, error messages (spec.md's make_name()) and the tool label
// of buildlog.ProcessExits.
func NewRunner(name string) *Runner {
	return &Runner{name: name, Sink: io.Discard}
}

// Run spawns the child described by spec, wiring its stdout/stderr to two
// AsyncPipes, matching spec.md §4.4's run().
func (r *Runner) Run(spec Spec, dry bool) error {
	buildlog.Tracef(buildlog.New("winproc"), buildlog.CategoryProcess, "> cd %s", spec.Cwd)
	buildlog.Tracef(buildlog.New("winproc"), buildlog.CategoryProcess, "> %s", spec.Command())

	if dry {
		return nil
	}

	r.stdout = NewAsyncPipe(r.name + "-out")
	r.stderr = NewAsyncPipe(r.name + "-err")

	stdoutWrite, err := r.stdout.Create()
	if err != nil {
		return err
	}
	stderrWrite, err := r.stderr.Create()
	if err != nil {
		return err
	}

	comspec := os.Getenv("COMSPEC")
	if comspec == "" {
		return buildlog.BailOut("COMSPEC is not set; cannot locate a shell to run commands")
	}

	cmdLine := fmt.Sprintf(`%s /C "%s"`, comspec, spec.Command())

	var cwdPtr *uint16
	if spec.Cwd != "" {
		if err := os.MkdirAll(spec.Cwd, 0o755); err != nil {
			return buildlog.BailOutErrno("failed to create working directory "+spec.Cwd, err)
		}
		cwdPtr, err = windows.UTF16PtrFromString(spec.Cwd)
		if err != nil {
			return buildlog.BailOutErrno("cwd encode failed", err)
		}
	}

	cmdLinePtr, err := windows.UTF16PtrFromString(cmdLine)
	if err != nil {
		return buildlog.BailOutErrno("command line encode failed", err)
	}

	si := &windows.StartupInfo{
		Cb:         uint32(unsafe.Sizeof(windows.StartupInfo{})),
		Flags:      windows.STARTF_USESTDHANDLES,
		StdOutput:  stdoutWrite,
		StdErr:     stderrWrite,
		StdInput:   windows.Handle(syscall.Stdin),
	}
	pi := &windows.ProcessInformation{}

	var envPtr *uint16
	if len(spec.Env) > 0 {
		envPtr, err = stringsToEnvBlock(spec.Env)
		if err != nil {
			return buildlog.BailOutErrno("env block encode failed", err)
		}
	}

	err = windows.CreateProcess(
		nil,
		cmdLinePtr,
		nil,
		nil,
		true,
		windows.CREATE_NEW_PROCESS_GROUP,
		envPtr,
		cwdPtr,
		si,
		pi,
	)
	windows.CloseHandle(stdoutWrite)
	windows.CloseHandle(stderrWrite)
	if err != nil {
		return buildlog.BailOutErrno(fmt.Sprintf("failed to start %q", comspec), err)
	}

	windows.CloseHandle(pi.Thread)
	r.handle = NewHandle(pi.Process)
	r.started = true
	return nil
}

// Interrupt requests a polite shutdown. Idempotent, safe to call from
// another goroutine while Join is running — spec.md §5's cancellation
// semantics.
func (r *Runner) Interrupt() {
	r.interrupt.Store(true)
}

// Interrupted reports whether Join delivered an interrupt to the child
// before it exited, as opposed to a clean or failing exit on its own.
func (r *Runner) Interrupted() bool {
	return r.interrupted
}

// Join implements spec.md §4.4's join loop: wait on the child in 100ms
// quanta, draining both pipes on every timeout, delivering at most one
// console break once an interrupt is requested.
func (r *Runner) Join(spec Spec) error {
	if !r.started || !r.handle.Valid() {
		return nil
	}
	defer func() {
		r.handle.Close()
		r.stdout.Close()
		r.stderr.Close()
	}()

	for {
		waitResult, err := windows.WaitForSingleObject(r.handle.Raw(), uint32(waitQuantum.Milliseconds()))
		if err != nil {
			return buildlog.BailOutErrno("failed to wait on process", err)
		}

		switch waitResult {
		case windows.WAIT_OBJECT_0:
			var code uint32
			if err := windows.GetExitCodeProcess(r.handle.Raw(), &code); err != nil {
				return buildlog.BailOutErrno("GetExitCodeProcess failed", err)
			}
			r.code = code
			buildlog.ProcessExits.WithLabelValues(r.name, fmt.Sprintf("%d", code)).Inc()

			if spec.Flags&AllowFailure != 0 || r.interrupt.Load() {
				return nil
			}
			if code != 0 {
				return buildlog.BailOut(fmt.Sprintf("%s returned %d", r.displayName(spec), code))
			}
			return nil

		case uint32(windows.WAIT_TIMEOUT):
			r.drain(r.stdout, "stdout")
			r.drain(r.stderr, "stderr")

			if r.interrupt.Load() && !r.interrupted {
				r.deliverInterrupt()
			}

			if r.interrupted && r.KillGrace > 0 && !r.interruptedAt.IsZero() &&
				time.Since(r.interruptedAt) > r.KillGrace {
				windows.TerminateProcess(r.handle.Raw(), terminateExitCode)
			}
			continue

		default:
			return buildlog.BailOutErrno("unexpected wait result on process", err)
		}
	}
}

func (r *Runner) deliverInterrupt() {
	pid, err := windows.GetProcessId(r.handle.Raw())
	if err != nil || pid == 0 {
		windows.TerminateProcess(r.handle.Raw(), terminateExitCode)
		r.interrupted = true
		r.interruptedAt = time.Now()
		return
	}
	windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, pid)
	r.interrupted = true
	r.interruptedAt = time.Now()
}

func (r *Runner) drain(p *AsyncPipe, stream string) {
	if p == nil {
		return
	}
	for {
		data, err := p.Read()
		if err != nil {
			return
		}
		if len(data) == 0 {
			return
		}
		if r.Sink != nil {
			_, _ = r.Sink.Write(data)
		}
		buildlog.PipeReads.WithLabelValues(stream, "ok").Inc()
	}
}

func (r *Runner) displayName(spec Spec) string {
	if r.name != "" {
		return r.name
	}
	return spec.Command()
}

// ExitCode returns the last-observed exit code.
func (r *Runner) ExitCode() int {
	return int(r.code)
}

func stringsToEnvBlock(env []string) (*uint16, error) {
	var block []uint16
	for _, kv := range env {
		u, err := syscall.UTF16FromString(kv)
		if err != nil {
			return nil, err
		}
		block = append(block, u...)
	}
	block = append(block, 0)
	return &block[0], nil
}
