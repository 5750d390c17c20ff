package tasks

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/danmuck/depforge/internal/tools"
)

type fakeTask struct {
	name string
}

func (f fakeTask) Name() string       { return f.name }
func (f fakeTask) Version() string    { return "1.0.0" }
func (f fakeTask) SourcePath() string { return "build/" + f.name + "-1.0.0" }
func (f fakeTask) Prebuilt() bool     { return false }

func (f fakeTask) Clean(context.Context, tools.Context, Clean) error    { return nil }
func (f fakeTask) Fetch(context.Context, tools.Context) error           { return nil }
func (f fakeTask) BuildAndInstall(context.Context, tools.Context) error { return nil }

func TestRegisterResolveAndDuplicate(t *testing.T) {
	r := NewRegistry()
	task := fakeTask{name: "binary_io"}

	if err := r.Register(task); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(task); !errors.Is(err, ErrTaskExists) {
		t.Fatalf("expected ErrTaskExists, got %v", err)
	}

	got, err := r.Resolve("binary_io")
	if err != nil || got.Name() != "binary_io" {
		t.Fatalf("resolve failed: err=%v name=%q", err, got.Name())
	}
}

func TestResolveMissingTask(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Resolve("nope"); !errors.Is(err, ErrTaskUnknown) {
		t.Fatalf("expected ErrTaskUnknown, got %v", err)
	}
}

func TestRegisterNilTask(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); !errors.Is(err, ErrTaskNil) {
		t.Fatalf("expected ErrTaskNil, got %v", err)
	}
}

func TestNamesPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"binary_io", "directxtex", "mmio", "zlib", "lz4", "bsa"} {
		if err := r.Register(fakeTask{name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	want := []string{"binary_io", "directxtex", "mmio", "zlib", "lz4", "bsa"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestSortedNamesIsAlphabetical(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zlib", "binary_io", "mmio"} {
		_ = r.Register(fakeTask{name: name})
	}

	want := []string{"binary_io", "mmio", "zlib"}
	if got := r.SortedNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("SortedNames() = %v, want %v", got, want)
	}
}
