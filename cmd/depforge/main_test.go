package main

import (
	"reflect"
	"testing"

	"github.com/danmuck/depforge/internal/tasks"
)

func TestTaskListSetAccumulatesRepeatedFlags(t *testing.T) {
	var list taskList
	if err := list.Set("binary_io"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := list.Set("bsa"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := []string(list); !reflect.DeepEqual(got, []string{"binary_io", "bsa"}) {
		t.Fatalf("taskList = %v, want [binary_io bsa]", got)
	}
	if got, want := list.String(), "binary_io,bsa"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestTaskOrderPlacesDependenciesBeforeBSA(t *testing.T) {
	want := append(append([]string{}, tasks.BSADependencyNames()...), "bsa")
	if got := taskOrder(); !reflect.DeepEqual(got, want) {
		t.Fatalf("taskOrder() = %v, want %v", got, want)
	}
}
