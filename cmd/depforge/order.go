package main

import "github.com/danmuck/depforge/internal/tasks"

// taskOrder returns the registration order depforge registers tasks in:
// every dependency bsa's CMAKE_PREFIX_PATH/LZ4_* defs read from
// (SPEC_FULL.md §4.4), followed by bsa itself. Kept apart from
// registerTasks, which actually constructs each Task and is Windows-only,
// so this ordering rule stays testable on any OS.
func taskOrder() []string {
	return append(append([]string{}, tasks.BSADependencyNames()...), "bsa")
}
