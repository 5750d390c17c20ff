//go:build windows

package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/danmuck/depforge/internal/winproc"
)

// CMake configures (or cleans) a CMake project, grounded on the
// create_cmake_tool() factories repeated across original_source/src/tasks/
// *.cpp: generator, root, prefix, and an arbitrary set of -D definitions.
type CMake struct {
	cmakeBin string
	op       Ops
	root     string
	prefix   string
	defs     map[string]string
	verbose  bool
	dry      bool
}

// NewCMake constructs a CMake tool defaulting to OpGenerate.
func NewCMake(cmakeBin, root string, op Ops, verbose, dry bool) *CMake {
	if op == "" {
		op = OpGenerate
	}
	return &CMake{cmakeBin: cmakeBin, op: op, root: root, prefix: filepath.Join(root, "build"), defs: map[string]string{}, verbose: verbose, dry: dry}
}

// Prefix overrides the build/prefix directory (default "<root>/build").
func (c *CMake) Prefix(path string) *CMake {
	c.prefix = path
	return c
}

// Def adds a -D<key>=<value> definition. Matches cmake::def(key, value).
func (c *CMake) Def(key, value string) *CMake {
	c.defs[key] = value
	return c
}

// BuildPath returns the directory CMake configures into — exposed so
// Task instances can compute a solution path, as
// original_source/src/tasks/binary_io.cpp's solution_path() does, without
// running the tool.
func (c *CMake) BuildPath() string {
	return c.prefix
}

// Run implements Tool. On OpClean it removes the build directory; on
// OpGenerate it shells out to cmake, returning the build path.
func (c *CMake) Run(ctx context.Context, cx Context) (any, error) {
	if c.op == OpClean {
		cx.Tracef("reconfigure", "cmake clean: removing %s", c.prefix)
		if err := removeAll(c.prefix); err != nil {
			return nil, fmt.Errorf("cmake: clean %s: %w", c.prefix, err)
		}
		return c.prefix, nil
	}

	cx.Tracef("generic", "cmake generate: root=%s prefix=%s", c.root, c.prefix)

	builder := winproc.NewBuilder().
		Name("cmake").
		Binary(c.cmakeBin).
		SetVerboseHint(c.verbose).
		AddArg("-G", winproc.StringArg("Visual Studio 17 2022"), winproc.NoArgFlags).
		AddArg("-S", winproc.PathArg(c.root), winproc.NoArgFlags).
		AddArg("-B", winproc.PathArg(c.prefix), winproc.NoArgFlags)

	for _, key := range sortedKeys(c.defs) {
		builder = builder.AddArg(fmt.Sprintf("-D%s=", key), winproc.StringArg(c.defs[key]), winproc.NoSpace)
	}

	spec := builder.Build(c.verbose)
	if _, err := runAndJoin(ctx, "cmake", spec, c.dry); err != nil {
		return nil, err
	}
	return c.prefix, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
