package main

import (
	"fmt"
	"os"

	"github.com/apexforge/afns/internal/value"
	"github.com/davecgh/go-spew/spew"
)

// traceDump implements `--trace`'s deep-dump of a run's final value,
// grounded on SPEC_FULL's Domain Stack entry for go-spew: a debugging aid
// over value.Value trees, never part of a program's own stdout (spec §7
// requires stdout stay byte-exact).
func traceDump(label string, v value.Value) {
	fmt.Fprintf(os.Stderr, "%s %s:\n", yellow("trace"), label)
	spew.Fdump(os.Stderr, v)
}
