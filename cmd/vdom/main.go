// Command vdom renders scenario files, runs the keyed counter demo and
// benchmarks reconciliation on the in-memory surface.
package main

import (
	"context"
	"os"

	"github.com/go-drift/vdom/cmd/vdom/cmd"
	"github.com/go-drift/vdom/pkg/errors"
)

func main() {
	if err := cmd.New().Run(context.Background(), os.Args); err != nil {
		var pe *errors.PanicError
		if errors.As(err, &pe) {
			errors.ReportPanic(pe)
			os.Exit(2)
		}
		var e *errors.Error
		if !errors.As(err, &e) {
			e = errors.Wrap("vdom", errors.KindUnknown, err)
		}
		errors.Report(e)
		os.Exit(1)
	}
}
