// Command navaudit audits navigation elements for accessibility,
// role-based access, admin-route protection, and visual feedback.
package main

import (
	"fmt"
	"os"

	"github.com/auditkit/navaudit/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
