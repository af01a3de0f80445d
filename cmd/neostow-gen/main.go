// Command neostow-gen writes release artifacts for neostow: the man page
// and shell completion scripts.
//
//	neostow-gen man
//	neostow-gen completion <bash|zsh|fish|powershell>
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/neostow/internal/cli"
	"github.com/arthur-debert/neostow/internal/version"
)

var completions = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

func main() {
	if err := generate(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "neostow-gen: %v\n", err)
		os.Exit(1)
	}
}

func generate(args []string, w io.Writer) error {
	rootCmd := cli.NewRootCmd()

	switch {
	case len(args) == 1 && args[0] == "man":
		header := &doc.GenManHeader{
			Title:   "NEOSTOW",
			Section: "1",
			Source:  "neostow " + version.Version,
			Manual:  "neostow manual",
		}
		return doc.GenMan(rootCmd, header, w)

	case len(args) == 2 && args[0] == "completion":
		gen, ok := completions[args[1]]
		if !ok {
			return fmt.Errorf("unknown shell %q (supported: %s)", args[1], shells())
		}
		return gen(rootCmd, w)
	}

	return fmt.Errorf("usage: neostow-gen man | neostow-gen completion <%s>", strings.ReplaceAll(shells(), ", ", "|"))
}

func shells() string {
	names := make([]string, 0, len(completions))
	for name := range completions {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
