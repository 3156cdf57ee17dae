// rasterview - Terminal 3D model viewer and benchmark harness for the
// rasterkit rasterizer core.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "rasterview",
		Short: "Terminal viewer and benchmark harness for the rasterkit core",
	}
	root.AddCommand(newViewCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newDocsCmd(root))

	if err := fang.Execute(context.Background(), root); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
