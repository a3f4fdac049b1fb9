// This file is part of Platformcore.
//
// Platformcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Platformcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Platformcore.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/version"
	"github.com/spf13/cobra"
)

// name of the preferences file in the resource directory.
const prefsFilename = "preferences.toml"

// SDL must be used from the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	root := newRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "* error: %v\n", err)
		os.Exit(10)
	}
}

// rootOptions are the flags shared by every command.
type rootOptions struct {
	// echo log entries to the terminal as they are created
	log bool

	// restrict echoed entries to these tags
	logTags []string
}

func newRootCommand(output io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "platformcore",
		Short: "Platform integration core",
		Long: `Platformcore reconciles a host's window and application lifecycle with an
engine's frame loop, normalises input events and manages input devices.

The run command opens a window on the desktop and drives a small demo engine
through the lifecycle coordinator.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.log || len(opts.logTags) > 0 {
				logger.SetEcho(cmd.ErrOrStderr(), opts.logTags...)
			}
		},
	}

	cmd.SetOut(output)
	cmd.PersistentFlags().BoolVar(&opts.log, "log", false, "echo log entries to the terminal")
	cmd.PersistentFlags().StringSliceVar(&opts.logTags, "logtags", nil, "echo only log entries with these tags. implies --log")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newDevicesCommand(opts))

	return cmd
}
