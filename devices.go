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
	"io"

	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/sdlplatform"
	"github.com/jetsetilly/platformcore/userinput/devices"
	"github.com/spf13/cobra"
)

// closeBridge is a platform.Bridge that must be closed after use.
type closeBridge interface {
	platform.Bridge
	Close()
}

// openBridge returns the bridge used by the devices command.
var openBridge = func() (closeBridge, error) {
	return sdlplatform.OpenBridge()
}

// devicesOptions holds the flags for the devices command.
type devicesOptions struct {
	*rootOptions

	single   bool
	capacity int
}

func newDevicesCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &devicesOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List the input devices known to the device registry",
		Long: `List the input devices known to the device registry. The devices are
enumerated by SDL and classified in the same way as they are by the run
command. No window is opened.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDevices(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.single, "single", false, "show the registry of a host without multi-device input")
	cmd.Flags().IntVar(&opts.capacity, "capacity", 0, "size of the device table. zero for the default")

	return cmd
}

func listDevices(output io.Writer, opts *devicesOptions) error {
	bridge, err := openBridge()
	if err != nil {
		return err
	}
	defer bridge.Close()

	caps := platform.Capabilities{
		MultiInputDevices: !opts.single,
	}

	reg := devices.NewRegistry(bridge, caps, opts.capacity)
	if err := reg.Rescan(true); err != nil {
		return err
	}
	reg.Write(output)

	return nil
}
