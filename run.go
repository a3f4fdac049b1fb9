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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jetsetilly/platformcore/lifecycle"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/looper"
	"github.com/jetsetilly/platformcore/msgchan"
	"github.com/jetsetilly/platformcore/notifications"
	"github.com/jetsetilly/platformcore/paths"
	"github.com/jetsetilly/platformcore/performance"
	"github.com/jetsetilly/platformcore/prefs"
	"github.com/jetsetilly/platformcore/sdlplatform"
	"github.com/jetsetilly/platformcore/statsview"
	"github.com/jetsetilly/platformcore/userinput"
	"github.com/jetsetilly/platformcore/userinput/hotplug"
	"github.com/spf13/cobra"
)

// runOptions holds the flags for the run command.
type runOptions struct {
	*rootOptions

	prefsFile     string
	prefs         string
	statsview     bool
	statsviewAddr string
	profile       string

	fps        int
	descriptor bool
	hasEvents  bool
	hotplugDir string
}

func newRunCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window and run the demo engine",
		Long: `Open a window and run the demo engine through the lifecycle coordinator.

Preferences are read from the preferences file in the user's config directory
unless --prefs is given. Individual preferences can be overridden for the
session with --set, for example:

  platformcore run --set "userinput.allowKeyRepeats::false; hotplug.coalesceMS::100"

Sending SIGUSR1 to the process moves the demo to the next colour by way of the
message channel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.prefsFile, "prefs", "", "path to the preferences file")
	cmd.Flags().StringVar(&opts.prefs, "set", "", "preference overrides for this session")
	cmd.Flags().BoolVar(&opts.statsview, "statsview", false, "launch the runtime statistics server")
	cmd.Flags().StringVar(&opts.statsviewAddr, "statsview-addr", statsview.DefaultAddress, "address of the runtime statistics server")
	cmd.Flags().StringVar(&opts.profile, "profile", "none", "create profiling data: cpu, mem, trace")
	cmd.Flags().IntVar(&opts.fps, "fps", 0, "frame rate of the frame pacer. the display refresh rate if zero")
	cmd.Flags().BoolVar(&opts.descriptor, "descriptor", false, "use the descriptor frame trigger")
	cmd.Flags().BoolVar(&opts.hasEvents, "has-events", false, "use the has-events input drain")
	cmd.Flags().StringVar(&opts.hotplugDir, "hotplug", hotplug.DefaultDir, "directory to watch for input devices. empty to disable")

	return cmd
}

// loadPreferences creates the preference groups used by the coordinator.
func loadPreferences(opts *runOptions) (*userinput.Preferences, *hotplug.Preferences, error) {
	if opts.prefs != "" {
		prefs.PushCommandLineStack(opts.prefs)
	}

	pth := opts.prefsFile
	if pth == "" {
		var err error
		pth, err = paths.ResourcePath("", prefsFilename)
		if err != nil {
			return nil, nil, err
		}
	}

	inputPrefs, err := userinput.NewPreferences(pth)
	if err != nil {
		return nil, nil, err
	}
	hotplugPrefs, err := hotplug.NewPreferences(pth)
	if err != nil {
		return nil, nil, err
	}

	return inputPrefs, hotplugPrefs, nil
}

func run(output io.Writer, opts *runOptions) error {
	profile, err := performance.ParseProfileString(opts.profile)
	if err != nil {
		return err
	}

	inputPrefs, hotplugPrefs, err := loadPreferences(opts)
	if err != nil {
		return err
	}

	if opts.statsview {
		if statsview.Available() {
			statsview.Launch(output, opts.statsviewAddr)
		} else {
			fmt.Fprintln(output, "statsview not available in this build")
		}
	}

	return performance.RunProfiler(profile, paths.UniqueFilename("platformcore", "run"), func() error {
		return runHost(output, opts, inputPrefs, hotplugPrefs)
	})
}

func runHost(output io.Writer, opts *runOptions, inputPrefs *userinput.Preferences, hotplugPrefs *hotplug.Preferences) error {
	loop, err := looper.New()
	if err != nil {
		return err
	}
	defer loop.Close()

	hostOpts := sdlplatform.DefaultOptions()
	hostOpts.FPS = opts.fps
	hostOpts.DescriptorTrigger = opts.descriptor
	hostOpts.HasEventsDrain = opts.hasEvents
	hostOpts.HotplugDir = opts.hotplugDir

	host, err := sdlplatform.NewHost(loop, hostOpts)
	if err != nil {
		return err
	}
	defer host.Close()

	demo := sdlplatform.NewDemo(host)

	coord, err := lifecycle.NewCoordinator(lifecycle.Config{
		Mux:     loop,
		Timers:  loop,
		Bridge:  host,
		Surface: host.Surface(),
		Caps:    host.Caps(),
		Pacer:   host.Pacer(),
		Input:   inputPrefs,
		Hotplug: hotplugPrefs,
		Notify:  &noticeLog{},
	}, demo)
	if err != nil {
		return err
	}
	defer coord.Destroy()

	demo.Attach(coord)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go forwardSignals(ctx, coord.Sender())

	if err := host.Start(coord); err != nil {
		return err
	}

	start := time.Now()

	err = loop.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fps, accuracy := performance.CalcFPS(host.FPS(), demo.Frames(), time.Since(start).Seconds())
	fmt.Fprintf(output, "%d frames drawn (%.1f fps, %.1f%% of %d fps)\n", demo.Frames(), fps, accuracy, host.FPS())

	return nil
}

// forwardSignals sends a message to the demo engine for every SIGUSR1. The
// message channel is the only part of the coordinator that can be used
// outside of the loop goroutine.
func forwardSignals(ctx context.Context, sender *msgchan.Sender) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGUSR1)
	defer signal.Stop(sig)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			if err := sender.Send(sdlplatform.MsgNextColour, 0, 0, 0); err != nil {
				logger.Logf(logger.Allow, "platformcore", "%v", err)
				return
			}
		}
	}
}

// noticeLog implements the notifications.Notify interface by adding every
// notice to the log.
type noticeLog struct{}

func (n *noticeLog) Notify(notice notifications.Notice) error {
	logger.Logf(logger.Allow, "platformcore", "notice: %s", notice)
	return nil
}
