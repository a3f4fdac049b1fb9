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

package hotplug

import (
	"github.com/fsnotify/fsnotify"
	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/msgchan"
)

// DefaultDir is the device node directory on Linux hosts.
const DefaultDir = "/dev/input"

// Sentinal error patterns.
const (
	WatchFailed = "hotplug: watching %s: %v"
)

// Notifier is the producer side of the message channel.
type Notifier interface {
	Send(typ uint16, short uint16, arg0 int32, arg1 int32) error
}

// Watcher watches a device node directory and sends a MsgHotplug message for
// every node created or removed.
type Watcher struct {
	fs       *fsnotify.Watcher
	notifier Notifier
	done     chan bool
}

// NewWatcher is the preferred method of initialisation for the Watcher type.
// The watch begins immediately.
func NewWatcher(dir string, notifier Notifier) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, curated.Errorf(WatchFailed, dir, err)
	}

	err = fs.Add(dir)
	if err != nil {
		fs.Close()
		return nil, curated.Errorf(WatchFailed, dir, err)
	}

	w := &Watcher{
		fs:       fs,
		notifier: notifier,
		done:     make(chan bool),
	}

	go w.loop()

	logger.Logf(logger.Allow, "hotplug", "watching %s", dir)

	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) {
				// send failures are logged by the sender. the next
				// notification will cause the rescan
				_ = w.notifier.Send(msgchan.MsgHotplug, 0, 0, 0)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Logf(logger.Allow, "hotplug", "%v", err)
		}
	}
}

// Close stops the watch. It waits for the watching goroutine to end.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
