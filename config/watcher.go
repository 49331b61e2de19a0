// This file is part of Keyleds.
//
// Keyleds is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Keyleds is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Keyleds.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/logger"
)

// editors often write a file in more than one step. events that arrive
// within this period of each other are treated as one change
const debounce = 100 * time.Millisecond

const logTag = "config"

// Watcher reloads the configuration file when it changes.
type Watcher struct {
	path    string
	perm    logger.Permission
	watcher *fsnotify.Watcher

	updates chan *Config

	quit      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher starts watching the configuration file. The directory of the file
// is watched rather than the file itself, so that the file can be replaced.
func NewWatcher(path string, perm logger.Permission) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, curated.Errorf(ConfigError, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, curated.Errorf(ConfigError, err)
	}

	err = fw.Add(filepath.Dir(abs))
	if err != nil {
		fw.Close()
		return nil, curated.Errorf(ConfigError, err)
	}

	w := &Watcher{
		path:    abs,
		perm:    perm,
		watcher: fw,
		updates: make(chan *Config, 1),
		quit:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.watch()

	return w, nil
}

// Updates returns the channel on which new configurations are delivered. Only
// the most recent configuration is kept if the receiver is slow.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) watch() {
	defer w.wg.Done()

	var fire <-chan time.Time

	for {
		select {
		case <-w.quit:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				fire = time.After(debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Log(w.perm, logTag, err.Error())

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		logger.Log(w.perm, logTag, err.Error())
		return
	}

	// replace any configuration that has not been collected
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg

	logger.Logf(w.perm, logTag, "reloaded %s", filepath.Base(w.path))
}

// Close stops watching. The updates channel is not closed.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.quit)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
