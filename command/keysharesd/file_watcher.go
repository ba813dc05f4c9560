// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/keyshares/fault"
)

const fileWatcherLoggerTag = "file-watcher"

// FileWatcher - report changes to the configuration file
type FileWatcher interface {
	Start() error
	Stop()
}

type fileWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
	remove   chan struct{}
}

// both channels should be buffered, events arriving while a channel
// is full are discarded
func newFileWatcher(log *logger.L, targetFile string, change chan struct{}, remove chan struct{}) (FileWatcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		return nil, err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fault.ConfigurationFileNotFound
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	return &fileWatcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		change:   change,
		remove:   remove,
	}, nil
}

// Start - watch the directory so that editors that replace the file
// are still seen
func (w *fileWatcher) Start() error {
	err := w.watcher.Add(filepath.Dir(w.filePath))
	if nil != err {
		w.log.Errorf("watcher add error: %s", err)
		return err
	}

	go w.loop()

	return nil
}

// Stop - close the watcher, ending the loop
func (w *fileWatcher) Stop() {
	w.watcher.Close()
}

func (w *fileWatcher) loop() {
	name := path.Base(w.filePath)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if path.Base(event.Name) != name {
				continue
			}
			w.log.Debugf("file event: %v", event)

			if isRemove(event) {
				w.log.Warnf("file: %s removed", w.filePath)
				w.sendEvent(w.remove, "remove")
			} else if isChange(event) {
				w.sendEvent(w.change, "change")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
}

func (w *fileWatcher) sendEvent(ch chan<- struct{}, name string) {
	select {
	case ch <- struct{}{}:
	default:
		w.log.Debugf("event channel %s full, discard event", name)
	}
}

func isRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}

// re-read the configuration, only the logging levels take effect
// without a restart
func reloadLogLevels(log *logger.L, configurationFile string) {
	options, err := getConfiguration(configurationFile)
	if nil != err {
		log.Errorf("configuration reload error: %s", err)
		return
	}
	logger.LoadLevels(options.Logging.Levels)
	log.Infof("log levels: %v", options.Logging.Levels)
}
