package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/opal-lang/rill/value"
)

// watch re-runs the script every time astFile or frontmatterFile changes
// on disk, until the watcher errors or the process is interrupted.
func watch(astFile, frontmatterFile, loadSnapshotFile string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(astFile); err != nil {
		return fmt.Errorf("watching %s: %w", astFile, err)
	}
	if frontmatterFile != "" {
		if err := watcher.Add(frontmatterFile); err != nil {
			return fmt.Errorf("watching %s: %w", frontmatterFile, err)
		}
	}

	useColor := shouldUseColor(noColor)

	runAndReport := func() {
		result, err := runOnce(astFile, frontmatterFile, loadSnapshotFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, colorize(fmt.Sprintf("Error: %v", err), colorRed, useColor))
			return
		}
		fmt.Println(value.FormatValue(result.Value))
	}

	runAndReport()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				runAndReport()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, colorize(fmt.Sprintf("Watch error: %v", err), colorYellow, useColor))
		}
	}
}
