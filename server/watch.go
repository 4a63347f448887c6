package server

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/TFMV/trustgraph/ingest"
)

// watchData reloads the record set whenever the data file changes on disk.
// The directory is watched rather than the file so editors that replace the
// file (write-to-temp-then-rename) keep triggering events.
func (s *Server) watchData() (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("server: creating watcher: %w", err)
	}

	dir := filepath.Dir(s.cfg.Data)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("server: watching %s: %w", dir, err)
	}

	target := filepath.Clean(s.cfg.Data)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				nodes, links, err := ingest.LoadFile(s.cfg.Data)
				if err != nil {
					s.log.Warn("reload failed", zap.Error(err))
					continue
				}
				s.log.Info("data file changed, reloading",
					zap.Int("nodes", len(nodes)),
					zap.Int("links", len(links)))
				s.SetRecords(nodes, links)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("watch error", zap.Error(err))
			}
		}
	}()

	s.log.Info("watching data file", zap.String("path", s.cfg.Data))
	return func() { watcher.Close() }, nil
}
