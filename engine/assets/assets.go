package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/starlet/engine/core"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeShader
	AssetTypeScene
	AssetTypeModel
	AssetTypeTexture
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeShader:
		return "shader"
	case AssetTypeScene:
		return "scene"
	case AssetTypeModel:
		return "model"
	case AssetTypeTexture:
		return "texture"
	default:
		return "none"
	}
}

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// Change reports that a previously loaded asset was modified on disk.
type Change struct {
	Path string
	Type AssetType
}

var ErrClosed = errors.New("asset manager already closed")

const changeBufferSize = 64

// Manager reads asset files and, once watching, reports modifications to
// files it has handed out so they can be reloaded.
type Manager struct {
	assets map[string]AssetInfo
	mutex  sync.RWMutex

	watcher  *fsnotify.Watcher
	changes  chan Change
	done     chan struct{}
	wg       sync.WaitGroup
	isClosed bool
}

func NewManager() *Manager {
	return &Manager{
		assets:  make(map[string]AssetInfo),
		changes: make(chan Change, changeBufferSize),
		done:    make(chan struct{}),
	}
}

// Watch starts watching root and every directory below it.
func (am *Manager) Watch(root string) error {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.isClosed {
		return ErrClosed
	}
	if am.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.watcher = w
		am.wg.Add(1)
		go am.start()
	}
	return am.watchRecursive(root)
}

// Read returns the content of the file at path and records it as loaded.
func (am *Manager) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key := filepath.Clean(path)
	am.mutex.Lock()
	am.assets[key] = AssetInfo{
		Path:       key,
		Type:       DetermineAssetType(key),
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()
	return data, nil
}

// Lookup returns what is known about a loaded asset. An asset stays known
// after its file is removed.
func (am *Manager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.Clean(path)]
	return info, ok
}

// Changes delivers modifications of loaded assets. Changes are dropped
// rather than blocking the watcher when nobody drains the channel.
func (am *Manager) Changes() <-chan Change {
	return am.changes
}

// Shutdown stops the watcher. It is safe to call more than once.
func (am *Manager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	watching := am.watcher != nil
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()
	if watching {
		return am.watcher.Close()
	}
	return nil
}

func (am *Manager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.watcher.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.watcher.Errors:
			if !ok {
				return
			}
			core.LogErrorOp("AssetManager", "watch", "%s", err)

		case <-am.done:
			return
		}
	}
}

func (am *Manager) handleEvent(e fsnotify.Event) {
	key := filepath.Clean(e.Name)

	if e.Op&fsnotify.Create != 0 {
		if s, err := os.Stat(key); err == nil && s.IsDir() {
			am.mutex.Lock()
			if err := am.watchRecursive(key); err != nil {
				core.LogErrorOp("AssetManager", "watch", "%s", err)
			}
			am.mutex.Unlock()
			return
		}
	}

	// removed assets stay indexed so an editor that saves by remove and
	// create still reports the new file as a change
	am.mutex.RLock()
	info, loaded := am.assets[key]
	am.mutex.RUnlock()

	if !loaded || e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	select {
	case am.changes <- Change{Path: key, Type: info.Type}:
	default:
		core.LogWarn("asset change dropped for %s", key)
	}
}

// watchRecursive adds root and all directories under it. Caller holds the mutex.
func (am *Manager) watchRecursive(root string) error {
	return filepath.Walk(root, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return nil
		}
		if err := am.watcher.Add(walkPath); err != nil {
			return fmt.Errorf("watch %s: %w", walkPath, err)
		}
		return nil
	})
}

func DetermineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".glsl", ".vert", ".frag":
		return AssetTypeShader
	case ".toml":
		return AssetTypeScene
	case ".obj":
		return AssetTypeModel
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return AssetTypeTexture
	default:
		return AssetTypeNone
	}
}
