package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"videoshare/internal/entity"
)

// StateKey names the persisted snapshot.
const StateKey = "video-store"

// Storage is a small key/value area for persisted client state.
type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, data []byte) error
}

// FileStorage keeps each key as <Dir>/<key>.json.
type FileStorage struct {
	Dir string
}

func (f FileStorage) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f FileStorage) Get(key string) ([]byte, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (f FileStorage) Set(key string, data []byte) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.Dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

type snapshot struct {
	SidebarOpen *bool                     `json:"sidebarOpen,omitempty"`
	ChannelMap  map[string]entity.Channel `json:"channelMap"`
	VideoMap    map[string]entity.Video   `json:"videoMap"`
}

// Hydrate loads the seed rows and then overlays whatever was persisted under
// StateKey, so persisted rows win over seed rows with the same id.
func (s *Store) Hydrate(channels []entity.Channel, videos []entity.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range channels {
		s.channelMap[ch.ID] = ch
	}
	for _, v := range videos {
		s.videoMap[v.ID] = v
	}

	if s.storage != nil {
		data, ok, err := s.storage.Get(StateKey)
		if err != nil {
			return fmt.Errorf("read %s: %w", StateKey, err)
		}
		if ok {
			var snap snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("decode %s: %w", StateKey, err)
			}
			if snap.SidebarOpen != nil {
				s.sidebarOpen = *snap.SidebarOpen
			}
			for id, ch := range snap.ChannelMap {
				s.channelMap[id] = ch
			}
			for id, v := range snap.VideoMap {
				s.videoMap[id] = v
			}
		}
	}

	for id, v := range s.videoMap {
		if ch, ok := s.channelMap[v.ChannelID]; ok {
			ch := ch
			v.Channel = &ch
		}
		v.Normalize()
		s.videoMap[id] = v
	}
	if len(s.videos) == 0 {
		for _, v := range s.videoMap {
			s.videos = append(s.videos, v)
		}
		sort.Slice(s.videos, func(i, j int) bool {
			return s.videos[i].UploadedAt.After(s.videos[j].UploadedAt)
		})
	}
	return nil
}

// Save writes the persisted part of the state. Without storage it is a no-op.
func (s *Store) Save() error {
	if s.storage == nil {
		return nil
	}
	s.mu.RLock()
	open := s.sidebarOpen
	snap := snapshot{
		SidebarOpen: &open,
		ChannelMap:  make(map[string]entity.Channel, len(s.channelMap)),
		VideoMap:    make(map[string]entity.Video, len(s.videoMap)),
	}
	for k, v := range s.channelMap {
		snap.ChannelMap[k] = v
	}
	for k, v := range s.videoMap {
		v.Channel = nil
		snap.VideoMap[k] = v
	}
	s.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.storage.Set(StateKey, data)
}

func (s *Store) save() {
	if err := s.Save(); err != nil && s.logger != nil {
		s.logger.Warnf("persist %s: %v", StateKey, err)
	}
}
