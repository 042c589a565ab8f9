package stage

import (
	"go.uber.org/zap"

	"github.com/stagecue/stagecue/internal/logger"
)

// TextureType distinguishes image from video content.
type TextureType string

const (
	TextureImage TextureType = "image"
	TextureVideo TextureType = "video"
)

// ContentTexture references uploaded image or video content layered onto
// emissive surfaces. The file reference is opaque; playback and decoding
// happen elsewhere.
type ContentTexture struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	FilePath     string      `json:"file_path"`
	Type         TextureType `json:"type"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
	FileSize     int64       `json:"file_size,omitempty"`
}

// ContentStore holds uploaded content and the active-content pointer.
type ContentStore struct {
	textures []*ContentTexture
	activeID string
}

// NewContentStore creates an empty content store.
func NewContentStore() *ContentStore {
	return &ContentStore{}
}

// Add appends content. The first upload auto-selects itself.
func (s *ContentStore) Add(texture *ContentTexture) {
	s.textures = append(s.textures, texture)
	if s.activeID == "" {
		s.activeID = texture.ID
	}
	logger.Info("content added",
		zap.String("id", texture.ID), zap.String("name", texture.Name),
		zap.String("type", string(texture.Type)))
}

// Remove deletes content and clears the active pointer if it was active.
func (s *ContentStore) Remove(id string) error {
	for i, texture := range s.textures {
		if texture.ID == id {
			s.textures = append(s.textures[:i], s.textures[i+1:]...)
			if s.activeID == id {
				s.activeID = ""
			}
			return nil
		}
	}
	return ErrNotFound
}

// SetActive selects content for display. An empty id clears it.
func (s *ContentStore) SetActive(id string) error {
	if id == "" {
		s.activeID = ""
		return nil
	}
	if s.Get(id) == nil {
		return ErrNotFound
	}
	s.activeID = id
	return nil
}

// Load replaces the whole content list, keeping the active pointer when
// it still resolves. Used when loading a project.
func (s *ContentStore) Load(textures []*ContentTexture, activeID string) {
	s.textures = append([]*ContentTexture(nil), textures...)
	s.activeID = ""
	if s.Get(activeID) != nil {
		s.activeID = activeID
	}
}

// Get returns content by id, or nil.
func (s *ContentStore) Get(id string) *ContentTexture {
	for _, texture := range s.textures {
		if texture.ID == id {
			return texture
		}
	}
	return nil
}

// All returns the content list. The slice is a copy; the entries are not.
func (s *ContentStore) All() []*ContentTexture {
	out := make([]*ContentTexture, len(s.textures))
	copy(out, s.textures)
	return out
}

// ActiveID returns the active content id, or empty.
func (s *ContentStore) ActiveID() string {
	return s.activeID
}
