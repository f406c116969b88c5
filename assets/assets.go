package assets

import "path/filepath"

var (
	// Textures loaded with WriteToCache, by id and by cleaned path
	Textures     map[uint32]Texture = make(map[uint32]Texture)
	TexturePaths map[string]uint32  = make(map[string]uint32)
)

func AddTextureToCache(t Texture) {

	if t.Path != "" {
		if _, ok := TexturePaths[filepath.Clean(t.Path)]; ok {
			return
		}

		TexturePaths[filepath.Clean(t.Path)] = t.TexID
	}

	Textures[t.TexID] = t
}

func GetTextureFromCacheID(texID uint32) (Texture, bool) {
	tex, ok := Textures[texID]
	return tex, ok
}

func GetTextureFromCachePath(path string) (Texture, bool) {

	id, ok := TexturePaths[filepath.Clean(path)]
	if !ok {
		return Texture{}, false
	}

	tex, ok := Textures[id]
	return tex, ok
}
