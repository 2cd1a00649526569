package main

import (
	"io/fs"
	"time"

	"github.com/mabego/springai-web/internal/buildconfig"
	"github.com/mabego/springai-web/internal/sprite"
	"github.com/patrickmn/go-cache"
)

const (
	spriteCacheKey = "sprite"
	devSpriteTTL   = 2 * time.Second
)

// spriteSource builds the icon sprite on demand and keeps it in a cache.
// Embedded icons never expire; icons read from disk are rebuilt after devSpriteTTL.
type spriteSource struct {
	fsys  fs.FS
	dirs  []string
	opts  sprite.Options
	cache *cache.Cache
}

func newSpriteSource(fsys fs.FS, dirs []string, cfg *buildconfig.Config, ttl time.Duration) *spriteSource {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	return &spriteSource{
		fsys: fsys,
		dirs: dirs,
		opts: sprite.Options{
			SymbolID:    cfg.SVGIcons.SymbolID,
			Inject:      cfg.SVGIcons.Inject,
			CustomDomID: cfg.SVGIcons.CustomDomID,
		},
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *spriteSource) Get() (*sprite.Sprite, error) {
	if v, ok := s.cache.Get(spriteCacheKey); ok {
		return v.(*sprite.Sprite), nil
	}

	sp, err := sprite.Build(s.fsys, s.dirs, s.opts)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(spriteCacheKey, sp)
	return sp, nil
}
