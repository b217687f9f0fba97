package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"doclens/internal/logger"
)

// DefaultCacheTTL is how long a recognition result is reused.
const DefaultCacheTTL = time.Hour

// engineTimeout bounds one engine call shared by concurrent callers.
const engineTimeout = 2 * time.Minute

// Adapter is a read-through cache in front of an Engine. Results are keyed by
// the SHA-256 of the image bytes plus the language code. Engine errors are
// never cached; an empty string is.
type Adapter struct {
	engine Engine
	cache  *cache.Cache
	group  singleflight.Group
	log    zerolog.Logger
}

// NewAdapter wraps engine with a cache whose entries live for ttl.
func NewAdapter(engine Engine, ttl time.Duration) *Adapter {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Adapter{
		engine: engine,
		cache:  cache.New(ttl, 2*ttl),
		log:    logger.WithComponent("ocr"),
	}
}

// Recognize implements Recognizer.
func (a *Adapter) Recognize(ctx context.Context, image []byte, langCode string) (string, error) {
	if langCode == "" {
		langCode = DefaultLanguageCode
	}
	key := cacheKey(image, langCode)

	if text, ok := a.cache.Get(key); ok {
		a.log.Debug().Str("lang", langCode).Msg("OCR cache hit")
		return text.(string), nil
	}

	// The shared call is detached from the first caller's cancellation;
	// each caller stops waiting when its own context ends.
	ch := a.group.DoChan(key, func() (interface{}, error) {
		if text, ok := a.cache.Get(key); ok {
			return text.(string), nil
		}

		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), engineTimeout)
		defer cancel()

		start := time.Now()
		text, err := a.engine.Recognize(flightCtx, image, langCode)
		if err != nil {
			switch {
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return "", err
			case !errors.Is(err, ErrEngineFailed):
				return "", engineFailure("Recognize", a.engine.Name(), err)
			default:
				return "", WrapOCRError("Recognize", a.engine.Name(), err, "")
			}
		}
		a.cache.SetDefault(key, text)

		a.log.Debug().
			Str("engine", a.engine.Name()).
			Str("lang", langCode).
			Int("bytes", len(image)).
			Int("chars", len(text)).
			Dur("took", time.Since(start)).
			Msg("OCR recognised image")
		return text, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			a.log.Debug().Str("lang", langCode).Msg("OCR result shared with concurrent caller")
		}
		return res.Val.(string), nil
	}
}

// Len reports the number of cached results, expired ones included until purged.
func (a *Adapter) Len() int {
	return a.cache.ItemCount()
}

// Flush drops every cached result.
func (a *Adapter) Flush() {
	a.cache.Flush()
}

// Close releases the engine's client, if it holds one.
func (a *Adapter) Close() error {
	if c, ok := a.engine.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func cacheKey(image []byte, langCode string) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:]) + ":" + langCode
}
