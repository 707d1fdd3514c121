package translate

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/voicestudio/voicestudio/internal/cache"
)

const defaultMemoCapacity = 256

// Adapter degrades gracefully around an unreliable translation backend:
// it always returns usable text, memoizes repeated inputs, and logs
// rather than propagates backend failures. Synthesis should proceed with
// the original text when translation is broken.
type Adapter struct {
	backend Translator
	memo    *cache.Memo
	logger  *log.Logger
}

// NewAdapter wraps backend. A nil backend behaves like Noop: every input
// falls back to the original text.
func NewAdapter(backend Translator, logger *log.Logger) *Adapter {
	if backend == nil {
		backend = Noop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{
		backend: backend,
		memo:    cache.NewMemo(defaultMemoCapacity),
		logger:  logger,
	}
}

// ToEnglish translates text to English, falling back to the input
// unchanged on any backend failure. Empty or whitespace input returns ""
// without touching the backend. Results are memoized per exact input.
func (a *Adapter) ToEnglish(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if cached, ok := a.memo.Get(text); ok {
		return cached
	}

	translated, err := a.backend.Translate(ctx, text, SourceAuto, TargetEnglish)
	if err != nil {
		a.logger.Warn("translation failed, using original text", "err", err, "chars", len(text))
		return text
	}

	a.memo.Put(text, translated)
	return translated
}

// MemoStats exposes memoization counters for logging.
func (a *Adapter) MemoStats() cache.Stats {
	return a.memo.Stats()
}
