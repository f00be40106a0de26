package interpret

import (
	"context"
	"time"

	"go.uber.org/zap"

	"voicesketch/internal/logging"
	"voicesketch/internal/normalize"
	"voicesketch/internal/shape"
)

// Source records which arm of the gateway produced an instruction. The
// gateway is a small state machine, Cached to RemoteAttempt to either
// Parsed or FallbackClassified, and every terminal state yields an
// instruction, so ParseCommand cannot fail.
type Source string

const (
	SourceCache    Source = "cache"
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// DefaultRemoteTimeout bounds the single suspend point in the pipeline.
const DefaultRemoteTimeout = 10 * time.Second

// Gateway owns the remote interpretation call: prompt construction, the
// request-level cache, the timeout, and the degrade-to-classifier path.
type Gateway struct {
	client  LLMClient
	cache   *Cache
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewGateway wires a gateway. A nil client disables the remote path
// entirely; every request then classifies locally. A nil cache gets a
// default one.
func NewGateway(client LLMClient, cache *Cache, timeout time.Duration) *Gateway {
	if cache == nil {
		cache = NewCache(DefaultCacheTTL)
	}
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &Gateway{
		client:  client,
		cache:   cache,
		timeout: timeout,
		log:     logging.Get(logging.CategoryGateway),
	}
}

// ParseCommand turns a raw utterance plus drawing context into a validated
// instruction. Failure of any kind (remote transport, timeout, garbage
// reply) degrades to the keyword classifier over the original
// un-normalized text. Only remote-derived instructions are cached.
func (g *Gateway) ParseCommand(ctx context.Context, text string, dctx shape.Context) (Instruction, Source) {
	key := Key(text, len(dctx.Shapes))

	// State: Cached.
	if in, ok := g.cache.Get(key); ok {
		g.log.Debugw("cache hit", "key_text", text, "shapes", len(dctx.Shapes))
		return in, SourceCache
	}

	// State: RemoteAttempt.
	in, err := g.remoteAttempt(ctx, text, dctx)
	if err != nil {
		// State: FallbackClassified. The original text goes to the
		// classifier; normalization is only for the model's benefit.
		g.log.Infow("remote interpretation unavailable, using fallback",
			"error", err)
		return Classify(text), SourceFallback
	}

	// State: Parsed.
	g.cache.Put(key, in)
	return in, SourceRemote
}

// remoteAttempt normalizes the utterance, issues the bounded remote call,
// and parses the reply.
func (g *Gateway) remoteAttempt(ctx context.Context, text string, dctx shape.Context) (Instruction, error) {
	if g.client == nil {
		return Instruction{}, errRemoteDisabled
	}

	resolved := normalize.Preprocess(text, normalize.Options{
		RecentShapes: kindNames(dctx.Shapes),
	})
	if !normalize.IsValid(resolved) {
		return Instruction{}, errEmptyUtterance
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	reply, err := g.client.Complete(callCtx, systemPrompt, BuildPrompt(resolved, dctx))
	if err != nil {
		return Instruction{}, err
	}

	in, err := Parse(reply, dctx)
	if err != nil {
		g.log.Warnw("unusable model reply", "error", err, "reply", reply)
		return Instruction{}, err
	}
	return in, nil
}

// kindNames renders the shape kinds in z-order for reference resolution,
// most recent last.
func kindNames(shapes []shape.Shape) []string {
	if len(shapes) == 0 {
		return nil
	}
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = string(s.Kind())
	}
	return names
}
