// Package tokencount estimates token usage for scoring prompts.
//
// Counts come from tiktoken-go. The gateway models are not OpenAI models,
// so the numbers are estimates for logging and cost tracking, not billing
// truth.
package tokencount

import (
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Counter provides thread-safe token estimation with cached encodings.
type Counter struct {
	mu    sync.RWMutex
	cache map[string]*tiktoken.Tiktoken
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{cache: make(map[string]*tiktoken.Tiktoken)}
}

// DefaultCounter is the shared process-wide instance.
var DefaultCounter = NewCounter()

func (c *Counter) encodingFor(model string) (*tiktoken.Tiktoken, error) {
	key := normalizeModel(model)

	c.mu.RLock()
	if enc, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return enc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if enc, ok := c.cache[key]; ok {
		return enc, nil
	}
	enc, err := tiktoken.EncodingForModel(key)
	if err != nil {
		// cl100k_base approximates most modern chat models well enough
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}
	c.cache[key] = enc
	return enc, nil
}

// normalizeModel maps gateway model IDs like "google/gemini-2.5-flash" to a
// tiktoken-compatible name.
func normalizeModel(model string) string {
	model = strings.ToLower(model)
	if i := strings.LastIndex(model, "/"); i >= 0 {
		model = model[i+1:]
	}
	switch {
	case strings.Contains(model, "gpt-4"):
		return "gpt-4"
	case strings.Contains(model, "gpt-3.5"):
		return "gpt-3.5-turbo"
	default:
		return "gpt-4"
	}
}

// CountChatTokens estimates the prompt token count for a two-message chat
// completion request, including per-message framing overhead.
func (c *Counter) CountChatTokens(systemPrompt, userPrompt, model string) (int, error) {
	enc, err := c.encodingFor(model)
	if err != nil {
		return 0, err
	}
	const tokensPerMessage = 4 // framing plus role
	n := 0
	n += tokensPerMessage + len(enc.Encode(systemPrompt, nil, nil))
	n += tokensPerMessage + len(enc.Encode(userPrompt, nil, nil))
	n += 3 // assistant reply priming
	return n, nil
}

// EstimateChatTokens estimates with the default counter, falling back to a
// rough chars/4 heuristic when the encoder is unavailable.
func EstimateChatTokens(systemPrompt, userPrompt, model string) int {
	n, err := DefaultCounter.CountChatTokens(systemPrompt, userPrompt, model)
	if err != nil {
		return (len(systemPrompt) + len(userPrompt)) / 4
	}
	return n
}
