package match

import (
	"fmt"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/fairyhunter13/ats-matcher/internal/domain"
)

// ChunkWords splits text into overlapping word windows of size words,
// advancing by size-overlap (minimum step 1, so the loop always terminates).
// The final chunk may be shorter. Empty text yields an empty sequence.
func ChunkWords(text string, size, overlap int) []domain.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}
	step := size - overlap
	if step < 1 {
		step = 1
	}
	var chunks []domain.Chunk
	for i := 0; i < len(words); i += step {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, domain.Chunk{
			Text:  strings.Join(words[i:end], " "),
			Start: i,
			End:   end,
		})
		if end == len(words) {
			break
		}
	}
	return chunks
}

// TokenChunker windows text by the embedding model's sub-word tokens instead
// of raw words, keeping chunk counts and embedding cost predictable. The
// tiktoken encoding is loaded once and reused.
type TokenChunker struct {
	enc *tiktoken.Tiktoken
}

var (
	encOnce sync.Once
	encInst *tiktoken.Tiktoken
	encErr  error
)

// NewTokenChunker returns a chunker over the cl100k_base encoding.
func NewTokenChunker() (*TokenChunker, error) {
	encOnce.Do(func() {
		encInst, encErr = tiktoken.GetEncoding("cl100k_base")
	})
	if encErr != nil {
		return nil, fmt.Errorf("op=match.NewTokenChunker: %w", encErr)
	}
	return &TokenChunker{enc: encInst}, nil
}

// Chunk windows the token sequence with the same step rule as ChunkWords and
// decodes each window back to text. Offsets are token indices.
func (tc *TokenChunker) Chunk(text string, size, overlap int) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	ids := tc.enc.Encode(text, nil, nil)
	if len(ids) == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}
	step := size - overlap
	if step < 1 {
		step = 1
	}
	var chunks []domain.Chunk
	for i := 0; i < len(ids); i += step {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, domain.Chunk{
			Text:  tc.enc.Decode(ids[i:end]),
			Start: i,
			End:   end,
		})
		if end == len(ids) {
			break
		}
	}
	return chunks
}

// Truncate caps text at maxTokens sub-word tokens, used to respect the
// embedding endpoint's input budget.
func (tc *TokenChunker) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	ids := tc.enc.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return tc.enc.Decode(ids[:maxTokens])
}

// ChunkTexts extracts the chunk window strings in order.
func ChunkTexts(chunks []domain.Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}
