// Package segment derives fixed-length caption windows from chunk text.
//
// Windows are display conventions, not speech boundaries: the backends used
// return no word timing, so each group of words is given the same synthetic
// duration starting at its chunk's offset.
package segment

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/gif-flow/internal/transcriber"
)

// Caption is one fixed-duration caption window.
type Caption struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

func (c Caption) String() string {
	return fmt.Sprintf("[%s-%s) %q", c.Start, c.End, c.Text)
}

// Plan converts ordered chunk results into captions of wordsPerSegment
// words, each lasting duration. Captions from one chunk are laid back to
// back from the chunk's start offset.
func Plan(results []transcriber.Result, wordsPerSegment int, duration time.Duration) []Caption {
	var captions []Caption
	for _, res := range results {
		captions = append(captions, PlanText(res.Text, res.Chunk.Start, wordsPerSegment, duration)...)
	}
	return captions
}

// PlanText splits text into groups of wordsPerSegment words starting at
// offset. Empty text yields no captions; a short trailing group still
// yields one.
func PlanText(text string, offset time.Duration, wordsPerSegment int, duration time.Duration) []Caption {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if wordsPerSegment < 1 {
		wordsPerSegment = 1
	}

	captions := make([]Caption, 0, (len(words)+wordsPerSegment-1)/wordsPerSegment)
	start := offset
	for i := 0; i < len(words); i += wordsPerSegment {
		end := min(i+wordsPerSegment, len(words))
		captions = append(captions, Caption{
			Start: start,
			End:   start + duration,
			Text:  strings.Join(words[i:end], " "),
		})
		start += duration
	}
	return captions
}
