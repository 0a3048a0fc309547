package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jjenkins/vinlookup/internal/vin"
)

const defaultBatchDelay = 500 * time.Millisecond

// BatchStats tracks batch decode statistics
type BatchStats struct {
	Total     int
	Decoded   int
	NoResults int
	Invalid   int
	Failed    int
}

// BatchDecoder decodes a list of VINs one after another. Requests are never
// issued concurrently; Delay is waited between consecutive requests.
type BatchDecoder struct {
	resolver  *Resolver
	Delay     time.Duration
	logger    *log.Logger
	errLogger *log.Logger
}

// NewBatchDecoder creates a new BatchDecoder
func NewBatchDecoder(resolver *Resolver) *BatchDecoder {
	return &BatchDecoder{
		resolver:  resolver,
		Delay:     defaultBatchDelay,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// SetLoggers replaces the progress and error loggers
func (b *BatchDecoder) SetLoggers(logger, errLogger *log.Logger) {
	b.logger = logger
	b.errLogger = errLogger
}

// ReadVINs reads one VIN per line, skipping blank lines and # comments
func ReadVINs(r io.Reader) ([]string, error) {
	var vins []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		vins = append(vins, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read VIN list: %w", err)
	}
	return vins, nil
}

// Decode resolves every input and calls emit for each outcome in order
func (b *BatchDecoder) Decode(ctx context.Context, inputs []string, emit func(Outcome)) (*BatchStats, error) {
	stats := &BatchStats{Total: len(inputs)}
	requested := false

	for idx, input := range inputs {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		progress := fmt.Sprintf("[%d/%d]", idx+1, stats.Total)

		// Invalid inputs never reach the API, so they do not wait
		if _, err := vin.Validate(input); err == nil && requested {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(b.Delay):
			}
		}

		out := b.resolver.Resolve(ctx, input)
		if out.State != StateInvalid {
			requested = true
		}

		switch out.State {
		case StateSuccess:
			stats.Decoded++
			b.logger.Printf("%s %s: %s %s %s", progress, out.VIN, out.Vehicle.ModelYear, out.Vehicle.Make, out.Vehicle.Model)
		case StateNoResults:
			stats.NoResults++
			b.logger.Printf("%s %s: no results", progress, out.VIN)
		case StateInvalid:
			stats.Invalid++
			b.errLogger.Printf("%s Skipping %q: %s", progress, input, out.Message())
		default:
			stats.Failed++
			b.errLogger.Printf("%s Failed to decode %s: %v", progress, out.VIN, out.Err)
		}

		if emit != nil {
			emit(out)
		}
	}

	return stats, nil
}

// PrintSummary prints batch statistics
func (b *BatchDecoder) PrintSummary(stats *BatchStats) {
	b.logger.Println("")
	b.logger.Println("=== Batch Summary ===")
	b.logger.Printf("Total VINs:      %d", stats.Total)
	b.logger.Printf("Decoded:         %d", stats.Decoded)
	b.logger.Printf("No results:      %d", stats.NoResults)
	b.logger.Printf("Invalid:         %d", stats.Invalid)
	b.logger.Printf("Failed:          %d", stats.Failed)

	if stats.Total > 0 {
		successRate := float64(stats.Decoded) / float64(stats.Total) * 100
		b.logger.Printf("Success rate:    %.1f%%", successRate)
	}
}
