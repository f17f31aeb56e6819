package source

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cocoset/pkg/core"
)

// Entry is one manifest record: a corpus sample plus the upstream pool it
// lives in and the annotation kinds available for it.
type Entry struct {
	core.Sample
	Pool   string   `json:"pool" yaml:"pool"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// ManifestSource streams samples from a JSON or JSONL manifest file. The
// format is detected from the extension, falling back to sniffing the
// first byte.
type ManifestSource struct {
	Path     string
	NameHint string
	// Seed fixes the shuffle order; zero seeds from the clock.
	Seed int64
}

func NewManifestSource(path string) *ManifestSource {
	return &ManifestSource{Path: path}
}

func (s *ManifestSource) Name() string {
	if s.NameHint != "" {
		return s.NameHint
	}
	return filepath.Base(s.Path)
}

// Len returns the number of manifest entries, ignoring any query filters.
func (s *ManifestSource) Len(ctx context.Context) (int, error) {
	format, err := detectFormat(s.Path)
	if err != nil {
		return 0, err
	}
	switch format {
	case "json":
		entries, err := loadJSONEntries(s.Path)
		if err != nil {
			return 0, err
		}
		return len(entries), nil
	case "jsonl":
		return countJSONLLines(ctx, s.Path)
	default:
		return 0, errors.New("source: unsupported manifest format")
	}
}

// Retrieve streams manifest samples matching the query. With Shuffle set
// the matching entries are materialized and randomized before emission;
// otherwise JSONL manifests stream line by line.
func (s *ManifestSource) Retrieve(ctx context.Context, q core.Query) (<-chan core.Sample, <-chan error) {
	sampleCh := make(chan core.Sample)
	errCh := make(chan error, 1)

	go func() {
		defer close(sampleCh)
		defer close(errCh)

		format, err := detectFormat(s.Path)
		if err != nil {
			errCh <- err
			return
		}

		switch format {
		case "json":
			entries, err := loadJSONEntries(s.Path)
			if err != nil {
				errCh <- err
				return
			}
			if err := s.emit(ctx, entries, q, sampleCh); err != nil {
				errCh <- err
			}
		case "jsonl":
			if q.Shuffle {
				entries, err := loadJSONLEntries(ctx, s.Path)
				if err != nil {
					errCh <- err
					return
				}
				if err := s.emit(ctx, entries, q, sampleCh); err != nil {
					errCh <- err
				}
				return
			}
			if err := streamJSONL(ctx, s.Path, q, sampleCh); err != nil {
				errCh <- err
			}
		default:
			errCh <- errors.New("source: unsupported manifest format")
		}
	}()

	return sampleCh, errCh
}

func (s *ManifestSource) emit(ctx context.Context, entries []Entry, q core.Query, out chan<- core.Sample) error {
	matched := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.matches(q) {
			matched = append(matched, entry)
		}
	}

	if q.Shuffle {
		seed := s.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(matched), func(i, j int) {
			matched[i], matched[j] = matched[j], matched[i]
		})
	}

	for i, entry := range matched {
		if q.MaxSamples > 0 && i >= q.MaxSamples {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- entry.Sample:
		}
	}
	return nil
}

func (e Entry) matches(q core.Query) bool {
	if q.Pool != "" && e.Pool != q.Pool {
		return false
	}
	if !e.Sample.HasAnyClass(q.Classes) {
		return false
	}
	if q.LabelKind != "" && len(e.Labels) > 0 {
		found := false
		for _, label := range e.Labels {
			if label == string(q.LabelKind) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func detectFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jsonl":
		return "jsonl", nil
	case ".json":
		return "json", nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}
		if b == '[' {
			return "json", nil
		}
		if b == '{' {
			return "jsonl", nil
		}
		return "", errors.New("source: unsupported manifest format")
	}
}

func loadJSONEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func loadJSONLEntries(ctx context.Context, path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := newLineScanner(file)
	var entries []Entry
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func streamJSONL(ctx context.Context, path string, q core.Query, out chan<- core.Sample) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := newLineScanner(file)
	yielded := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if q.MaxSamples > 0 && yielded >= q.MaxSamples {
			return nil
		}
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return err
		}
		if !entry.matches(q) {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- entry.Sample:
			yielded++
		}
	}
	return scanner.Err()
}

func countJSONLLines(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := newLineScanner(file)
	count := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

func newLineScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)
	return scanner
}
