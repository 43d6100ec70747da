package photo

import (
	"context"
	"fmt"
	"io"
)

// Assignment records that a file was attached to a word.
type Assignment struct {
	Word string
	File string
	Ref  string
}

// Result summarizes an import batch.
type Result struct {
	Assigned []Assignment
	Skipped  []error
}

// Import reads the batch from src and, for every file matching one of words,
// stores its bytes in blobs and overrides the word's image. Files are handled
// in batch order so a later match for the same word wins. A batch without
// matches leaves overrides untouched.
func Import(ctx context.Context, src Source, words []string, overrides *Overrides, blobs *Blobs) (Result, error) {
	files, err := src.Files(ctx)
	if err != nil {
		return Result{}, err
	}
	var res Result
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		matched := matchingWords(f.Name, words)
		if len(matched) == 0 {
			continue
		}
		data, err := readAll(f)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		ref := blobs.Put(f.Name, data)
		for _, w := range matched {
			overrides.Set(w, ref)
			res.Assigned = append(res.Assigned, Assignment{Word: w, File: f.Name, Ref: ref})
		}
	}
	return res, nil
}

// Preview lists which words each file name would be attached to without
// reading any file.
func Preview(names []string, words []string) []Assignment {
	var out []Assignment
	for _, name := range names {
		for _, w := range matchingWords(name, words) {
			out = append(out, Assignment{Word: w, File: name})
		}
	}
	return out
}

func matchingWords(filename string, words []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		if Match(filename, w) {
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

func readAll(f File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			// Best-effort close for a read-only file.
			_ = cerr
		}
	}()
	return io.ReadAll(rc)
}
