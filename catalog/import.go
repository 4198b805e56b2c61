package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"github.com/poiesic/coursematch/core"
	"golang.org/x/text/unicode/norm"
)

// Keywords used to derive item flags when the source does not carry them.
var (
	SpecializedKeywords = []string{"quantum", "qubit", "superposition", "entanglement"}
	LocaleKeywords      = []string{"uganda", "ugandan", "kampala", "east africa"}
)

// columnAliases lists accepted header names per field, most specific first.
var columnAliases = map[string][]string{
	"name":        {"course_name", "name", "title"},
	"provider":    {"provider", "source", "platform"},
	"description": {"description", "summary"},
	"skills":      {"skills_list", "skills", "tags"},
	"difficulty":  {"difficulty", "level"},
	"topic":       {"topic_cluster", "topic", "category"},
	"rating":      {"rating", "score"},
	"specialized": {"has_quantum", "specialized"},
	"locale":      {"has_uganda_context", "locale_context"},
	"url":         {"url", "link"},
}

// ReadFile imports a catalog file, choosing the format by extension:
// .csv, .tsv, .jsonl or .ndjson.
func ReadFile(path string) ([]*core.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f, ',')
	case ".tsv":
		return ReadCSV(f, '\t')
	case ".jsonl", ".ndjson":
		return ReadJSONL(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV imports items from delimited text with a header row.
func ReadCSV(r io.Reader, comma rune) ([]*core.Item, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyCatalog
	}

	cols := resolveColumns(rows[0])
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(columnAliases["name"], "|"))
	}

	cell := func(row []string, field string) string {
		idx, ok := cols[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return cleanCell(row[idx])
	}

	items := make([]*core.Item, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlank(row) {
			continue
		}
		rec := record{
			Name:        cell(row, "name"),
			Provider:    cell(row, "provider"),
			Description: cell(row, "description"),
			Skills:      splitSkills(cell(row, "skills")),
			Difficulty:  cell(row, "difficulty"),
			Topic:       cell(row, "topic"),
			URL:         cell(row, "url"),
		}
		if raw := cell(row, "rating"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: rating %q", ErrInvalidRow, line, raw)
			}
			rec.Rating = &v
		}
		if rec.Specialized, err = parseFlag(cell(row, "specialized")); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidRow, line, err)
		}
		if rec.LocaleContext, err = parseFlag(cell(row, "locale")); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidRow, line, err)
		}

		item, err := rec.item()
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidRow, line, err)
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	return items, nil
}

// ReadJSONL imports items from JSON Lines, one object per line.
func ReadJSONL(r io.Reader) ([]*core.Item, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var items []*core.Item
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidRow, line, err)
		}
		rec.Name = cleanCell(rec.Name)
		rec.Provider = cleanCell(rec.Provider)
		rec.Description = cleanCell(rec.Description)
		rec.Difficulty = cleanCell(rec.Difficulty)
		rec.Topic = cleanCell(rec.Topic)
		rec.URL = cleanCell(rec.URL)
		for i, s := range rec.Skills {
			rec.Skills[i] = strings.ToLower(cleanCell(s))
		}

		item, err := rec.item()
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidRow, line, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}

	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	return items, nil
}

// record is the import shape shared by the CSV and JSONL readers.
type record struct {
	Name          string   `json:"course_name"`
	Provider      string   `json:"provider"`
	Description   string   `json:"description"`
	Skills        []string `json:"skills_list"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic_cluster"`
	Rating        *float64 `json:"rating"`
	Specialized   *bool    `json:"has_quantum"`
	LocaleContext *bool    `json:"has_uganda_context"`
	URL           string   `json:"url"`
}

func (r record) item() (*core.Item, error) {
	item := &core.Item{
		Name:        r.Name,
		Provider:    r.Provider,
		Description: r.Description,
		Skills:      r.Skills,
		Difficulty:  r.Difficulty,
		Topic:       r.Topic,
		Rating:      r.Rating,
		URL:         r.URL,
	}

	text := strings.ToLower(item.Text())
	if r.Specialized != nil {
		item.Specialized = *r.Specialized
	} else {
		item.Specialized = mentionsAny(text, SpecializedKeywords)
	}
	if r.LocaleContext != nil {
		item.LocaleContext = *r.LocaleContext
	} else {
		item.LocaleContext = mentionsAny(text, LocaleKeywords)
	}

	if err := core.ValidateItem(item); err != nil {
		return nil, err
	}
	item.Id = core.IDFromContent(item.Key())
	return item, nil
}

func resolveColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(cleanCell(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	cols := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[field] = i
				break
			}
		}
	}
	return cols
}

// cleanCell applies NFKC normalization, trims whitespace and drops control characters.
func cleanCell(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// splitSkills accepts "a, b", "a; b", "a|b" and list literals like "['a', 'b']".
func splitSkills(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `'"`)
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// parseFlag returns nil for an empty cell so the flag can be derived.
func parseFlag(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "yes", "y":
		v := true
		return &v, nil
	case "no", "n":
		v := false
		return &v, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("flag %q: %w", raw, err)
	}
	return &v, nil
}

func mentionsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
