package importer

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/xuri/excelize/v2"

	"github.com/example/wordwise/pkg/models"
)

// Result holds the outcome of parsing an import file.
type Result struct {
	Words   []models.Word
	Skipped int
	Errors  []string
}

// FromFile parses word records out of path, dispatching on the extension.
// Supported formats: .txt (one word per line), .csv, .json, .xlsx and
// SQLite databases (.db/.sqlite/.sqlite3).
func FromFile(path string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %v", err)
		}
		defer f.Close()
		return FromTXT(f)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %v", err)
		}
		defer f.Close()
		return FromCSV(f)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %v", err)
		}
		defer f.Close()
		return FromJSON(f)
	case ".xlsx":
		return fromXLSX(path)
	case ".db", ".sqlite", ".sqlite3":
		return fromSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported import format %q", filepath.Ext(path))
	}
}

// FromTXT reads one word per line. Blank lines are skipped; anything after
// the first whitespace on a line is ignored.
func FromTXT(r io.Reader) (*Result, error) {
	result := &Result{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		word := normalize(fields[0])
		if word == "" {
			result.Skipped++
			continue
		}
		result.Words = append(result.Words, models.Word{Text: word})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read txt: %v", err)
	}
	return result, nil
}

// FromCSV reads word records from columns word, translation, phonetic,
// difficulty. A header row whose first cell is "word" is skipped; trailing
// columns are optional.
func FromCSV(r io.Reader) (*Result, error) {
	result := &Result{}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %v", err)
		}
		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "word") {
			continue
		}
		word, ok := rowToWord(record)
		if !ok {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: empty word", line))
			continue
		}
		result.Words = append(result.Words, word)
	}
	return result, nil
}

// jsonRecord mirrors the exported review format.
type jsonRecord struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Phonetic    string `json:"phonetic"`
	Difficulty  int    `json:"difficulty"`
}

// FromJSON reads an array of word objects.
func FromJSON(r io.Reader) (*Result, error) {
	var records []jsonRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode json: %v", err)
	}
	result := &Result{}
	for i, rec := range records {
		word := normalize(rec.Word)
		if word == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: empty word", i))
			continue
		}
		result.Words = append(result.Words, models.Word{
			Text:        word,
			Translation: rec.Translation,
			Phonetic:    rec.Phonetic,
			Difficulty:  rec.Difficulty,
		})
	}
	return result, nil
}

// fromXLSX reads columns A-D of the first sheet, skipping a header row when
// cell A1 is "word".
func fromXLSX(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &Result{}
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "word") {
			continue
		}
		word, ok := rowToWord(row)
		if !ok {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: empty word", i+1))
			continue
		}
		result.Words = append(result.Words, word)
	}
	return result, nil
}

// fromSQLite reads the words table of a SQLite export.
func fromSQLite(path string) (*Result, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite file: %v", err)
	}
	defer db.Close()

	type row struct {
		Word        string `db:"word"`
		Translation string `db:"translation"`
		Phonetic    string `db:"phonetic"`
		Difficulty  int    `db:"difficulty"`
	}
	var rows []row
	err = db.Select(&rows, `
		SELECT word,
		       coalesce(translation, '') AS translation,
		       coalesce(phonetic, '') AS phonetic,
		       coalesce(difficulty, 0) AS difficulty
		FROM words
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read words table: %v", err)
	}

	result := &Result{}
	for _, r := range rows {
		word := normalize(r.Word)
		if word == "" {
			result.Skipped++
			continue
		}
		result.Words = append(result.Words, models.Word{
			Text:        word,
			Translation: r.Translation,
			Phonetic:    r.Phonetic,
			Difficulty:  r.Difficulty,
		})
	}
	return result, nil
}

func rowToWord(record []string) (models.Word, bool) {
	get := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	word := normalize(get(0))
	if word == "" {
		return models.Word{}, false
	}
	difficulty, _ := strconv.Atoi(get(3))
	return models.Word{
		Text:        word,
		Translation: get(1),
		Phonetic:    get(2),
		Difficulty:  difficulty,
	}, true
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
