package sentence

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	data := `Level,ID,Category,Korean,English,Notes
1,1-1,greeting,안녕하세요.,Hello.,Simple greeting
,,misc,,No level or id.,
x,bad,misc,,Bad level.,

2,2-1,"past, simple",어제 영화를 봤습니다.,"I watched a movie, yesterday.",
3,3-1,empty,,,
`
	res, err := ParseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	if len(res.Items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(res.Items), res.Items)
	}
	if res.Items[0].ID != "1-1" || res.Items[0].Source != "안녕하세요." {
		t.Errorf("item 0 = %+v", res.Items[0])
	}
	if res.Items[1].ID != "item-3" || res.Items[1].Level != 1 {
		t.Errorf("defaults not applied: %+v", res.Items[1])
	}
	if res.Items[2].Category != "past, simple" || res.Items[2].Target != "I watched a movie, yesterday." {
		t.Errorf("quoted fields = %+v", res.Items[2])
	}

	if len(res.Skipped) != 2 {
		t.Fatalf("got %d skipped rows, want 2: %v", len(res.Skipped), res.Skipped)
	}
	if res.Skipped[0].Row != 4 {
		t.Errorf("first skipped row = %d, want 4", res.Skipped[0].Row)
	}
}

func TestParseCSV_NoHeader(t *testing.T) {
	res, err := ParseCSV(strings.NewReader("1,a,,src,Hello.,\n"))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].ID != "a" {
		t.Errorf("items = %+v, want one item a", res.Items)
	}
}

func TestParseXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentences.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"level", "id", "category", "source", "target", "note"},
		{1, "1-1", "greeting", "안녕하세요.", "Hello.", ""},
		{2, "2-1", "past", "어제 영화를 봤습니다.", "I watched a movie yesterday.", "past tense"},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	f.Close()

	res, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(res.Items))
	}
	if res.Items[1].Level != 2 || res.Items[1].Note != "past tense" {
		t.Errorf("item 1 = %+v", res.Items[1])
	}
}
