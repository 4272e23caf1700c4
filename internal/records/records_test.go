package records_test

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/ghintake/internal/records"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 15, 123_000_000, time.UTC)

// --- Slugify / ImagePath ---

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Mega Bot!", "mega-bot"},
		{"Operating Systems: Three Easy Pieces", "operating-systems-three-easy-pieces"},
		{"  leading/trailing  ", "leading-trailing"},
		{"café au lait", "caf-au-lait"},
		{"---all-dashes---", "all-dashes"},
		{"123abc", "123abc"},
		{"", "set"},
		{"!!!", "set"},
	}
	for _, c := range cases {
		if got := records.Slugify(c.in, "set"); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestImagePath_KeepsExtensionCase(t *testing.T) {
	got := records.ImagePath("images/submissions", "Mega Bot!", "submission", "photo.PNG", fixedNow)
	want := "images/submissions/mega-bot-1772357415123.PNG"
	if got != want {
		t.Errorf("ImagePath = %q, want %q", got, want)
	}
}

func TestImagePath_DefaultsExtensionAndSlug(t *testing.T) {
	got := records.ImagePath("images", "", "set", "photo", fixedNow)
	if got != "images/set-1772357415123.jpg" {
		t.Errorf("ImagePath = %q", got)
	}
}

func TestImagePath_IgnoresClientDirectories(t *testing.T) {
	got := records.ImagePath("images", "x", "set", `C:\Users\me\pic.v2.gif`, fixedNow)
	if !strings.HasSuffix(got, ".gif") {
		t.Errorf("ImagePath = %q, want .gif suffix", got)
	}
}

// --- ParseNumber / Number ---

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.50", 12.5},
		{"  7", 7},
		{"12.50 USD", 12.5},
		{"-3e2", -300},
		{".5", 0.5},
		{"1e", 1},
		{"0x10", 0},
	}
	for _, c := range cases {
		if got := float64(records.ParseNumber(c.in)); got != c.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseNumber_NaN(t *testing.T) {
	for _, in := range []string{"abc", "", "$5", "."} {
		if !records.ParseNumber(in).IsNaN() {
			t.Errorf("ParseNumber(%q) should be NaN", in)
		}
	}
}

func TestNumber_NonFiniteEncodesAsNull(t *testing.T) {
	for _, n := range []records.Number{records.Number(math.NaN()), records.Number(math.Inf(1))} {
		b, err := json.Marshal(n)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if string(b) != "null" {
			t.Errorf("Marshal(%v) = %s, want null", float64(n), b)
		}
	}
	var back records.Number
	if err := json.Unmarshal([]byte("null"), &back); err != nil || !back.IsNaN() {
		t.Errorf("Unmarshal(null) = %v, %v; want NaN", float64(back), err)
	}
}

// --- Builders ---

func TestNewCatalogSubmission(t *testing.T) {
	sub := records.NewCatalogSubmission(map[string]string{
		"contributorName": "Alice",
		"series":          "S1",
		"rarity":          "Rare",
		"estimatedValue":  "12.50",
	}, nil, fixedNow)

	if !regexp.MustCompile(`^sub-1772357415123-[0-9a-z]{9}$`).MatchString(sub.ID) {
		t.Errorf("ID = %q", sub.ID)
	}
	if float64(sub.EstimatedValue) != 12.5 {
		t.Errorf("EstimatedValue = %v", float64(sub.EstimatedValue))
	}
	if sub.Status != records.StatusApproved {
		t.Errorf("Status = %q", sub.Status)
	}
	if sub.SubmittedAt != "2026-03-01T09:30:15.123Z" {
		t.Errorf("SubmittedAt = %q", sub.SubmittedAt)
	}
	if sub.ImagePath != nil || sub.CharacterName != "" || sub.Notes != "" {
		t.Errorf("optional fields not defaulted: %+v", sub)
	}

	b, _ := json.Marshal(sub)
	if !strings.Contains(string(b), `"imagePath":null`) {
		t.Errorf("imagePath should encode as null: %s", b)
	}
}

func TestNewSubmissionID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := records.NewSubmissionID(fixedNow)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewPriceEntry(t *testing.T) {
	p := "images/x-1.jpg"
	e := records.NewPriceEntry(map[string]string{
		"set_name": "Castle", "store": "Target", "price": "9.99", "date_seen": "2026-01-02",
	}, &p)
	if e.Notes != "" || e.ImagePath == nil || *e.ImagePath != p {
		t.Errorf("entry = %+v", e)
	}
	b, _ := json.Marshal(records.NewPriceEntry(map[string]string{"set_name": "x"}, nil))
	if !strings.Contains(string(b), `"image_path":null`) || !strings.Contains(string(b), `"notes":""`) {
		t.Errorf("encoded = %s", b)
	}
}

// --- List codec ---

func TestParseList_Lenient(t *testing.T) {
	for _, in := range []string{"", "not json", `{"a":1}`, "42", "null", "[1,"} {
		if got := records.ParseList([]byte(in)); len(got) != 0 {
			t.Errorf("ParseList(%q) len = %d, want 0", in, len(got))
		}
	}
}

func TestIsList(t *testing.T) {
	cases := map[string]bool{
		"[]":         true,
		" [\n{}]\n ": true,
		"":           false,
		"null":       false,
		`{"a":1}`:    false,
		"[1,":        false,
	}
	for in, want := range cases {
		if got := records.IsList([]byte(in)); got != want {
			t.Errorf("IsList(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestList_AppendKeepsOrderAndUnknownFields(t *testing.T) {
	list := records.ParseList([]byte(`[{"id":"a","extra":{"k":[1,2]}},{"id":"b"}]`))
	list, err := records.AppendRecord(list, map[string]string{"id": "c"})
	if err != nil {
		t.Fatalf("AppendRecord: %v", err)
	}
	data, err := records.MarshalList(list)
	if err != nil {
		t.Fatalf("MarshalList: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("len = %d, want 3", len(decoded))
	}
	for i, want := range []string{"a", "b", "c"} {
		if decoded[i]["id"] != want {
			t.Errorf("[%d] id = %v, want %s", i, decoded[i]["id"], want)
		}
	}
	if _, ok := decoded[0]["extra"]; !ok {
		t.Error("unknown field dropped")
	}
	if !strings.HasPrefix(string(data), "[\n  {") {
		t.Errorf("not two-space indented: %q", data[:10])
	}
}

func TestList_RoundTrip(t *testing.T) {
	orig := []records.PriceEntry{
		records.NewPriceEntry(map[string]string{"set_name": "one", "price": "1"}, nil),
		records.NewPriceEntry(map[string]string{"set_name": "two", "price": "2"}, nil),
	}
	var list []json.RawMessage
	for _, e := range orig {
		list, _ = records.AppendRecord(list, e)
	}
	data, err := records.MarshalList(list)
	if err != nil {
		t.Fatalf("MarshalList: %v", err)
	}
	var back []records.PriceEntry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(back) != len(orig) {
		t.Fatalf("len = %d, want %d", len(back), len(orig))
	}
	for i := range orig {
		if back[i].SetName != orig[i].SetName || back[i].Price != orig[i].Price {
			t.Errorf("[%d] = %+v, want %+v", i, back[i], orig[i])
		}
	}
}

func TestMarshalList_Empty(t *testing.T) {
	data, err := records.MarshalList(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("MarshalList(nil) = %q, want []", data)
	}
}
