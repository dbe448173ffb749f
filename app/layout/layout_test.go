package layout

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/lysyi3m/icon-lists/app/iconset"
)

func sampleRecords() []iconset.Record {
	return []iconset.Record{
		{Name: "zoom", Categories: []string{"Maps"}, Tags: []string{"lens", "zoom"}, Popularity: 10},
		{Name: "alarm", Categories: []string{"Devices", "alerts"}, Tags: []string{"alarm", "bell", "clock"}, Popularity: 30},
		{Name: "bell", Categories: []string{"alerts"}, Tags: []string{"bell"}, Popularity: 30},
		{Name: "compass", Categories: []string{"Maps", "Maps"}, Tags: nil, Popularity: 0},
	}
}

func TestLayout_Counts(t *testing.T) {
	bundle := Layout(sampleRecords(), true)

	if bundle.Full.CountOfIcons != 4 {
		t.Errorf("Expected 4 icons, got %d", bundle.Full.CountOfIcons)
	}
	if bundle.Full.CountOfTags != 6 {
		t.Errorf("Expected countOfTags 6, got %d", bundle.Full.CountOfTags)
	}
	if bundle.Full.CountOfCategories != 3 {
		t.Errorf("Expected 3 categories, got %d", bundle.Full.CountOfCategories)
	}

	expected := []CategoryCount{
		{Name: "alerts", Count: 2},
		{Name: "Devices", Count: 1},
		{Name: "Maps", Count: 3},
	}
	if !reflect.DeepEqual(bundle.Full.Categories, expected) {
		t.Errorf("Expected categories %v, got %v", expected, bundle.Full.Categories)
	}
}

func TestLayout_Orders(t *testing.T) {
	records := sampleRecords()
	bundle := Layout(records, true)

	if !reflect.DeepEqual(bundle.Alphabetical, []string{"zoom", "alarm", "bell", "compass"}) {
		t.Errorf("Expected insertion order, got %v", bundle.Alphabetical)
	}

	want := []string{"alarm", "bell", "zoom", "compass"}
	if !reflect.DeepEqual(bundle.ByPopularity, want) {
		t.Errorf("Expected %v, got %v", want, bundle.ByPopularity)
	}

	sortedNames := append([]string(nil), bundle.ByPopularity...)
	sort.Strings(sortedNames)
	alphabetical := append([]string(nil), bundle.Alphabetical...)
	sort.Strings(alphabetical)
	if !reflect.DeepEqual(sortedNames, alphabetical) {
		t.Errorf("Expected popularity order to be a permutation of all names")
	}

	if records[0].Name != "zoom" {
		t.Error("Expected input records to stay unmodified")
	}
}

func TestLayout_WithoutPopularity(t *testing.T) {
	bundle := Layout(sampleRecords(), false)

	if bundle.ByPopularity != nil {
		t.Errorf("Expected no popularity order, got %v", bundle.ByPopularity)
	}

	data, err := json.Marshal(bundle.Full)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"p":`) {
		t.Errorf("Expected icons without popularity, got %s", data)
	}
}

func TestLayout_JSONShape(t *testing.T) {
	bundle := Layout([]iconset.Record{
		{Name: "compass", Categories: nil, Tags: nil, Popularity: 0},
	}, true)

	data, err := json.Marshal(bundle.Full)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"countOfIcons":1,"countOfCategories":0,"countOfTags":0,"categories":[],"icons":[{"n":"compass","p":0,"c":[],"t":[]}]}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestLayout_Empty(t *testing.T) {
	bundle := Layout(nil, true)

	if bundle.Full.CountOfIcons != 0 || len(bundle.Full.Icons) != 0 {
		t.Errorf("Expected empty bundle, got %+v", bundle.Full)
	}
	if bundle.Alphabetical == nil || bundle.ByPopularity == nil {
		t.Error("Expected empty lists rather than nil for an empty set with popularity")
	}
}

func TestLayout_RepeatedCategoryCountsEveryOccurrence(t *testing.T) {
	bundle := Layout([]iconset.Record{
		{Name: "pin", Categories: []string{"A", "A"}},
	}, false)

	if !reflect.DeepEqual(bundle.Full.Icons[0].Categories, []string{"A", "A"}) {
		t.Errorf("Expected categories to be emitted as given, got %v", bundle.Full.Icons[0].Categories)
	}
	if !reflect.DeepEqual(bundle.Full.Categories, []CategoryCount{{Name: "A", Count: 2}}) {
		t.Errorf("Expected count to match the icon's category list, got %v", bundle.Full.Categories)
	}
}

func TestLayout_PopularityTiesFollowCollation(t *testing.T) {
	bundle := Layout([]iconset.Record{
		{Name: "Bell", Categories: []string{"Zebra"}, Popularity: 5},
		{Name: "alarm", Categories: []string{"apple"}, Popularity: 5},
		{Name: "top", Popularity: 9},
	}, true)

	want := []string{"top", "alarm", "Bell"}
	if !reflect.DeepEqual(bundle.ByPopularity, want) {
		t.Errorf("Expected %v, got %v", want, bundle.ByPopularity)
	}
	if bundle.Full.Categories[0].Name != "apple" {
		t.Errorf("Expected categories in the same collation order, got %v", bundle.Full.Categories)
	}
}
