package domain

import "testing"

func TestDatasetAppend(t *testing.T) {
	t.Parallel()

	dataset := NewDataset([]string{"text"}, []Record{{"text": "a"}, {"text": "b"}})

	extended, err := dataset.Append(Column{Name: "sentiment", Values: []any{"positive", "negative"}})
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}

	if got := extended.Columns(); len(got) != 2 || got[0] != "text" || got[1] != "sentiment" {
		t.Fatalf("unexpected columns: %v", got)
	}
	if extended.Value(1, "sentiment") != "negative" {
		t.Fatalf("unexpected value: %v", extended.Value(1, "sentiment"))
	}

	// receiver stays untouched
	if dataset.HasColumn("sentiment") {
		t.Fatal("Append mutated the source dataset schema")
	}
	if _, ok := dataset.Row(0)["sentiment"]; ok {
		t.Fatal("Append mutated a source record")
	}
}

func TestDatasetAppendRejectsBadColumns(t *testing.T) {
	t.Parallel()

	dataset := NewDataset([]string{"text"}, []Record{{"text": "a"}})

	if _, err := dataset.Append(Column{Name: "extra", Values: []any{1, 2}}); err == nil {
		t.Fatal("expected error for value count mismatch")
	}
	if _, err := dataset.Append(Column{Name: "text", Values: []any{"x"}}); err == nil {
		t.Fatal("expected error for duplicate column")
	}
}
