package editor

import (
	"context"
	"testing"

	"github.com/pluqqy/confedit/pkg/jsondoc"
	"github.com/pluqqy/confedit/pkg/models"
)

type staticBackend struct {
	doc jsondoc.Value
}

func (b staticBackend) GetConfig(context.Context) (jsondoc.Value, error) {
	return b.doc, nil
}

func (b staticBackend) SaveConfig(context.Context, jsondoc.Value) (string, error) {
	return "config_backup_test.json", nil
}

func (b staticBackend) ListBackups(context.Context) ([]models.Backup, error) {
	return nil, nil
}

func (b staticBackend) RestoreBackup(context.Context, string) error {
	return nil
}

func nestedDoc() jsondoc.Value {
	return jsondoc.ObjectValue(
		jsondoc.Member{Key: "server", Value: jsondoc.ObjectValue(
			jsondoc.Member{Key: "port", Value: jsondoc.IntValue(8080)},
		)},
		jsondoc.Member{Key: "tags", Value: jsondoc.ArrayValue(jsondoc.StringValue("a"))},
	)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	backendDoc := nestedDoc()
	c := New(staticBackend{doc: backendDoc}, nil, nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := jsondoc.Format(nestedDoc())

	server, _ := c.working.Get("server")
	server.Set("port", jsondoc.IntValue(1))
	c.working.Set("server", server)
	tags, _ := c.working.Get("tags")
	tags.Append(jsondoc.StringValue("b"))
	c.working.Set("tags", tags)

	if got := jsondoc.Format(c.original); got != want {
		t.Errorf("mutating working changed original:\n%s", got)
	}
	if got := jsondoc.Format(backendDoc); got != want {
		t.Errorf("mutating working changed the backend's value:\n%s", got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := New(staticBackend{doc: nestedDoc()}, nil, nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	working, ok := c.Working()
	if !ok {
		t.Fatal("expected a loaded document")
	}
	working.Set("extra", jsondoc.BoolValue(true))

	if _, found := c.working.Get("extra"); found {
		t.Error("Working() must return an independent copy")
	}
}

func TestSaveReplacesBothSnapshots(t *testing.T) {
	c := New(staticBackend{doc: nestedDoc()}, nil, nil)
	ctx := context.Background()
	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	c.OnTextEdited(`{"only":true}`)
	if err := c.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if got := jsondoc.Compact(c.original); got != `{"only":true}` {
		t.Errorf("original = %s", got)
	}
	if !jsondoc.Equal(c.original, c.working) {
		t.Error("working should equal original after save")
	}
	c.working.Set("only", jsondoc.BoolValue(false))
	if got := jsondoc.Compact(c.original); got != `{"only":true}` {
		t.Errorf("working aliases original after save: %s", got)
	}
}

func TestLineDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want []DiffLine
	}{
		{
			name: "identical",
			a:    "x\ny",
			b:    "x\ny\n",
			want: []DiffLine{{DiffEqual, "x"}, {DiffEqual, "y"}},
		},
		{
			name: "changed middle line",
			a:    "a\nb\nc",
			b:    "a\nB\nc",
			want: []DiffLine{{DiffEqual, "a"}, {DiffDelete, "b"}, {DiffInsert, "B"}, {DiffEqual, "c"}},
		},
		{
			name: "from empty",
			a:    "",
			b:    "new",
			want: []DiffLine{{DiffInsert, "new"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineDiff(tt.a, tt.b)
			if len(got) != len(tt.want) {
				t.Fatalf("LineDiff() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiffLineString(t *testing.T) {
	if got := (DiffLine{DiffInsert, "x"}).String(); got != "+ x" {
		t.Errorf("insert = %q", got)
	}
	if got := (DiffLine{DiffDelete, "x"}).String(); got != "- x" {
		t.Errorf("delete = %q", got)
	}
	if got := (DiffLine{DiffEqual, "x"}).String(); got != "  x" {
		t.Errorf("equal = %q", got)
	}
}
