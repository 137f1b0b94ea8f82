package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/confedit/pkg/jsondoc"
	"github.com/pluqqy/confedit/pkg/models"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTable OutputFormat = "table"
)

// OutputResults formats and outputs results based on the specified format
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(data)

	case FormatYAML:
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(yamlData))
		return nil

	case FormatText, FormatTable:
		// For text format, we expect the caller to have already formatted
		// the data appropriately. This is a fallback.
		fmt.Fprintf(w, "%v\n", data)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// BackupRecord is the json/yaml shape of a backup listing entry
type BackupRecord struct {
	Filename string    `json:"filename" yaml:"filename"`
	Name     string    `json:"name" yaml:"name"`
	Modified time.Time `json:"modified" yaml:"modified"`
	Size     int64     `json:"size" yaml:"size"`
}

// BackupRecords converts backups for structured output
func BackupRecords(backups []models.Backup) []BackupRecord {
	records := make([]BackupRecord, 0, len(backups))
	for _, b := range backups {
		records = append(records, BackupRecord{
			Filename: b.Filename,
			Name:     b.DisplayName(),
			Modified: b.ModifiedAt,
			Size:     b.SizeBytes,
		})
	}
	return records
}

// RenderBackupsTable writes backups as a table, newest first as given
func RenderBackupsTable(w io.Writer, backups []models.Backup, now time.Time) {
	if len(backups) == 0 {
		fmt.Fprintln(w, "No backups available")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if noColor {
		t.SetStyle(table.StyleLight)
	}

	t.AppendHeader(table.Row{header("#"), header("BACKUP"), header("MODIFIED"), header("AGE"), header("SIZE")})
	for i, b := range backups {
		t.AppendRow(table.Row{
			i + 1,
			TruncateString(b.DisplayName(), 40),
			b.ModifiedAt.Local().Format("2006-01-02 15:04:05"),
			humanize.RelTime(b.ModifiedAt, now, "ago", "from now"),
			FormatBytes(b.SizeBytes),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d backups", len(backups)), "", "", ""})
	t.Render()
}

func header(s string) string {
	if noColor {
		return s
	}
	return text.FgHiCyan.Sprint(s)
}

// FormatBytes formats byte count in human-readable format
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// TruncateString truncates a string to the specified display width
func TruncateString(s string, maxLen int) string {
	if maxLen <= 3 {
		return truncate.String(s, uint(maxLen))
	}
	return truncate.StringWithTail(s, uint(maxLen), "...")
}

// DocumentYAML renders a JSON document as YAML, keeping member order
func DocumentYAML(v jsondoc.Value) (string, error) {
	out, err := yaml.Marshal(documentNode(v))
	if err != nil {
		return "", fmt.Errorf("failed to render yaml: %w", err)
	}
	return string(out), nil
}

func documentNode(v jsondoc.Value) *yaml.Node {
	switch v.Kind() {
	case jsondoc.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				documentNode(m.Value),
			)
		}
		return node
	case jsondoc.Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			node.Content = append(node.Content, documentNode(item))
		}
		return node
	case jsondoc.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case jsondoc.Number:
		tag := "!!float"
		if _, err := strconv.ParseInt(v.Literal(), 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Literal()}
	case jsondoc.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(v.Bool())}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
