// package formatter exports a channel list to CSV, Markdown, plain text and JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/m3ux/internal/m3u"
	"github.com/desertthunder/m3ux/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat resolves a user-supplied format name, accepting "md" and "text" as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json", "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, name)
	}
}

// Export is a loaded playlist plus the file it came from.
type Export struct {
	Name     string
	Source   string
	Playlist *m3u.Playlist
}

// NewExport names the export after the base name of source without its extension.
func NewExport(source string, p *m3u.Playlist) *Export {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if source == "" {
		name = "playlist"
	}
	return &Export{Name: name, Source: source, Playlist: p}
}

// Channel is one exported entry.
type Channel struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Attributes string `json:"attributes"`
	Location   string `json:"location"`
}

// Channels flattens the playlist entries in order.
func (e *Export) Channels() []Channel {
	channels := make([]Channel, 0, e.Playlist.Len())
	if e.Playlist == nil {
		return channels
	}
	for i, entry := range e.Playlist.Entries {
		channels = append(channels, Channel{
			Index:      i,
			Name:       entry.Name(),
			Attributes: entry.Attributes(),
			Location:   entry.Location,
		})
	}
	return channels
}

// ExportToCSV converts an Export to CSV with columns: Index, Name, Attributes, Location
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Index", "Name", "Attributes", "Location"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, ch := range export.Channels() {
		record := []string{strconv.Itoa(ch.Index), ch.Name, ch.Attributes, ch.Location}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an Export to a Markdown channel list
func ExportToMarkdown(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Name))
	if export.Source != "" {
		buf.WriteString(fmt.Sprintf("**Source**: %s\n", export.Source))
	}
	buf.WriteString(fmt.Sprintf("**Channels**: %d\n", export.Playlist.Len()))
	buf.WriteString(fmt.Sprintf("**Header**: %s\n\n", yesNo(export.Playlist != nil && export.Playlist.HasHeader())))

	buf.WriteString("## Channels\n\n")
	for _, ch := range export.Channels() {
		attrs := ""
		if ch.Attributes != "" {
			attrs = fmt.Sprintf(" `%s`", ch.Attributes)
		}
		buf.WriteString(fmt.Sprintf("%d. [%s](%s)%s\n", ch.Index+1, ch.Name, ch.Location, attrs))
	}

	return buf.Bytes(), nil
}

// ExportToText converts an Export to plain text
func ExportToText(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", export.Name))
	if export.Source != "" {
		buf.WriteString(fmt.Sprintf("Source: %s\n", export.Source))
	}
	buf.WriteString(fmt.Sprintf("Channels: %d\n\n", export.Playlist.Len()))

	for _, ch := range export.Channels() {
		buf.WriteString(fmt.Sprintf("%d. %s\n   %s\n", ch.Index+1, ch.Name, ch.Location))
	}

	return buf.Bytes(), nil
}

type jsonExport struct {
	Name      string    `json:"name"`
	Source    string    `json:"source,omitempty"`
	HasHeader bool      `json:"has_header"`
	Channels  []Channel `json:"channels"`
}

// ExportToJSON converts an Export to indented JSON
func ExportToJSON(export *Export) ([]byte, error) {
	return shared.MarshalJSON(jsonExport{
		Name:      export.Name,
		Source:    export.Source,
		HasHeader: export.Playlist != nil && export.Playlist.HasHeader(),
		Channels:  export.Channels(),
	}, true)
}

// ToMetadataJSON generates a JSON summary of the playlist (without channels)
func ToMetadataJSON(export *Export) ([]byte, error) {
	return shared.MarshalJSON(map[string]any{
		"name":       export.Name,
		"source":     export.Source,
		"has_header": export.Playlist != nil && export.Playlist.HasHeader(),
		"channels":   export.Playlist.Len(),
	}, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ChannelsFile string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with accompanying metadata JSON file.
//
// Defaults to the export name as the base filename & creates {base}_channels.csv and {base}_metadata.json
func WriteCSVExport(export *Export, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Name
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	channelsFile := baseFilepath + "_channels.csv"
	if err := os.WriteFile(channelsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("%w: failed to write CSV file: %w", shared.ErrIOFailure, err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("%w: failed to write metadata file: %w", shared.ErrIOFailure, err)
	}

	return &CSVExportResult{ChannelsFile: channelsFile, MetadataFile: metadataFile}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports a playlist to {dir}/README.md.
//
// Directory name defaults to the export name.
func WriteMarkdownExport(export *Export, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = export.Name
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory: %w", shared.ErrIOFailure, err)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("%w: failed to write Markdown file: %w", shared.ErrIOFailure, err)
	}

	return &MarkdownExportResult{Directory: outputDir, Files: []string{mdFile}}, nil
}

// WriteTextExport exports a playlist to plain text format.
//
// Defaults to {name}_channels.txt as the filename.
func WriteTextExport(export *Export, path string) (string, error) {
	if path == "" {
		path = export.Name + "_channels.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("%w: failed to write text file: %w", shared.ErrIOFailure, err)
	}

	return path, nil
}

// WriteJSONExport exports a playlist to JSON. Defaults to {name}.json.
func WriteJSONExport(export *Export, path string) (string, error) {
	if path == "" {
		path = export.Name + ".json"
	}

	data, err := ExportToJSON(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: failed to write JSON file: %w", shared.ErrIOFailure, err)
	}

	return path, nil
}

// Write exports in format under output and returns the files written.
//
// output is a base path for CSV, a directory for Markdown and a file path otherwise.
func Write(export *Export, format Format, output string) ([]string, error) {
	switch format {
	case FormatCSV:
		res, err := WriteCSVExport(export, output)
		if err != nil {
			return nil, err
		}
		return []string{res.ChannelsFile, res.MetadataFile}, nil
	case FormatMarkdown:
		res, err := WriteMarkdownExport(export, output)
		if err != nil {
			return nil, err
		}
		return res.Files, nil
	case FormatText:
		path, err := WriteTextExport(export, output)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	case FormatJSON:
		path, err := WriteJSONExport(export, output)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// ManifestEntry is one file's outcome in a bulk export manifest.
type ManifestEntry struct {
	Source   string   `json:"source"`
	Name     string   `json:"name"`
	Channels int      `json:"channels"`
	Success  bool     `json:"success"`
	Files    []string `json:"files,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Manifest summarizes a bulk export.
type Manifest struct {
	Format     Format          `json:"format"`
	ExportedAt time.Time       `json:"exported_at"`
	Total      int             `json:"total"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Entries    []ManifestEntry `json:"entries"`
}

// WriteBulkExportManifest writes m as indented JSON to path
func WriteBulkExportManifest(m *Manifest, path string) error {
	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to generate manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write manifest: %w", shared.ErrIOFailure, err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
