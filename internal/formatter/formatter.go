// package formatter renders playlist snapshots as plain text, Markdown and CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

// Format names accepted by [Render].
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// ExportToCSV converts a PlaylistExport to CSV format with columns: #, Title, Artist, Year, Streams
func ExportToCSV(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"#", "Title", "Artist", "Year", "Streams"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, song := range export.Songs {
		record := []string{
			strconv.Itoa(i + 1),
			song.Title,
			song.Artist,
			strconv.Itoa(song.Year),
			strconv.Itoa(song.Streams),
		}
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

// ExportToMarkdown converts a PlaylistExport to a Markdown document
func ExportToMarkdown(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Name))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n", len(export.Songs)))
	buf.WriteString(fmt.Sprintf("**Streams**: %s\n\n", shared.FormatStreams(totalStreams(export))))

	buf.WriteString("## Songs\n\n")
	for i, song := range export.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%d) [%s streams]\n",
			i+1, song.Artist, song.Title, song.Year, shared.FormatStreams(song.Streams)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a PlaylistExport to the numbered listing shown by the menu console
func ExportToText(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	for i, song := range export.Songs {
		buf.WriteString(fmt.Sprintf("%d. Title: %s\n", i+1, song.Title))
		buf.WriteString(fmt.Sprintf("   Artist: %s\n", song.Artist))
		buf.WriteString(fmt.Sprintf("   Released: %d\n", song.Year))
		buf.WriteString(fmt.Sprintf("   Streams: %d\n", song.Streams))
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// Render dispatches on a format name. Unknown formats return [shared.ErrInvalidArgument].
func Render(export *models.PlaylistExport, format string) ([]byte, error) {
	switch format {
	case "", FormatText, "txt":
		return ExportToText(export)
	case FormatMarkdown, "md":
		return ExportToMarkdown(export)
	case FormatCSV:
		return ExportToCSV(export)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

func totalStreams(export *models.PlaylistExport) int {
	total := 0
	for _, song := range export.Songs {
		total += song.Streams
	}
	return total
}
