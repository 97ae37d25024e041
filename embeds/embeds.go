package embeds

import (
	"strings"

	"aurabot/models"
)

// Discord wire-protocol limits.
const (
	MaxDescriptionLength = 4096
	MaxMessageLength     = 2000
	MaxFieldsPerEmbed    = 25
	MaxEmbedsPerMessage  = 10
)

// Status drives the fixed color mapping for system message embeds.
type Status string

const (
	StatusError   Status = "error"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusInfo    Status = "info"
)

const (
	ColorRed    = 0xff0000
	ColorGreen  = 0x00ff00
	ColorYellow = 0xffff00
	ColorBlue   = 0x0000ff
	ColorImage  = 0x3498db
)

// StatusColor returns the fixed color for a status. Unknown statuses map to
// info.
func StatusColor(status Status) int {
	switch status {
	case StatusError:
		return ColorRed
	case StatusSuccess:
		return ColorGreen
	case StatusWarning:
		return ColorYellow
	default:
		return ColorBlue
	}
}

// splitSeparators in priority order: markdown header breaks, generic
// newline, sentence-terminating period.
var splitSeparators = []string{"\n#", "\n##", "\n###", "\n", "."}

// SplitContent splits content into chunks of at most maxLength characters,
// preferring semantic break points. For each chunk it searches backward from
// the cutoff for the last occurrence of each separator and picks the one
// yielding the largest split index; when no separator is found it hard-cuts
// at maxLength. Both pieces are whitespace-trimmed.
func SplitContent(content string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = MaxDescriptionLength
	}

	var result []string
	remaining := content

	for len(remaining) > maxLength {
		bestIdx := -1
		bestSep := ""
		for _, separator := range splitSeparators {
			idx := strings.LastIndex(remaining[:maxLength], separator)
			if idx > bestIdx {
				bestIdx = idx
				bestSep = separator
			}
		}

		// Keep the separator's leading character with the left chunk so a
		// markdown header begins the next chunk.
		splitIndex := bestIdx + len(bestSep) - 1
		if bestIdx <= 0 {
			splitIndex = maxLength
		}

		result = append(result, strings.TrimSpace(remaining[:splitIndex]))
		remaining = strings.TrimSpace(remaining[splitIndex:])
	}

	if remaining != "" {
		result = append(result, remaining)
	}

	return result
}

// SplitFields chunks name/value fields by count, at most 25 per embed.
func SplitFields(fields []models.EmbedField) [][]models.EmbedField {
	var result [][]models.EmbedField
	for start := 0; start < len(fields); start += MaxFieldsPerEmbed {
		end := start + MaxFieldsPerEmbed
		if end > len(fields) {
			end = len(fields)
		}
		result = append(result, fields[start:end])
	}
	return result
}

// BuildContentEmbeds turns prose content into rich embeds, one per
// description-sized chunk.
func BuildContentEmbeds(content string, color int) []models.Embed {
	chunks := SplitContent(content, MaxDescriptionLength)
	result := make([]models.Embed, 0, len(chunks))
	for _, chunk := range chunks {
		result = append(result, models.Embed{
			Type:        "rich",
			Description: chunk,
			Color:       color,
		})
	}
	return result
}

// BuildFieldEmbeds turns name/value pairs into rich embeds, at most 25
// fields per embed.
func BuildFieldEmbeds(fields []models.EmbedField, color int) []models.Embed {
	groups := SplitFields(fields)
	result := make([]models.Embed, 0, len(groups))
	for _, group := range groups {
		result = append(result, models.Embed{
			Type:   "rich",
			Color:  color,
			Fields: group,
		})
	}
	return result
}

// SystemMessageEmbeds builds status-colored embeds from content. An explicit
// color override always wins over the status mapping.
func SystemMessageEmbeds(content string, status Status, colorOverride *int) []models.Embed {
	color := StatusColor(status)
	if colorOverride != nil {
		color = *colorOverride
	}
	return BuildContentEmbeds(content, color)
}

// SystemMessageFieldEmbeds is the field-array variant of SystemMessageEmbeds.
func SystemMessageFieldEmbeds(fields []models.EmbedField, status Status, colorOverride *int) []models.Embed {
	color := StatusColor(status)
	if colorOverride != nil {
		color = *colorOverride
	}
	return BuildFieldEmbeds(fields, color)
}

// MultiImageEmbeds builds one embed per image URL sharing a common title and
// description.
func MultiImageEmbeds(title, description string, imageURLs []string, color int) []models.Embed {
	if color == 0 {
		color = ColorImage
	}
	result := make([]models.Embed, 0, len(imageURLs))
	for _, url := range imageURLs {
		result = append(result, models.Embed{
			Type:        "rich",
			Title:       title,
			Description: description,
			Color:       color,
			Image:       &models.EmbedImage{URL: url},
		})
	}
	return result
}

// SplitEmbeds groups embeds into delivery batches of at most 10, the wire
// limit per message.
func SplitEmbeds(all []models.Embed) [][]models.Embed {
	var result [][]models.Embed
	for start := 0; start < len(all); start += MaxEmbedsPerMessage {
		end := start + MaxEmbedsPerMessage
		if end > len(all) {
			end = len(all)
		}
		result = append(result, all[start:end])
	}
	return result
}

// PaginationControls builds the previous/next action row for a paginated
// response, disabling the control at each boundary.
func PaginationControls(currentPage, totalPages int) models.ActionRow {
	return models.ActionRow{
		Type: 1,
		Components: []models.Button{
			{Type: 2, Style: 1, Label: "Previous", CustomID: "previous", Disabled: currentPage <= 0},
			{Type: 2, Style: 1, Label: "Next", CustomID: "next", Disabled: currentPage >= totalPages-1},
		},
	}
}
