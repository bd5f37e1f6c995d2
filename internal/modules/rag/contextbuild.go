package rag

import (
	"fmt"
	"strings"

	"github.com/bankbot/core/internal/models"
)

// Citation renders the provenance line for a chunk:
// "{entity} – {main section}[, {sub section}]".
func Citation(chunk *models.DocumentChunkModel) string {
	citation := chunk.Entity + " – " + chunk.MainSectionTitle
	if chunk.SubSectionTitle != "" {
		citation += ", " + chunk.SubSectionTitle
	}
	return citation
}

// BuildContext assembles the numbered context block handed to the model
// (and returned verbatim on the disclosure-only path). Chunks with no
// disclosed content are skipped and do not consume a number.
func BuildContext(resolved []ResolvedChunk) string {
	blocks := make([]string, 0, len(resolved))
	n := 0
	for i := range resolved {
		rc := &resolved[i]
		if rc.Content == "" {
			continue
		}
		n++
		blocks = append(blocks, fmt.Sprintf("[[%d]] %s\n*Citation: %s*", n, rc.Content, Citation(&rc.Chunk)))
	}
	return strings.Join(blocks, "\n\n")
}
