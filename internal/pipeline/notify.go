package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhillyerd/enmime"

	"recovres/internal/util"
)

// Notifier drops a change notice with the fresh CSV attached into an outbox
// directory as an .eml file. Delivery is left to whatever watches the outbox.
type Notifier struct {
	outboxDir string
	from      string
	to        string
}

func NewNotifier(outboxDir, from, to string) *Notifier {
	return &Notifier{outboxDir: outboxDir, from: from, to: to}
}

type ChangeNotice struct {
	TraceID    string
	Origin     string
	Hash       string
	Records    int
	FetchedAt  time.Time
	OutputPath string
}

func (n *Notifier) Notify(notice ChangeNotice) (string, error) {
	csvBlob, err := os.ReadFile(notice.OutputPath)
	if err != nil {
		return "", err
	}

	body := fmt.Sprintf(
		"The recovery residence registry changed.\n\nsource: %s\nsha256: %s\nrecords: %d\nfetched: %s\nrun: %s\n",
		notice.Origin, notice.Hash, notice.Records, notice.FetchedAt.UTC().Format(time.RFC3339), notice.TraceID,
	)

	part, err := enmime.Builder().
		From("Registry Watch", n.from).
		To("", n.to).
		Subject(fmt.Sprintf("Registry updated: %d records", notice.Records)).
		Date(notice.FetchedAt).
		Text([]byte(body)).
		AddAttachment(csvBlob, "text/csv", filepath.Base(notice.OutputPath)).
		Build()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := part.Encode(&buf); err != nil {
		return "", err
	}

	if err := os.MkdirAll(n.outboxDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d_%s.eml", notice.FetchedAt.Unix(), util.SanitizeFileName(notice.TraceID))
	path := filepath.Join(n.outboxDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
