package internal

type Record struct {
	Email             string
	ContactName       string
	Phone             string
	ResidenceName     string
	OrganizationName  string
	Stage             string
	Location          string
	County            string
	NARRLevel         string
	CertOrContactDate string
	Interviewer       string
	Unused            string
	Notes             string
	SystemNotes       string
	MaxResidents      string
}

// Complete reports whether the record carries every field needed for emission.
// County is rolling state and is not part of the check.
func (r Record) Complete() bool {
	return r.ContactName != "" && r.Phone != "" && r.ResidenceName != "" && r.OrganizationName != "" && r.Location != ""
}

// Values returns the output columns in header order. MaxResidents is only
// included when tracksCapacity is set.
func (r Record) Values(tracksCapacity bool) []string {
	out := []string{
		r.Email,
		r.ContactName,
		r.Phone,
		r.ResidenceName,
		r.OrganizationName,
		r.Stage,
		r.Location,
		r.County,
		r.NARRLevel,
		r.CertOrContactDate,
		r.Interviewer,
		r.Unused,
		r.Notes,
		r.SystemNotes,
	}
	if tracksCapacity {
		out = append(out, r.MaxResidents)
	}
	return out
}

var baseColumns = []string{
	"Email",
	"Contact Name",
	"Phone Number",
	"Residence Name",
	"Organization Name",
	"Stage",
	"Location",
	"County",
	"NARR Level",
	"Cert Date or Last Contact Date",
	"Interviewer",
	"unused",
	"Notes",
	"System Notes",
}

const MaxResidentsColumn = "Max Residents"

func Columns(tracksCapacity bool) []string {
	out := make([]string, 0, len(baseColumns)+1)
	out = append(out, baseColumns...)
	if tracksCapacity {
		out = append(out, MaxResidentsColumn)
	}
	return out
}

type DocumentRow struct {
	ID        int
	Origin    string
	Hash      string
	Size      int
	RawRef    string
	Changed   bool
	FetchedAt string
}

type RunRow struct {
	ID             int
	TraceID        string
	DocumentID     int
	TracksCapacity bool
	LineCount      int
	RecordCount    int
	OutputPath     string
	CreatedAt      string
}
