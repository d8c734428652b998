package constants

const (
	// DateFormat is the canonical date layout (ISO 8601 calendar date)
	DateFormat = "2006-01-02"
	// TimeFormat is the canonical time-of-day layout
	TimeFormat = "15:04"
)

const (
	// ConfigDirName is the directory under $HOME holding all app state
	ConfigDirName = ".smart-nippo"
	// ConfigFileName is the YAML configuration file name
	ConfigFileName = "config.yaml"
	// DatabaseFileName is the SQLite database file name
	DatabaseFileName = "data.db"
)

// Conventional report data keys. Templates are free to omit these;
// convenience accessors degrade to empty values when they do.
const (
	DateFieldKey    = "date"
	ProjectFieldKey = "project"
)

// KeywordSearchKeys is the fixed set of data keys scanned by keyword search.
// Templates that keep their free text under other names are not searchable
// by keyword.
var KeywordSearchKeys = []string{"content", "issues", "tomorrow_plan", "notes"}

const (
	// MaxTextLength is the hard cap for text field values
	MaxTextLength = 255
	// UnclassifiedProject labels reports without a project value in statistics
	UnclassifiedProject = "unclassified"
	// DefaultSearchLimit bounds keyword search results
	DefaultSearchLimit = 50
)
