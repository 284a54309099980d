package repository

import "fmt"

// Settings selects and configures a Store implementation.
type Settings struct {
	Driver string

	// PostgresDSN is used by the postgres driver.
	PostgresDSN string

	// Spreadsheet settings for the sheets driver.
	SpreadsheetID   string
	Worksheet       string
	CredentialsFile string
}

// Open builds the Store named by s.Driver. No connection is made until the
// store is first used.
func Open(s Settings) (Store, error) {
	switch s.Driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverPostgres:
		return NewPostgresStore(s.PostgresDSN), nil
	case DriverSheets:
		return NewSheetsStore(s.SpreadsheetID,
			WithWorksheet(s.Worksheet),
			WithCredentialsFile(s.CredentialsFile),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}
}
